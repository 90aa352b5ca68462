// Package links builds the outbound URLs the storefront renders: CDN image
// URLs and WhatsApp chat deep links.
package links

import (
	"net/url"
	"strings"
)

const whatsAppBase = "https://wa.me/"

// componentEscaper restores the characters url.QueryEscape escapes but an
// encodeURIComponent-style encoder leaves alone.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ImageURL resolves an image path against the CDN base. Absolute http(s)
// URLs pass through unchanged, and so does every path when no CDN is set.
func ImageURL(cdnBase, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if cdnBase == "" || path == "" {
		return path
	}
	return strings.TrimRight(cdnBase, "/") + "/" + strings.TrimLeft(path, "/")
}

// WhatsAppURL builds a wa.me link for number with message prefilled.
// Everything but digits and '+' is stripped from number.
func WhatsAppURL(number, message string) string {
	return whatsAppBase + CleanPhone(number) + "?text=" + EncodeComponent(message)
}

// CleanPhone keeps only digits and '+'.
func CleanPhone(number string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, number)
}

// EncodeComponent percent-encodes s the way browsers encode a URI
// component: spaces become %20 and only A-Z a-z 0-9 - _ . ! ~ * ' ( )
// are left as is.
func EncodeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}
