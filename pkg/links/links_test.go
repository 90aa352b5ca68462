package links_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coconina/storefront/pkg/links"
)

func TestImageURL(t *testing.T) {
	cases := []struct {
		name, cdn, path, want string
	}{
		{"absolute https passes through", "https://cdn.example", "https://images.unsplash.com/a.jpg", "https://images.unsplash.com/a.jpg"},
		{"absolute http passes through", "https://cdn.example", "http://img.example/a.jpg", "http://img.example/a.jpg"},
		{"relative with cdn", "https://cdn.example", "products/a.jpg", "https://cdn.example/products/a.jpg"},
		{"slashes collapsed", "https://cdn.example/", "/products/a.jpg", "https://cdn.example/products/a.jpg"},
		{"relative without cdn", "", "products/a.jpg", "products/a.jpg"},
		{"empty path", "https://cdn.example", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, links.ImageURL(tc.cdn, tc.path))
		})
	}
}

func TestWhatsAppURL(t *testing.T) {
	got := links.WhatsAppURL("+1 (786) 391-8722", "Hi Coco Nina, I have an inquiry about your jewelry.")
	assert.Equal(t, "https://wa.me/+17863918722?text=Hi%20Coco%20Nina%2C%20I%20have%20an%20inquiry%20about%20your%20jewelry.", got)
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "a%20b", links.EncodeComponent("a b"))
	assert.Equal(t, "it's!(*)~", links.EncodeComponent("it's!(*)~"))
	assert.Equal(t, "1%2B1%3D2%26x", links.EncodeComponent("1+1=2&x"))
	assert.Equal(t, "%C3%B1", links.EncodeComponent("ñ"))
}

func TestCleanPhone(t *testing.T) {
	assert.Equal(t, "+50688887777", links.CleanPhone("+506 8888-7777"))
	assert.Equal(t, "", links.CleanPhone("call me"))
}
