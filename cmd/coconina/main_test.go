package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRouteList(t *testing.T) {
	out, err := run(t, "route:list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "METHOD"))
	assert.Contains(t, out, "/api/products/{id}")
	assert.Contains(t, out, "contact.submit")
	assert.Contains(t, out, "healthz")
}

func TestSKUGenerate(t *testing.T) {
	out, err := run(t, "sku:generate", "-c", "bracelets", "-d", "DIC25", "-s", "7")
	require.NoError(t, err)
	assert.Equal(t, "COCO-NINA-DIC25-BR-007\n", out)
}

func TestSKUGenerate_UnknownCategory(t *testing.T) {
	_, err := run(t, "sku:generate", "-c", "anklets", "-d", "DIC25", "-s", "1")
	assert.Error(t, err)
}

func TestSKUParse(t *testing.T) {
	out, err := run(t, "sku:parse", "COCO-NINA-DIC25-BR-001")
	require.NoError(t, err)
	assert.Contains(t, out, `"categoryCode": "BR"`)
	assert.Contains(t, out, `"sequenceNumber": 1`)
	assert.Contains(t, out, `"category": "bracelets"`)
	assert.Contains(t, out, `"valid": true`)
}

func TestSKUValidate(t *testing.T) {
	out, err := run(t, "sku:validate", "COCO-NINA-DIC25-BR-001", "bad")
	assert.EqualError(t, err, "1 of 2 SKUs invalid")
	assert.Contains(t, out, "ok       COCO-NINA-DIC25-BR-001")
	assert.Contains(t, out, "invalid  bad")
}

func TestSKUDateCode(t *testing.T) {
	out, err := run(t, "sku:datecode", "2026-01")
	require.NoError(t, err)
	assert.Equal(t, "ENE26\n", out)
}
