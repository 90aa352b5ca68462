package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coconina/storefront/app/models"
)

func TestProductCategory_DisplayName(t *testing.T) {
	assert.Equal(t, "Bracelets", models.Bracelets.DisplayName())
	assert.Equal(t, "Earrings", models.Earrings.DisplayName())
	assert.Equal(t, "", models.ProductCategory("").DisplayName())
}

func TestParseCategory(t *testing.T) {
	c, err := models.ParseCategory(" Rings ")
	require.NoError(t, err)
	assert.Equal(t, models.Rings, c)

	_, err = models.ParseCategory("anklets")
	assert.ErrorContains(t, err, "anklets")
}

func TestProduct_DecodeRejectsUnknownCategory(t *testing.T) {
	var p models.Product
	err := json.Unmarshal([]byte(`{"id":"x","name":"X","category":"anklets"}`), &p)
	assert.Error(t, err)
}

func TestProduct_DecodeRemoteShape(t *testing.T) {
	body := `{
		"id": "remote-1",
		"sku": "COCO-NINA-ENE26-NK-004",
		"name": "Moonstone Drop",
		"price": "45.50",
		"category": "necklaces",
		"shortDescription": "Moonstone on bronze wire.",
		"materials": ["Moonstone"],
		"techniques": ["Wire Wrapping"],
		"tags": ["Handmade"],
		"image": {"src": "products/moon.jpg", "alt": "Moonstone"},
		"stock": 2,
		"available": true
	}`

	var p models.Product
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, models.Necklaces, p.Category)
	require.NotNil(t, p.Price)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("45.5")))
	require.NotNil(t, p.Stock)
	assert.Equal(t, 2, *p.Stock)
	assert.True(t, p.InStock())
}

func TestProduct_PriceEncodesAsNumber(t *testing.T) {
	price := decimal.RequireFromString("45.50")
	b, err := json.Marshal(models.Product{ID: "x", Name: "X", Category: models.Rings, Price: &price})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "45.5", string(raw["price"]))

	var back models.Product
	require.NoError(t, json.Unmarshal(b, &back))
	require.NotNil(t, back.Price)
	assert.True(t, back.Price.Equal(price))
}

func TestProduct_InStock(t *testing.T) {
	zero, no := 0, false
	assert.True(t, models.Product{}.InStock())
	assert.False(t, models.Product{Stock: &zero}.InStock())
	assert.False(t, models.Product{Available: &no}.InStock())
}

func TestProduct_CloneIsDeep(t *testing.T) {
	price := decimal.NewFromInt(30)
	orig := models.Product{Materials: []string{"Jade"}, Price: &price}
	cp := orig.Clone()
	cp.Materials[0] = "Glass"
	*cp.Price = decimal.NewFromInt(1)

	assert.Equal(t, "Jade", orig.Materials[0])
	assert.True(t, orig.Price.Equal(decimal.NewFromInt(30)))
}
