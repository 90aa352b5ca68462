package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coconina/storefront/app/controllers"
	"github.com/coconina/storefront/app/inquiry"
	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/app/services"
	"github.com/coconina/storefront/pkg/testkit"
)

const api = "https://api.test"

var linkCfg = controllers.LinkConfig{
	CDNBase:        "https://cdn.coconina.test/",
	Number:         "+1 (786) 391-8722",
	DefaultMessage: "Hello there",
}

func newServer(gw *services.Gateway) http.Handler {
	cat := controllers.NewCatalogController(gw, linkCfg)
	contact := controllers.NewContactController(gw)
	lk := controllers.NewLinksController(gw, linkCfg)

	r := chi.NewRouter()
	r.Get("/api/products", cat.Products)
	r.Get("/api/products/{id}", cat.Show)
	r.Get("/api/categories", cat.Categories)
	r.Post("/api/contact", contact.Submit)
	r.Get("/api/whatsapp", lk.WhatsApp)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

func TestProducts_All(t *testing.T) {
	h := newServer(services.NewGateway(""))

	env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/products", ""), http.StatusOK)

	var products []models.Product
	testkit.DecodeData(t, env, &products)
	require.Len(t, products, 12)
	assert.Equal(t, "origins-br-001", products[0].ID)

	var meta controllers.ListMeta
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	assert.Equal(t, controllers.ListMeta{Category: "all", Count: 12, Label: "All Pieces", Summary: "12 unique pieces"}, meta)
}

func TestProducts_ByCategory(t *testing.T) {
	h := newServer(services.NewGateway(""))

	env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/products?cat=Rings", ""), http.StatusOK)

	var products []models.Product
	testkit.DecodeData(t, env, &products)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, models.Rings, p.Category)
	}

	var meta controllers.ListMeta
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	assert.Equal(t, "Rings", meta.Label)
	assert.Equal(t, "3 unique rings", meta.Summary)
}

func TestProducts_UnknownCategoryIsEmpty(t *testing.T) {
	h := newServer(services.NewGateway(""))
	rec := do(t, h, http.MethodGet, "/api/products?cat=anklets", "")

	env := testkit.DecodeEnvelope(t, rec, http.StatusOK)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestProducts_ImagesUseCDN(t *testing.T) {
	mt := testkit.NewMockTransport().Install(t)
	mt.On("GET", api+"/public/products").Reply(http.StatusOK,
		`[{"id":"r-1","name":"Cuff","category":"bracelets","image":{"src":"/img/cuff.jpg","alt":"cuff"},"gallery":["img/2.jpg","https://elsewhere.test/3.jpg"]}]`)

	h := newServer(services.NewGateway(api))
	env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/products", ""), http.StatusOK)

	var products []models.Product
	testkit.DecodeData(t, env, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "https://cdn.coconina.test/img/cuff.jpg", products[0].Image.Src)
	assert.Equal(t, []string{"https://cdn.coconina.test/img/2.jpg", "https://elsewhere.test/3.jpg"}, products[0].Gallery)
}

func TestProducts_PriceIsJSONNumber(t *testing.T) {
	mt := testkit.NewMockTransport().Install(t)
	mt.On("GET", api+"/public/products").Reply(http.StatusOK,
		`[{"id":"r-1","name":"Cuff","price":45.5,"category":"bracelets","image":{"src":"img/cuff.jpg","alt":"cuff"}},`+
			`{"id":"r-2","name":"Hoop","category":"earrings","image":{"src":"img/hoop.jpg","alt":"hoop"}}]`)

	h := newServer(services.NewGateway(api))
	env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/products", ""), http.StatusOK)

	var raw []map[string]json.RawMessage
	testkit.DecodeData(t, env, &raw)
	require.Len(t, raw, 2)
	assert.Equal(t, "45.5", string(raw[0]["price"]))
	assert.NotContains(t, raw[1], "price")
}

func TestShow(t *testing.T) {
	h := newServer(services.NewGateway(""))

	env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/products/origins-ne-001", ""), http.StatusNotFound)
	assert.Equal(t, "Not found", env.Message)

	env = testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/products/origins-nk-001", ""), http.StatusOK)
	var p models.Product
	testkit.DecodeData(t, env, &p)
	assert.Equal(t, models.Necklaces, p.Category)
	assert.True(t, strings.HasPrefix(p.Image.Src, "https://"))

	var meta controllers.ProductMeta
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	assert.True(t, strings.HasPrefix(meta.WhatsAppURL, "https://wa.me/+17863918722?text=I'm%20interested%20in"), meta.WhatsAppURL)
}

func TestCategories(t *testing.T) {
	h := newServer(services.NewGateway(""))
	env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/categories", ""), http.StatusOK)

	var cats []models.Category
	testkit.DecodeData(t, env, &cats)
	require.Len(t, cats, 4)
	assert.Equal(t, models.Bracelets, cats[0].Slug)
}

// ─── Contact ──────────────────────────────────────────────────────────────────

func TestContact_MockMode(t *testing.T) {
	mt := testkit.NewMockTransport().Install(t)
	h := newServer(services.NewGateway(""))

	rec := do(t, h, http.MethodPost, "/api/contact", `{"name":"Ana","email":"ana@example.com","message":"Hello"}`)
	env := testkit.DecodeEnvelope(t, rec, http.StatusOK)

	assert.Equal(t, "Form submitted (mock mode)", env.Message)
	var res models.ContactResult
	testkit.DecodeData(t, env, &res)
	assert.True(t, res.Success)
	assert.Equal(t, 0, mt.Calls())
}

func TestContact_ValidationErrors(t *testing.T) {
	mt := testkit.NewMockTransport().Install(t)
	h := newServer(services.NewGateway(api))

	rec := do(t, h, http.MethodPost, "/api/contact", `{"name":"","email":"nope","message":"Hi"}`)
	env := testkit.DecodeEnvelope(t, rec, http.StatusUnprocessableEntity)

	assert.Equal(t, "name is required", env.Errors["name"])
	assert.Equal(t, "email must be a valid email address", env.Errors["email"])
	assert.Equal(t, 0, mt.Calls(), "invalid forms are never relayed")
}

func TestContact_MalformedBody(t *testing.T) {
	h := newServer(services.NewGateway(""))
	rec := do(t, h, http.MethodPost, "/api/contact", `{"name":`)

	env := testkit.DecodeEnvelope(t, rec, http.StatusBadRequest)
	assert.Contains(t, env.Message, "invalid JSON")
}

func TestContact_Relayed(t *testing.T) {
	mt := testkit.NewMockTransport().Install(t)
	mt.On("POST", api+"/api/contact").Reply(http.StatusOK, `{"message":"Received"}`)
	h := newServer(services.NewGateway(api))

	rec := do(t, h, http.MethodPost, "/api/contact", `{"name":"Ana","email":"ana@example.com","whatsapp":"+34 600 000 000","message":"Hello"}`)
	env := testkit.DecodeEnvelope(t, rec, http.StatusOK)
	assert.Equal(t, "Received", env.Message)

	testkit.AssertJSONBody(t,
		[]byte(`{"fullName":"Ana","email":"ana@example.com","whatsappNumber":"+34 600 000 000","message":"Hello"}`),
		mt.Requests()[0].Body)
}

func TestContact_UpstreamRejects(t *testing.T) {
	mt := testkit.NewMockTransport().Install(t)
	mt.On("POST", api+"/api/contact").Reply(http.StatusConflict, `{"message":"Duplicate inquiry"}`)
	h := newServer(services.NewGateway(api))

	rec := do(t, h, http.MethodPost, "/api/contact", `{"name":"Ana","email":"ana@example.com","message":"Hello"}`)
	env := testkit.DecodeEnvelope(t, rec, http.StatusBadGateway)
	assert.Equal(t, "Duplicate inquiry", env.Message)
}

// ─── WhatsApp ─────────────────────────────────────────────────────────────────

func TestWhatsApp(t *testing.T) {
	h := newServer(services.NewGateway(""))

	cases := []struct {
		target string
		code   int
		want   controllers.WhatsAppLink
	}{
		{"/api/whatsapp", http.StatusOK, controllers.WhatsAppLink{
			URL: "https://wa.me/+17863918722?text=Hello%20there", Number: "+17863918722", Text: "Hello there",
		}},
		{"/api/whatsapp?message=Is%20it%20silver%3F", http.StatusOK, controllers.WhatsAppLink{
			URL: "https://wa.me/+17863918722?text=Is%20it%20silver%3F", Number: "+17863918722", Text: "Is it silver?",
		}},
		{"/api/whatsapp?product=nope", http.StatusNotFound, controllers.WhatsAppLink{}},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, tc.target, ""), tc.code)
			if tc.code != http.StatusOK {
				return
			}
			var got controllers.WhatsAppLink
			testkit.DecodeData(t, env, &got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWhatsApp_Product(t *testing.T) {
	h := newServer(services.NewGateway(""))
	env := testkit.DecodeEnvelope(t, do(t, h, http.MethodGet, "/api/whatsapp?product=origins-er-001", ""), http.StatusOK)

	var got controllers.WhatsAppLink
	testkit.DecodeData(t, env, &got)
	assert.True(t, strings.HasPrefix(got.Text, "I'm interested in: 💎 "))
	assert.True(t, strings.HasSuffix(got.Text, "from the Coco&Nina website. Could you provide more information?"))
	assert.Contains(t, got.URL, "Coco%26Nina")
}

// ─── Inquiry modal ────────────────────────────────────────────────────────────

func TestInquiry_SharedState(t *testing.T) {
	modal := inquiry.NewModal()
	var seen []bool
	modal.Subscribe(func(open bool) { seen = append(seen, open) })

	c := controllers.NewInquiryController(modal)
	r := chi.NewRouter()
	r.Get("/api/inquiry", c.Show)
	r.Post("/api/inquiry/{action}", c.Update)

	state := func(rec *httptest.ResponseRecorder) bool {
		t.Helper()
		var s controllers.InquiryState
		testkit.DecodeData(t, testkit.DecodeEnvelope(t, rec, http.StatusOK), &s)
		return s.Open
	}

	assert.False(t, state(do(t, r, http.MethodGet, "/api/inquiry", "")))
	assert.True(t, state(do(t, r, http.MethodPost, "/api/inquiry/open", "")))
	assert.True(t, state(do(t, r, http.MethodPost, "/api/inquiry/open", "")))
	assert.False(t, state(do(t, r, http.MethodPost, "/api/inquiry/toggle", "")))
	assert.True(t, state(do(t, r, http.MethodPost, "/api/inquiry/toggle", "")))
	assert.False(t, state(do(t, r, http.MethodPost, "/api/inquiry/close", "")))

	testkit.DecodeEnvelope(t, do(t, r, http.MethodPost, "/api/inquiry/slam", ""), http.StatusNotFound)
	assert.False(t, modal.IsOpen())
	assert.Equal(t, []bool{true, false, true, false}, seen)
}
