package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogDoc = `[
	{
		"link": "https://newteatrade.com/products/kenyan-purple-leaf",
		"name": "Kenyan Purple Leaf",
		"brand": "Kericho Estates",
		"image": "/img/purple-leaf.jpg",
		"description": "Rare purple-varietal loose leaf.",
		"price": "$14.50",
		"rating": 4.6,
		"reviewCount": 212,
		"category": "black",
		"origin": "Kenya",
		"format": "loose leaf"
	},
	{
		"link": "https://newteatrade.com/products/sample-darjeeling",
		"name": "Darjeeling Sampler",
		"brand": "NewTeaTrade",
		"image": "/img/darjeeling.jpg",
		"description": "First flush sampler pack.",
		"price": "free",
		"rating": 4.1,
		"reviewCount": 38,
		"category": "black",
		"origin": "India",
		"format": "bags"
	}
]`

func TestLoaderLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogDoc))
	}))
	defer srv.Close()

	loader := NewLoader(srv.Client(), srv.URL, zerolog.Nop())
	cat, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	p, ok := cat.ByLink("https://newteatrade.com/products/kenyan-purple-leaf")
	require.True(t, ok)
	assert.Equal(t, "Kenyan Purple Leaf", p.Name)
	assert.Equal(t, "$14.50", p.Price)
	assert.Equal(t, 212, p.ReviewCount)

	_, ok = cat.ByLink("https://newteatrade.com/products/not-in-catalog")
	assert.False(t, ok)
}

func TestLoaderLoadBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	loader := NewLoader(srv.Client(), srv.URL, zerolog.Nop())
	_, err := loader.Load(context.Background())
	require.Error(t, err)
}

func TestLoaderLoadMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	loader := NewLoader(srv.Client(), srv.URL, zerolog.Nop())
	_, err := loader.Load(context.Background())
	require.Error(t, err)
}

func TestCatalogProductsIsACopy(t *testing.T) {
	cat := New([]Product{{Link: "a", Name: "A"}})
	out := cat.Products()
	out[0].Name = "mutated"

	p, ok := cat.ByLink("a")
	require.True(t, ok)
	assert.Equal(t, "A", p.Name)
}

func TestCatalogFirstLinkWins(t *testing.T) {
	cat := New([]Product{
		{Link: "a", Name: "first"},
		{Link: "a", Name: "second"},
	})
	p, ok := cat.ByLink("a")
	require.True(t, ok)
	assert.Equal(t, "first", p.Name)
}
