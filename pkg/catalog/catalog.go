// Package catalog loads and indexes the product catalog the site's data
// pipeline publishes as a single JSON document. The catalog is fetched once
// per page session and is read-only afterwards; the save logic receives an
// explicit *Catalog handle rather than reading shared state.
package catalog

import (
	"github.com/newteatrade/saves/pkg/models"
)

// Product is one entry of the published catalog document. Link is the
// product's natural key and is required to be unique within the catalog;
// the save subsystem relies on that uniqueness but cannot enforce it.
type Product struct {
	Link        string  `json:"link"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       string  `json:"price"` // display string, may carry a currency symbol or "free"
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Category    string  `json:"category"`
	Origin      string  `json:"origin"`
	Format      string  `json:"format"`
}

// DisplayFields converts the catalog entry into the payload persisted with
// a product save. The whole source record is carried so the library view
// can render the card without the catalog.
func (p Product) DisplayFields() models.ProductFields {
	return models.ProductFields(p)
}

// Catalog is the in-memory, read-only product index for one page session.
type Catalog struct {
	products []Product
	byLink   map[string]int
}

// New indexes the given products in document order.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byLink:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		if _, dup := c.byLink[p.Link]; !dup {
			c.byLink[p.Link] = i
		}
	}
	return c
}

// ByLink looks a product up by exact URL match.
func (c *Catalog) ByLink(link string) (Product, bool) {
	i, ok := c.byLink[link]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Products returns the catalog entries in document order. The returned
// slice is a copy; the catalog itself never changes after load.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.products) }
