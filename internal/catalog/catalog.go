package catalog

import (
	"strings"

	"github.com/sokolink/sokolink-app/pkg/enums"
)

// Product is a read-only catalogue entity. Prices are whole Fbu.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int    `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
	SellerID string `json:"seller_id"`
	Discount int    `json:"discount,omitempty"`
	IsNew    bool   `json:"is_new,omitempty"`
}

// Query parameterizes the listing page's filtering.
type Query struct {
	Kind  enums.ListingKind `json:"kind"`
	Value string            `json:"value"`
	Label string            `json:"label,omitempty"`
}

// DefaultQuery is the listing state before any navigation stashes one.
func DefaultQuery() Query {
	return Query{Kind: enums.ListingKindCategory, Value: "all"}
}

// Named collection values the listing page understands.
const (
	CollectionSpecialOffers = "special-offers"
	CollectionNewArrivals   = "new-arrivals"
)

// Provider serves the static product pool. It never mutates catalogue data.
type Provider struct {
	products []Product
}

func NewProvider() *Provider {
	pool := make([]Product, len(defaultPool))
	copy(pool, defaultPool)
	return &Provider{products: pool}
}

// Get returns the product with the given id.
func (p *Provider) Get(id string) (Product, bool) {
	for _, product := range p.products {
		if product.ID == id {
			return product, true
		}
	}
	return Product{}, false
}

// All returns a copy of the full pool.
func (p *Provider) All() []Product {
	out := make([]Product, len(p.products))
	copy(out, p.products)
	return out
}

// List filters the pool according to the listing query. Unknown kinds and
// unknown collections yield an empty result rather than an error.
func (p *Provider) List(q Query) []Product {
	switch q.Kind {
	case enums.ListingKindSearch:
		return p.filter(func(product Product) bool {
			return strings.Contains(strings.ToLower(product.Title), strings.ToLower(q.Value))
		})
	case enums.ListingKindCategory:
		if q.Value == "all" {
			return p.All()
		}
		return p.filter(func(product Product) bool {
			return strings.EqualFold(product.Category, q.Value)
		})
	case enums.ListingKindCollection:
		switch q.Value {
		case CollectionSpecialOffers:
			return p.filter(func(product Product) bool {
				return product.Discount > 0
			})
		case CollectionNewArrivals:
			return p.All()
		}
		return []Product{}
	case enums.ListingKindSimilar:
		return p.filter(func(product Product) bool {
			return product.ID != q.Value
		})
	}
	return []Product{}
}

// Featured returns the first n products, used by the home carousel.
func (p *Provider) Featured(n int) []Product {
	if n <= 0 || n > len(p.products) {
		n = len(p.products)
	}
	out := make([]Product, n)
	copy(out, p.products[:n])
	return out
}

// SpecialOffers returns all discounted products.
func (p *Provider) SpecialOffers() []Product {
	return p.filter(func(product Product) bool {
		return product.Discount > 0
	})
}

func (p *Provider) filter(keep func(Product) bool) []Product {
	out := []Product{}
	for _, product := range p.products {
		if keep(product) {
			out = append(out, product)
		}
	}
	return out
}
