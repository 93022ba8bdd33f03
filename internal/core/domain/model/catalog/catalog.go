// Package catalog describes the menu the waiter terminals sell from.
//
// Products carry either a flat price or a per-size price table. The catalog is
// read-only for the lifecycle engine: it validates submitted product ids and
// resolves the base price used by the pairing discount.
package catalog

// Product is one sellable menu entry.
type Product struct {
	ID       string             `yaml:"id" json:"id"`
	Name     string             `yaml:"name" json:"name"`
	Category string             `yaml:"category" json:"category"`
	Price    *float64           `yaml:"price,omitempty" json:"price,omitempty"`
	Prices   map[string]float64 `yaml:"prices,omitempty" json:"prices,omitempty"`
}

// HasSizes reports whether the product is sold from a size table.
func (p Product) HasSizes() bool {
	return len(p.Prices) > 0
}

// BasePrice returns the catalog price for size, falling back to the flat price.
// ok is false when neither is available.
func (p Product) BasePrice(size string) (float64, bool) {
	if p.HasSizes() && size != "" {
		if price, found := p.Prices[size]; found {
			return price, true
		}
	}
	if p.Price != nil {
		return *p.Price, true
	}
	return 0, false
}

// Menu is the full product list.
type Menu struct {
	Products []Product `yaml:"products" json:"products"`
}

// ProductByID finds a product by its identifier.
func (m Menu) ProductByID(id string) (Product, bool) {
	for _, p := range m.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
