package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// All selects every category.
const All domain.Category = "All"

// Filter narrows the catalog. Nil price bounds are open; set bounds are inclusive.
type Filter struct {
	Category domain.Category
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (f Filter) match(p domain.Product) bool {
	if f.Category != "" && f.Category != All && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Apply returns the matching products in input order.
func (f Filter) Apply(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out
}

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// ParseSortKey maps a query value to a SortKey; empty means newest.
func ParseSortKey(v string) (SortKey, bool) {
	switch k := SortKey(strings.TrimSpace(v)); k {
	case "":
		return SortNewest, true
	case SortNewest, SortPriceLow, SortPriceHigh, SortRating:
		return k, true
	}
	return "", false
}

// Sort orders products in place. Newest keeps catalog order; ties keep input order.
func Sort(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case SortRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortNewest:
	}
}

// Featured returns up to n featured products in catalog order.
func Featured(products []domain.Product, n int) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if len(out) == n {
			break
		}
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ByIDs returns the products whose id is in ids, in catalog order. Unknown ids
// are skipped.
func ByIDs(products []domain.Product, ids []string) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, p := range products {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out
}
