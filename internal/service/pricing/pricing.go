// Package pricing derives cart totals and admin sales figures. Nothing here is
// stored; callers recompute from the current collections.
package pricing

import (
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

var (
	// FreeShippingThreshold is exclusive: a subtotal must exceed it to ship free.
	FreeShippingThreshold = decimal.NewFromInt(200)
	// ShippingFee applies to every order at or below the threshold.
	ShippingFee = decimal.NewFromInt(25)
)

// Line is a cart line joined with its catalog product. Product is nil when the
// product was deleted after the line was added.
type Line struct {
	domain.CartItem
	Product *domain.Product `json:"product,omitempty"`
}

// UnitPrice is zero for lines whose product no longer exists.
func (l Line) UnitPrice() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Enrich joins each cart line with its product by id.
func Enrich(cart []domain.CartItem, products []domain.Product) []Line {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	lines := make([]Line, 0, len(cart))
	for _, item := range cart {
		line := Line{CartItem: item}
		if p, ok := byID[item.ProductID]; ok {
			p = p.Clone()
			line.Product = &p
		}
		lines = append(lines, line)
	}
	return lines
}

type Summary struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// Summarize is the single totals rule shared by the cart view and checkout.
func Summarize(lines []Line) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
		count += l.Quantity
	}
	shipping := ShippingFor(subtotal)
	return Summary{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
		ItemCount: count,
	}
}

func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}

// CategoryCount is one slice of the admin category breakdown.
type CategoryCount struct {
	Category domain.Category `json:"category"`
	Products int             `json:"products"`
}

type Stats struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	OrderCount    int             `json:"orderCount"`
	PendingOrders int             `json:"pendingOrders"`
	ProductCount  int             `json:"productCount"`
	Categories    []CategoryCount `json:"categories"`
}

// ComputeStats totals recorded order amounts; order totals are never recomputed
// from current catalog prices.
func ComputeStats(orders []domain.Order, products []domain.Product) Stats {
	stats := Stats{
		TotalSales:   decimal.Zero,
		OrderCount:   len(orders),
		ProductCount: len(products),
	}
	for _, o := range orders {
		stats.TotalSales = stats.TotalSales.Add(o.Total)
		if o.Status == domain.OrderPending {
			stats.PendingOrders++
		}
	}
	counts := make(map[domain.Category]int)
	for _, p := range products {
		counts[p.Category]++
	}
	for _, c := range domain.Categories() {
		stats.Categories = append(stats.Categories, CategoryCount{Category: c, Products: counts[c]})
	}
	return stats
}
