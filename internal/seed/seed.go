package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type productSeed struct {
	ID          string
	Name        string
	Description string
	Price       int64
	Category    domain.Category
	Image       string
	Sizes       []string
	Colors      []string
	Stock       int
	Rating      float64
	Featured    bool
}

var products = []productSeed{
	{
		ID:          "1",
		Name:        "Minimalist Linen Shirt",
		Description: "A breathable linen shirt perfect for summer evenings. Tailored fit with sustainable fabric.",
		Price:       89,
		Category:    domain.CategoryMen,
		Image:       "https://picsum.photos/seed/linen/600/800",
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"White", "Navy", "Sand"},
		Stock:       45,
		Rating:      4.8,
		Featured:    true,
	},
	{
		ID:          "2",
		Name:        "Silk Evening Gown",
		Description: "Elegant floor-length silk gown with a subtle sheen. Perfect for gala events.",
		Price:       299,
		Category:    domain.CategoryWomen,
		Image:       "https://picsum.photos/seed/gown/600/800",
		Sizes:       []string{"XS", "S", "M", "L"},
		Colors:      []string{"Emerald", "Midnight Black", "Ruby"},
		Stock:       12,
		Rating:      4.9,
		Featured:    true,
	},
	{
		ID:          "3",
		Name:        "Tech-Utility Parka",
		Description: "Water-resistant parka with multiple pockets and thermal lining.",
		Price:       159,
		Category:    domain.CategoryNewArrivals,
		Image:       "https://picsum.photos/seed/parka/600/800",
		Sizes:       []string{"M", "L", "XL"},
		Colors:      []string{"Olive", "Black"},
		Stock:       30,
		Rating:      4.5,
	},
	{
		ID:          "4",
		Name:        "Classic Leather Boots",
		Description: "Handcrafted leather boots with durable soles and timeless design.",
		Price:       210,
		Category:    domain.CategoryBestSellers,
		Image:       "https://picsum.photos/seed/boots/600/800",
		Sizes:       []string{"8", "9", "10", "11", "12"},
		Colors:      []string{"Cognac", "Espresso"},
		Stock:       22,
		Rating:      4.7,
	},
	{
		ID:          "5",
		Name:        "Cashmere Oversized Sweater",
		Description: "Ultra-soft cashmere sweater for maximum comfort and style.",
		Price:       180,
		Category:    domain.CategoryWomen,
		Image:       "https://picsum.photos/seed/sweater/600/800",
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Cream", "Charcoal", "Blush"},
		Stock:       15,
		Rating:      4.9,
		Featured:    true,
	},
	{
		ID:          "6",
		Name:        "Cotton Chino Trousers",
		Description: "Versatile chinos that transition perfectly from office to dinner.",
		Price:       75,
		Category:    domain.CategoryMen,
		Image:       "https://picsum.photos/seed/chinos/600/800",
		Sizes:       []string{"30", "32", "34", "36"},
		Colors:      []string{"Beige", "Grey", "Navy"},
		Stock:       50,
		Rating:      4.6,
	},
}

// Products returns a fresh copy of the built-in catalog.
func Products() []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       decimal.NewFromInt(p.Price),
			Category:    p.Category,
			Images:      []string{p.Image},
			Sizes:       append([]string(nil), p.Sizes...),
			Colors:      append([]string(nil), p.Colors...),
			Stock:       p.Stock,
			Rating:      p.Rating,
			Featured:    p.Featured,
		})
	}
	return out
}

type catalogWriter interface {
	ReplaceCatalog(ctx context.Context, products []domain.Product) error
}

// Apply resets the catalog to the built-in products. Cart, wishlist and orders are
// left untouched.
func Apply(ctx context.Context, w catalogWriter) error {
	if err := w.ReplaceCatalog(ctx, Products()); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}
