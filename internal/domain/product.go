package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog sections.
type Category string

const (
	CategoryMen         Category = "Men"
	CategoryWomen       Category = "Women"
	CategoryNewArrivals Category = "New Arrivals"
	CategoryBestSellers Category = "Best Sellers"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryMen, CategoryWomen, CategoryNewArrivals, CategoryBestSellers}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryNewArrivals, CategoryBestSellers:
		return true
	}
	return false
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Images      []string        `json:"images"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	Featured    bool            `json:"featured,omitempty"`
}

// Validate checks the product against the full entity shape.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: id required", ErrInvalidProduct)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case !p.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, p.Category)
	case len(p.Images) == 0:
		return fmt.Errorf("%w: at least one image required", ErrInvalidProduct)
	case len(p.Sizes) == 0:
		return fmt.Errorf("%w: at least one size required", ErrInvalidProduct)
	case len(p.Colors) == 0:
		return fmt.Errorf("%w: at least one color required", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: rating must be within [0,5]", ErrInvalidProduct)
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Images = cloneStrings(p.Images)
	p.Sizes = cloneStrings(p.Sizes)
	p.Colors = cloneStrings(p.Colors)
	return p
}

// NewProductDraft returns the defaults the admin product form starts from.
func NewProductDraft() Product {
	return Product{
		Price:    decimal.Zero,
		Category: CategoryMen,
		Images:   []string{"https://picsum.photos/seed/new/600/800"},
		Sizes:    []string{"S", "M", "L"},
		Colors:   []string{"Black", "White"},
		Stock:    10,
		Rating:   5,
	}
}

// ProductPatch carries a partial product edit. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *Category        `json:"category,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Sizes       []string         `json:"sizes,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Rating      *float64         `json:"rating,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
}

// Apply returns base with the patch applied. The result is validated before it is
// returned; base is never modified.
func (pp ProductPatch) Apply(base Product) (Product, error) {
	out := base.Clone()
	if pp.Name != nil {
		out.Name = *pp.Name
	}
	if pp.Description != nil {
		out.Description = *pp.Description
	}
	if pp.Price != nil {
		out.Price = *pp.Price
	}
	if pp.Category != nil {
		out.Category = *pp.Category
	}
	if pp.Images != nil {
		out.Images = cloneStrings(pp.Images)
	}
	if pp.Sizes != nil {
		out.Sizes = cloneStrings(pp.Sizes)
	}
	if pp.Colors != nil {
		out.Colors = cloneStrings(pp.Colors)
	}
	if pp.Stock != nil {
		out.Stock = *pp.Stock
	}
	if pp.Rating != nil {
		out.Rating = *pp.Rating
	}
	if pp.Featured != nil {
		out.Featured = *pp.Featured
	}
	if err := out.Validate(); err != nil {
		return Product{}, err
	}
	return out, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
