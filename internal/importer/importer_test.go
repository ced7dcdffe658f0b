package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type stubCatalog struct {
	products []domain.Product
	added    []string
	updated  []string
}

func (s *stubCatalog) Product(id string) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *stubCatalog) AddProduct(_ context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.products = append(s.products, p)
	s.added = append(s.added, p.ID)
	return nil
}

func (s *stubCatalog) UpdateProduct(_ context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
		}
	}
	s.updated = append(s.updated, p.ID)
	return nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,description,price,category,images,sizes,colors,stock,rating,featured
p-1,Linen Shirt,Breezy,89.50,Men,https://example.com/a.jpg,S;M;L,White;Navy,12,4.5,true
,,,,,https://example.com/b.jpg;https://example.com/c.jpg,,,,,
,Wrap Dress,,120,Women,https://example.com/d.jpg,XS;S,Red,3,,`

	catalog := &stubCatalog{
		products: []domain.Product{{
			ID: "p-1", Name: "Old", Price: decimal.NewFromInt(1), Category: domain.CategoryMen,
			Images: []string{"x"}, Sizes: []string{"M"}, Colors: []string{"Black"},
		}},
	}
	imp := NewCSVImporter(strings.NewReader(csvData), catalog)
	imp.newID = func() string { return "generated" }

	res, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Added != 1 || res.Updated != 1 || res.Total() != 2 {
		t.Fatalf("unexpected result %+v", res)
	}

	shirt, _ := catalog.Product("p-1")
	if shirt.Name != "Linen Shirt" || !shirt.Price.Equal(decimal.RequireFromString("89.50")) || !shirt.Featured {
		t.Fatalf("unexpected product data: %+v", shirt)
	}
	if len(shirt.Images) != 3 || shirt.Images[2] != "https://example.com/c.jpg" {
		t.Fatalf("expected continuation images, got %v", shirt.Images)
	}
	if len(shirt.Sizes) != 3 || shirt.Stock != 12 || shirt.Rating != 4.5 {
		t.Fatalf("unexpected variants: %+v", shirt)
	}

	dress, ok := catalog.Product("generated")
	if !ok || dress.Category != domain.CategoryWomen || dress.Rating != 0 {
		t.Fatalf("expected dress with generated id, got %+v", dress)
	}
}

func TestCSVImporter_InvalidProductStops(t *testing.T) {
	csvData := `name,price,category,images,sizes,colors
Hat,10,Kids,https://example.com/h.jpg,One,Black`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubCatalog{})
	res, err := imp.Run(context.Background())
	if !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("expected invalid product error, got %v", err)
	}
	if res.Total() != 0 {
		t.Fatalf("expected nothing imported, got %+v", res)
	}
}

func TestCSVImporter_BadNumbers(t *testing.T) {
	for _, csvData := range []string{
		"name,price\nHat,cheap",
		"name,stock\nHat,many",
		"name,rating\nHat,great",
		"name,featured\nHat,maybe",
	} {
		if _, err := NewCSVImporter(strings.NewReader(csvData), &stubCatalog{}).Run(context.Background()); err == nil {
			t.Fatalf("expected parse error for %q", csvData)
		}
	}
}

func TestCSVImporter_MissingNameColumn(t *testing.T) {
	if _, err := NewCSVImporter(strings.NewReader("id,price\n1,10"), &stubCatalog{}).Run(context.Background()); err == nil {
		t.Fatalf("expected error without name column")
	}
}
