package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validProduct() Product {
	p := NewProductDraft()
	p.ID = "p1"
	p.Name = "Linen Shirt"
	p.Price = decimal.NewFromInt(89)
	return p
}

func TestDisplayNameFromEmail(t *testing.T) {
	cases := map[string]string{
		"admin@example.com": "Admin",
		"jane@example.com":  "Jane",
		"x":                 "X",
		"@nolocal.com":      "",
	}
	for email, want := range cases {
		if got := DisplayNameFromEmail(email); got != want {
			t.Fatalf("DisplayNameFromEmail(%q) = %q, want %q", email, got, want)
		}
	}
}

func TestRoleForEmail(t *testing.T) {
	if RoleForEmail("admin@example.com") != RoleAdmin {
		t.Fatalf("expected admin role")
	}
	if RoleForEmail("jane@example.com") != RoleUser {
		t.Fatalf("expected user role")
	}
}

func TestClampQuantity(t *testing.T) {
	for _, q := range []int{-5, 0, 1} {
		if ClampQuantity(q) != 1 {
			t.Fatalf("ClampQuantity(%d) should be 1", q)
		}
	}
	if ClampQuantity(7) != 7 {
		t.Fatalf("ClampQuantity(7) should be 7")
	}
}

func TestProductValidate(t *testing.T) {
	if err := validProduct().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := validProduct()
	bad.Category = "Kids"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected invalid product, got %v", err)
	}

	bad = validProduct()
	bad.Rating = 5.5
	if err := bad.Validate(); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected invalid rating, got %v", err)
	}

	bad = validProduct()
	bad.Images = nil
	if err := bad.Validate(); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected missing images error, got %v", err)
	}
}

func TestProductPatchApply(t *testing.T) {
	base := validProduct()
	name := "Silk Shirt"
	price := decimal.NewFromInt(120)
	patched, err := ProductPatch{Name: &name, Price: &price, Sizes: []string{"M"}}.Apply(base)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if patched.Name != name || !patched.Price.Equal(price) || len(patched.Sizes) != 1 {
		t.Fatalf("unexpected patched product %+v", patched)
	}
	if base.Name != "Linen Shirt" || len(base.Sizes) != 3 {
		t.Fatalf("base product was modified: %+v", base)
	}
	if patched.ID != base.ID || patched.Category != base.Category {
		t.Fatalf("untouched fields changed: %+v", patched)
	}
}

func TestProductPatchApplyRejectsInvalid(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	if _, err := (ProductPatch{Price: &neg}).Apply(validProduct()); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected invalid product, got %v", err)
	}
	cat := Category("Kids")
	if _, err := (ProductPatch{Category: &cat}).Apply(validProduct()); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected invalid category, got %v", err)
	}
}

func TestOrderCloneDoesNotShareItems(t *testing.T) {
	o := Order{ID: "ORD-1", Items: []CartItem{{ProductID: "1", Quantity: 1}}}
	c := o.Clone()
	c.Items[0].Quantity = 9
	if o.Items[0].Quantity != 1 {
		t.Fatalf("clone shares items with original")
	}
}
