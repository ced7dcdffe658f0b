package store

import (
	"encoding/json"
	"fmt"

	"storefront/internal/domain"
)

// Storage keys, relative to the configured namespace.
const (
	KeyProducts = "products"
	KeyUser     = "user"
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyOrders   = "orders"
)

// DefaultNamespace prefixes every storage key.
const DefaultNamespace = "vv_"

// State is a point-in-time copy of the five collections.
type State struct {
	Products []domain.Product  `json:"products"`
	User     *domain.User      `json:"user"`
	Cart     []domain.CartItem `json:"cart"`
	Wishlist []string          `json:"wishlist"`
	Orders   []domain.Order    `json:"orders"`
}

func emptyState(catalog []domain.Product) State {
	return State{
		Products: cloneProducts(catalog),
		Cart:     []domain.CartItem{},
		Wishlist: []string{},
		Orders:   []domain.Order{},
	}
}

func (s State) clone() State {
	out := State{
		Products: cloneProducts(s.Products),
		Cart:     make([]domain.CartItem, len(s.Cart)),
		Wishlist: make([]string, len(s.Wishlist)),
		Orders:   make([]domain.Order, len(s.Orders)),
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	copy(out.Cart, s.Cart)
	copy(out.Wishlist, s.Wishlist)
	for i, o := range s.Orders {
		out.Orders[i] = o.Clone()
	}
	return out
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// encode serializes every collection; the whole map is written as one batch.
func (s State) encode(namespace string) (map[string][]byte, error) {
	values := map[string]any{
		KeyProducts: s.Products,
		KeyUser:     s.User,
		KeyCart:     s.Cart,
		KeyWishlist: s.Wishlist,
		KeyOrders:   s.Orders,
	}
	out := make(map[string][]byte, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out[namespace+key] = b
	}
	return out, nil
}
