// Package store holds the storefront state manager: the single writer for the
// catalog, session user, cart, wishlist and orders.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"sync"

	"storefront/internal/domain"
	kvrepo "storefront/internal/repository/kv"
)

// ErrDuplicateProduct is returned when a product id is already in the catalog.
var ErrDuplicateProduct = errors.New("product id already exists")

// Options tune a Service. Zero values pick the defaults.
type Options struct {
	Namespace      string
	DefaultCatalog []domain.Product
	NewUserID      func() string
}

// Service owns the storefront state. Each mutation runs under one lock, writes all
// collections to the repository and only then becomes visible to readers.
type Service struct {
	mu        sync.Mutex
	repo      kvrepo.Repository
	logger    *log.Logger
	namespace string
	catalog   []domain.Product
	newUserID func() string
	state     State
}

func New(repo kvrepo.Repository, logger *log.Logger, opts Options) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.NewUserID == nil {
		opts.NewUserID = NewUserID
	}
	catalog := cloneProducts(opts.DefaultCatalog)
	return &Service{
		repo:      repo,
		logger:    logger,
		namespace: opts.Namespace,
		catalog:   catalog,
		newUserID: opts.NewUserID,
		state:     emptyState(catalog),
	}
}

// Load rehydrates every collection from the repository. A missing or unreadable
// collection falls back to its default without affecting the others.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := emptyState(s.catalog)

	var products []domain.Product
	if s.loadKey(ctx, KeyProducts, &products) && products != nil {
		next.Products = products
	}

	var user *domain.User
	if s.loadKey(ctx, KeyUser, &user) {
		next.User = user
	}

	var cart []domain.CartItem
	if s.loadKey(ctx, KeyCart, &cart) && cart != nil {
		for i := range cart {
			cart[i].Quantity = domain.ClampQuantity(cart[i].Quantity)
		}
		next.Cart = cart
	}

	var wishlist []string
	if s.loadKey(ctx, KeyWishlist, &wishlist) && wishlist != nil {
		next.Wishlist = wishlist
	}

	var orders []domain.Order
	if s.loadKey(ctx, KeyOrders, &orders) && orders != nil {
		next.Orders = orders
	}

	s.state = next
	s.logger.Printf("store: loaded products=%d cart=%d wishlist=%d orders=%d user=%t",
		len(next.Products), len(next.Cart), len(next.Wishlist), len(next.Orders), next.User != nil)
}

func (s *Service) loadKey(ctx context.Context, key string, dest any) bool {
	raw, err := s.repo.Get(ctx, s.namespace+key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("store: load key=%s error=%v, using default", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Printf("store: load key=%s corrupt value error=%v, using default", key, err)
		return false
	}
	return true
}

// mutate applies fn to a copy of the state, persists the copy and commits it.
func (s *Service) mutate(ctx context.Context, op string, fn func(next *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	entries, err := next.encode(s.namespace)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.SetMany(ctx, entries); err != nil {
		s.logger.Printf("store: %s persist error=%v", op, err)
		return fmt.Errorf("%s: persist: %w", op, err)
	}
	s.state = next
	return nil
}

// Snapshot returns a copy of every collection.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Service) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.state.Products)
}

func (s *Service) Product(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := productIndex(s.state.Products, id); i >= 0 {
		return s.state.Products[i].Clone(), true
	}
	return domain.Product{}, false
}

// User returns the session user, or nil when nobody is logged in.
func (s *Service) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Service) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Cart)
}

func (s *Service) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Wishlist)
}

func (s *Service) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.Wishlist, productID)
}

func (s *Service) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.state.Orders))
	for i, o := range s.state.Orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *Service) Order(id string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.state.Orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return domain.Order{}, false
}

// Login replaces any current session user with one derived from email.
func (s *Service) Login(ctx context.Context, email string, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("unknown role %q", role)
	}
	user := domain.User{
		ID:    s.newUserID(),
		Name:  domain.DisplayNameFromEmail(email),
		Email: email,
		Role:  role,
	}
	err := s.mutate(ctx, "login", func(next *State) error {
		u := user
		next.User = &u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Printf("store: login user_id=%s role=%s", user.ID, user.Role)
	return user, nil
}

// Logout clears the session user. Cart, wishlist and orders are kept.
func (s *Service) Logout(ctx context.Context) error {
	return s.mutate(ctx, "logout", func(next *State) error {
		next.User = nil
		return nil
	})
}

// AddToCart merges item into the line with the same product and size, keeping
// that line's color, or appends a new line.
func (s *Service) AddToCart(ctx context.Context, item domain.CartItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return errors.New("productId required")
	}
	item.Quantity = domain.ClampQuantity(item.Quantity)
	return s.mutate(ctx, "add to cart", func(next *State) error {
		for i := range next.Cart {
			if next.Cart[i].SameLine(item) {
				next.Cart[i].Quantity += item.Quantity
				return nil
			}
		}
		next.Cart = append(next.Cart, item)
		return nil
	})
}

// RemoveFromCart drops every line for productID, whatever its size or color.
func (s *Service) RemoveFromCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, "remove from cart", func(next *State) error {
		next.Cart = slices.DeleteFunc(next.Cart, func(c domain.CartItem) bool {
			return c.ProductID == productID
		})
		return nil
	})
}

// RemoveCartLine drops only the line for productID in size.
func (s *Service) RemoveCartLine(ctx context.Context, productID, size string) error {
	key := domain.CartItem{ProductID: productID, SelectedSize: size}
	return s.mutate(ctx, "remove cart line", func(next *State) error {
		next.Cart = slices.DeleteFunc(next.Cart, key.SameLine)
		return nil
	})
}

// UpdateCartQuantity sets every line for productID to max(1, qty).
func (s *Service) UpdateCartQuantity(ctx context.Context, productID string, qty int) error {
	qty = domain.ClampQuantity(qty)
	return s.mutate(ctx, "update cart quantity", func(next *State) error {
		for i := range next.Cart {
			if next.Cart[i].ProductID == productID {
				next.Cart[i].Quantity = qty
			}
		}
		return nil
	})
}

// UpdateCartLineQuantity sets the line for productID in size to max(1, qty).
func (s *Service) UpdateCartLineQuantity(ctx context.Context, productID, size string, qty int) error {
	key := domain.CartItem{ProductID: productID, SelectedSize: size}
	qty = domain.ClampQuantity(qty)
	return s.mutate(ctx, "update cart line quantity", func(next *State) error {
		for i := range next.Cart {
			if next.Cart[i].SameLine(key) {
				next.Cart[i].Quantity = qty
			}
		}
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, "clear cart", func(next *State) error {
		next.Cart = []domain.CartItem{}
		return nil
	})
}

// ToggleWishlist flips membership of productID and reports whether it is now present.
func (s *Service) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	var present bool
	err := s.mutate(ctx, "toggle wishlist", func(next *State) error {
		if i := slices.Index(next.Wishlist, productID); i >= 0 {
			next.Wishlist = slices.Delete(next.Wishlist, i, i+1)
			present = false
			return nil
		}
		next.Wishlist = append(next.Wishlist, productID)
		present = true
		return nil
	})
	return present, err
}

func validateOrder(order domain.Order) error {
	if strings.TrimSpace(order.ID) == "" {
		return errors.New("order id required")
	}
	if !order.Status.Valid() {
		return fmt.Errorf("unknown order status %q", order.Status)
	}
	return nil
}

// OrderBuilder turns the session user, cart and catalog into an order. It runs
// under the store lock and must not call back into the store.
type OrderBuilder func(user *domain.User, cart []domain.CartItem, products []domain.Product) (domain.Order, error)

// PlaceOrder builds an order from the current state and commits it with an
// emptied cart in the same write, so no cart change can land between the
// snapshot and the clear. A build error leaves the state untouched.
func (s *Service) PlaceOrder(ctx context.Context, build OrderBuilder) (domain.Order, error) {
	var placed domain.Order
	err := s.mutate(ctx, "place order", func(next *State) error {
		var user *domain.User
		if next.User != nil {
			u := *next.User
			user = &u
		}
		order, err := build(user, slices.Clone(next.Cart), cloneProducts(next.Products))
		if err != nil {
			return err
		}
		if err := validateOrder(order); err != nil {
			return err
		}
		order = order.Clone()
		next.Orders = append([]domain.Order{order}, next.Orders...)
		next.Cart = []domain.CartItem{}
		placed = order.Clone()
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.logger.Printf("store: order placed id=%s user_id=%s total=%s", placed.ID, placed.UserID, placed.Total.StringFixed(2))
	return placed, nil
}

// AddOrder prepends order and empties the cart in a single write.
func (s *Service) AddOrder(ctx context.Context, order domain.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	order = order.Clone()
	err := s.mutate(ctx, "add order", func(next *State) error {
		next.Orders = append([]domain.Order{order}, next.Orders...)
		next.Cart = []domain.CartItem{}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Printf("store: order placed id=%s user_id=%s total=%s", order.ID, order.UserID, order.Total.StringFixed(2))
	return nil
}

// UpdateOrder sets the status of orderID. Any status may follow any other; an
// unknown order id is a no-op.
func (s *Service) UpdateOrder(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.mutate(ctx, "update order", func(next *State) error {
		for i := range next.Orders {
			if next.Orders[i].ID == orderID {
				next.Orders[i].Status = status
			}
		}
		return nil
	})
}

// AddProduct validates p and prepends it to the catalog.
func (s *Service) AddProduct(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p = p.Clone()
	return s.mutate(ctx, "add product", func(next *State) error {
		if productIndex(next.Products, p.ID) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		next.Products = append([]domain.Product{p}, next.Products...)
		return nil
	})
}

// UpdateProduct replaces the catalog entry with p's id. Unknown ids are a no-op.
func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p = p.Clone()
	return s.mutate(ctx, "update product", func(next *State) error {
		if i := productIndex(next.Products, p.ID); i >= 0 {
			next.Products[i] = p
		}
		return nil
	})
}

// PatchProduct applies patch to the product with id and returns the result.
func (s *Service) PatchProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	var updated domain.Product
	err := s.mutate(ctx, "patch product", func(next *State) error {
		i := productIndex(next.Products, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		p, err := patch.Apply(next.Products[i])
		if err != nil {
			return err
		}
		next.Products[i] = p
		updated = p.Clone()
		return nil
	})
	return updated, err
}

// DeleteProduct removes the product with id. Cart lines and orders that reference
// it are left alone.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete product", func(next *State) error {
		next.Products = slices.DeleteFunc(next.Products, func(p domain.Product) bool {
			return p.ID == id
		})
		return nil
	})
}

// ReplaceCatalog swaps the whole catalog, e.g. to restore the seed products.
func (s *Service) ReplaceCatalog(ctx context.Context, products []domain.Product) error {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	catalog := cloneProducts(products)
	return s.mutate(ctx, "replace catalog", func(next *State) error {
		next.Products = catalog
		return nil
	})
}

func productIndex(products []domain.Product, id string) int {
	return slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == id })
}
