// Package checkout drives the shipping → payment → confirmation flow on top of
// the store. Card details are only checked for presence and never kept.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/service/pricing"
	"storefront/internal/service/store"
)

type Step int

const (
	ShippingEntry Step = iota
	PaymentEntry
	Confirmed
)

func (s Step) String() string {
	switch s {
	case ShippingEntry:
		return "shipping"
	case PaymentEntry:
		return "payment"
	case Confirmed:
		return "confirmed"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

var (
	ErrAddressRequired = errors.New("shipping address required")
	ErrPaymentRequired = errors.New("cardholder name and card number required")
	// ErrAuthRequired means nobody is logged in; the caller should send the
	// shopper to sign in. No order is created.
	ErrAuthRequired = errors.New("sign in required")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrWrongStep    = errors.New("action not allowed at this checkout step")
)

// Store is the part of the state manager checkout needs.
type Store interface {
	User() *domain.User
	Cart() []domain.CartItem
	Products() []domain.Product
	PlaceOrder(ctx context.Context, build store.OrderBuilder) (domain.Order, error)
}

type Flow struct {
	store   Store
	now     func() time.Time
	newID   func() string
	step    Step
	address string
	order   domain.Order
}

func New(s Store) *Flow {
	return &Flow{
		store: s,
		now:   func() time.Time { return time.Now().UTC() },
		newID: store.NewOrderID,
		step:  ShippingEntry,
	}
}

func (f *Flow) Step() Step { return f.step }

func (f *Flow) Address() string { return f.address }

// Summary prices the current cart with the same rule as the cart view.
func (f *Flow) Summary() pricing.Summary {
	return pricing.Summarize(pricing.Enrich(f.store.Cart(), f.store.Products()))
}

// ContinueToPayment records the shipping address and moves to payment.
func (f *Flow) ContinueToPayment(address string) error {
	if f.step != ShippingEntry {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressRequired
	}
	f.address = address
	f.step = PaymentEntry
	return nil
}

// PlaceOrder snapshots the cart into a pending order. The store builds, records
// and clears in one write.
func (f *Flow) PlaceOrder(ctx context.Context, cardName, cardNumber string) (domain.Order, error) {
	if f.step != PaymentEntry {
		return domain.Order{}, fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if strings.TrimSpace(cardName) == "" || strings.TrimSpace(cardNumber) == "" {
		return domain.Order{}, ErrPaymentRequired
	}
	order, err := f.store.PlaceOrder(ctx, f.buildOrder)
	if err != nil {
		if errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrEmptyCart) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}
	f.order = order
	f.step = Confirmed
	return order.Clone(), nil
}

func (f *Flow) buildOrder(user *domain.User, cart []domain.CartItem, products []domain.Product) (domain.Order, error) {
	if user == nil {
		return domain.Order{}, ErrAuthRequired
	}
	if len(cart) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	summary := pricing.Summarize(pricing.Enrich(cart, products))
	return domain.Order{
		ID:        f.newID(),
		UserID:    user.ID,
		Items:     cart,
		Total:     summary.Total,
		Status:    domain.OrderPending,
		CreatedAt: f.now(),
		Address:   f.address,
	}, nil
}

// Order returns the placed order once the flow is confirmed.
func (f *Flow) Order() (domain.Order, bool) {
	if f.step != Confirmed {
		return domain.Order{}, false
	}
	return f.order.Clone(), true
}
