package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderDelivered OrderStatus = "Delivered"
	OrderCanceled  OrderStatus = "Canceled"
)

// OrderStatuses lists every status in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderDelivered, OrderCanceled}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderDelivered, OrderCanceled:
		return true
	}
	return false
}

// Order is a checkout record. Items and Total are frozen when the order is placed.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Address   string          `json:"address"`
}

func (o Order) Clone() Order {
	if o.Items != nil {
		items := make([]CartItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}
