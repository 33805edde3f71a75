package domain

import (
	"fmt"
	"time"
)

// PaymentStatus is the linear fulfillment progression of an order.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "Pending"
	StatusShipped   PaymentStatus = "Shipped"
	StatusDelivered PaymentStatus = "Delivered"
)

// Next returns the status following s. It errors when s is terminal or not
// part of the progression; there are no branches or rollback transitions.
func (s PaymentStatus) Next() (PaymentStatus, error) {
	switch s {
	case StatusPending:
		return StatusShipped, nil
	case StatusShipped:
		return StatusDelivered, nil
	case StatusDelivered:
		return "", fmt.Errorf("%w: order already delivered", ErrInvalidTransition)
	default:
		return "", fmt.Errorf("%w: unknown payment status %q", ErrInvalidTransition, string(s))
	}
}

// Order is the durable header of a completed purchase.
type Order struct {
	ID              int64         `json:"orderId"`
	UserID          int64         `json:"-"`
	TotalPriceCents int64         `json:"totalPrice"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// OrderItem is one product line within an order. UnitPriceCents is the
// price in effect at purchase time and never changes afterwards.
type OrderItem struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"orderId"`
	ProductID      int64  `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPrice"`
	ProductName    string `json:"productName,omitempty"`
}

// Subtotal is quantity times the snapshot unit price.
func (i OrderItem) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPriceCents
}

// OrderSummary is a list-view projection of an order with its line count.
type OrderSummary struct {
	OrderID         int64         `json:"order_id"`
	TotalPriceCents int64         `json:"total_price"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	TotalItems      int           `json:"total_items"`
}

// OrderDetail is the order header joined with its owner and full line set.
type OrderDetail struct {
	Order
	UserEmail string      `json:"userEmail"`
	UserName  string      `json:"userName"`
	Items     []OrderItem `json:"items"`
}

// AdminOrder is the dashboard projection of an order with its customer name.
type AdminOrder struct {
	ID              int64         `json:"id"`
	Username        string        `json:"username"`
	TotalPriceCents int64         `json:"total_price"`
	Status          PaymentStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}
