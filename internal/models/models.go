package models

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStatus string

const (
	OrderCreated    OrderStatus = "created"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// KnownStatus reports whether s is one of the statuses the admin console may set.
func KnownStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderCreated, OrderPaid, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                string
	UserID            *string
	RazorpayOrderID   string
	RazorpayPaymentID *string
	RazorpaySignature *string
	Amount            int64
	Currency          string
	Status            OrderStatus
	GiftWrap          bool
	GiftNote          *string
	HidePrice         bool
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	ShippingAddress   string
	ShippingCity      string
	ShippingState     string
	ShippingPincode   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
