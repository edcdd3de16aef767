package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks the payment lifecycle of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// IsValid checks if the PaymentStatus is a known value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	default:
		return false
	}
}

// Order is a customer's purchase of a single product.
type Order struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID // Identity of the purchasing customer.
	ProductID     uuid.UUID
	Quantity      int
	Total         float64
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
