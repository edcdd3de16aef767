package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating and comment on a product.
type Review struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	CustomerID uuid.UUID
	Rating     int // 1 through 5.
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
