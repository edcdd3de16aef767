package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item offered by a student designer.
type Product struct {
	ID          uuid.UUID  // Stable unique identifier for the product.
	Name        string     // Display name.
	Description string     // Free-text description.
	Price       float64    // Listed unit price.
	ImageURL    string     // Product image location.
	DesignerID  *uuid.UUID // Identity of the designer who created the product, if attributed.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
