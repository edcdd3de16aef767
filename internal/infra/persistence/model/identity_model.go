// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityModel mirrors the 'identities' table. Every account — admin,
// customer or designer — lives here, so the unique index on email enforces
// the one-namespace invariant at the storage engine, even with multiple
// server instances writing concurrently.
type IdentityModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	CustomerProfile *CustomerProfileModel `gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE"`
	DesignerProfile *DesignerProfileModel `gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}

// CustomerProfileModel mirrors the 'customer_profiles' table.
type CustomerProfileModel struct {
	IdentityID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentMethod string    `gorm:"type:varchar(50);index"`
	Balance       float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}

// DesignerProfileModel mirrors the 'designer_profiles' table.
type DesignerProfileModel struct {
	IdentityID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	PortfolioURL string    `gorm:"type:varchar(512)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (DesignerProfileModel) TableName() string {
	return "designer_profiles"
}
