// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
)

// The view structs below are the JSON shapes the API returns. Identities are
// always projected through IdentityView so the password hash can never leak
// into a response body.

// IdentityView is the outward-facing representation of an identity.
type IdentityView struct {
	ID        uuid.UUID            `json:"id"`
	Email     string               `json:"email"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Role      string               `json:"role"`
	Customer  *CustomerProfileView `json:"customerProfile,omitempty"`
	Designer  *DesignerProfileView `json:"designerProfile,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// CustomerProfileView carries the customer-specific profile fields.
type CustomerProfileView struct {
	PaymentMethod string  `json:"paymentMethod"`
	Balance       float64 `json:"balance"`
}

// DesignerProfileView carries the designer-specific profile fields.
type DesignerProfileView struct {
	PortfolioURL string `json:"portfolioUrl"`
}

func newIdentityView(identity *entity.Identity) *IdentityView {
	if identity == nil {
		return nil
	}

	view := &IdentityView{
		ID:        identity.ID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      identity.Role.String(),
		CreatedAt: identity.CreatedAt,
	}
	if identity.Customer != nil {
		view.Customer = &CustomerProfileView{
			PaymentMethod: identity.Customer.PaymentMethod,
			Balance:       identity.Customer.Balance,
		}
	}
	if identity.Designer != nil {
		view.Designer = &DesignerProfileView{
			PortfolioURL: identity.Designer.PortfolioURL,
		}
	}

	return view
}

func newIdentityViews(identities []*entity.Identity) []*IdentityView {
	views := make([]*IdentityView, 0, len(identities))
	for _, identity := range identities {
		views = append(views, newIdentityView(identity))
	}

	return views
}

// SummaryView mirrors the usecase identity summary.
type SummaryView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
}

// AuthView is the login/registration response: the bearer token plus the
// identity it names.
type AuthView struct {
	Token    string       `json:"token"`
	Identity *SummaryView `json:"identity"`
}

func newAuthView(out *usecase.AuthOutput) *AuthView {
	return &AuthView{
		Token:    out.Token,
		Identity: newSummaryView(out.Identity),
	}
}

func newSummaryView(summary *usecase.IdentitySummary) *SummaryView {
	if summary == nil {
		return nil
	}

	return &SummaryView{
		ID:        summary.ID,
		Email:     summary.Email,
		FirstName: summary.FirstName,
		LastName:  summary.LastName,
		Role:      summary.Role.String(),
	}
}

// ProductView is the outward-facing representation of a product.
type ProductView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"imageUrl"`
	DesignerID  *uuid.UUID `json:"designerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newProductView(product *entity.Product) *ProductView {
	if product == nil {
		return nil
	}

	return &ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		DesignerID:  product.DesignerID,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func newProductViews(products []*entity.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, newProductView(product))
	}

	return views
}

// OrderView is the outward-facing representation of an order.
type OrderView struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customerId"`
	ProductID     uuid.UUID `json:"productId"`
	Quantity      int       `json:"quantity"`
	Total         float64   `json:"total"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newOrderView(order *entity.Order) *OrderView {
	if order == nil {
		return nil
	}

	return &OrderView{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
		Total:         order.Total,
		PaymentStatus: string(order.PaymentStatus),
		CreatedAt:     order.CreatedAt,
	}
}

func newOrderViews(orders []*entity.Order) []*OrderView {
	views := make([]*OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}

	return views
}

// ReviewView is the outward-facing representation of a review.
type ReviewView struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"productId"`
	CustomerID uuid.UUID `json:"customerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newReviewView(review *entity.Review) *ReviewView {
	if review == nil {
		return nil
	}

	return &ReviewView{
		ID:         review.ID,
		ProductID:  review.ProductID,
		CustomerID: review.CustomerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

func newReviewViews(reviews []*entity.Review) []*ReviewView {
	views := make([]*ReviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, newReviewView(review))
	}

	return views
}
