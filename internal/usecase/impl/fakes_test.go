package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"

	"github.com/google/uuid"
)

// The fakes below give the service tests real storage semantics (duplicate
// detection, not-found misses) without a database. Deterministic stand-ins
// replace the hasher and token codec so assertions stay readable.

// fakeTxManager runs the callback against a fixed repository factory. Commit
// and rollback are irrelevant for in-memory maps.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeRepoFactory struct {
	identities *memIdentityRepo
	products   *memProductRepo
	orders     *memOrderRepo
	reviews    *memReviewRepo
}

func (f *fakeRepoFactory) IdentityRepo() repository.IdentityRepository { return f.identities }
func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository   { return f.products }
func (f *fakeRepoFactory) OrderRepo() repository.OrderRepository       { return f.orders }
func (f *fakeRepoFactory) ReviewRepo() repository.ReviewRepository     { return f.reviews }

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		identities: &memIdentityRepo{byID: map[uuid.UUID]*entity.Identity{}},
		products:   &memProductRepo{byID: map[uuid.UUID]*entity.Product{}},
		orders:     &memOrderRepo{byID: map[uuid.UUID]*entity.Order{}},
		reviews:    &memReviewRepo{byID: map[uuid.UUID]*entity.Review{}},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- in-memory repositories ---

type memIdentityRepo struct {
	byID map[uuid.UUID]*entity.Identity
}

func (r *memIdentityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Identity, error) {
	identity, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	return identity, nil
}

func (r *memIdentityRepo) FindByEmail(_ context.Context, email string) (*entity.Identity, error) {
	normalized := entity.NormalizeEmail(email)
	for _, identity := range r.byID {
		if identity.Email == normalized {
			return identity, nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

func (r *memIdentityRepo) Create(_ context.Context, identity *entity.Identity) error {
	normalized := entity.NormalizeEmail(identity.Email)
	for _, existing := range r.byID {
		if existing.Email == normalized {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
	}

	identity.ID = uuid.New()
	identity.Email = normalized
	identity.CreatedAt = time.Now()
	identity.UpdatedAt = identity.CreatedAt
	if identity.Customer != nil {
		identity.Customer.IdentityID = identity.ID
	}
	if identity.Designer != nil {
		identity.Designer.IdentityID = identity.ID
	}
	r.byID[identity.ID] = identity

	return nil
}

func (r *memIdentityRepo) Update(_ context.Context, identity *entity.Identity) error {
	if _, ok := r.byID[identity.ID]; !ok {
		return repository.ErrIdentityNotFound
	}
	identity.UpdatedAt = time.Now()
	r.byID[identity.ID] = identity

	return nil
}

func (r *memIdentityRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrIdentityNotFound
	}
	delete(r.byID, id)

	return nil
}

func (r *memIdentityRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.Identity, error) {
	var identities []*entity.Identity
	for _, identity := range r.byID {
		if identity.Role == role {
			identities = append(identities, identity)
		}
	}

	return identities, nil
}

func (r *memIdentityRepo) FindByPaymentMethod(_ context.Context, paymentMethod string) ([]*entity.Identity, error) {
	var identities []*entity.Identity
	for _, identity := range r.byID {
		if identity.Customer != nil && identity.Customer.PaymentMethod == paymentMethod {
			identities = append(identities, identity)
		}
	}

	return identities, nil
}

type memProductRepo struct {
	byID map[uuid.UUID]*entity.Product
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, product := range r.byID {
		products = append(products, product)
	}

	return products, nil
}

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.byID[product.ID] = product

	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.byID[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	r.byID[product.ID] = product

	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.byID, id)

	return nil
}

type memOrderRepo struct {
	byID map[uuid.UUID]*entity.Order
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

func (r *memOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range r.byID {
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *memOrderRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range r.byID {
		if order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}

	return orders, nil
}

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.byID[order.ID] = order

	return nil
}

func (r *memOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.byID[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	order.UpdatedAt = time.Now()
	r.byID[order.ID] = order

	return nil
}

type memReviewRepo struct {
	byID map[uuid.UUID]*entity.Review
}

func (r *memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return review, nil
}

func (r *memReviewRepo) List(_ context.Context) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, review := range r.byID {
		reviews = append(reviews, review)
	}

	return reviews, nil
}

func (r *memReviewRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, review := range r.byID {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}

	return reviews, nil
}

func (r *memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	r.byID[review.ID] = review

	return nil
}

func (r *memReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := r.byID[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	review.UpdatedAt = time.Now()
	r.byID[review.ID] = review

	return nil
}

func (r *memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.byID, id)

	return nil
}

// --- stand-in domain services ---

const stubHashPrefix = "$2a$stub$"

// stubHasher is a deterministic PasswordHasher stand-in.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return stubHashPrefix + password, nil
}

func (stubHasher) Check(password, hash string) bool {
	return hash == stubHashPrefix+password
}

func (stubHasher) IsHash(value string) bool {
	return strings.HasPrefix(value, "$2a$")
}

// stubTokenCodec packs the claims into a delimited string.
type stubTokenCodec struct{}

func (stubTokenCodec) Issue(subject, role, userID string) (string, error) {
	return fmt.Sprintf("%s|%s|%s", subject, role, userID), nil
}

func (stubTokenCodec) Verify(token string) (*service.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return nil, service.ErrInvalidToken
	}

	claims := &service.Claims{Role: parts[1], UserID: parts[2]}
	claims.Subject = parts[0]

	return claims, nil
}

func (c stubTokenCodec) ExtractEmail(token string) (string, error) {
	claims, err := c.Verify(token)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (c stubTokenCodec) ExtractRole(token string) (string, error) {
	claims, err := c.Verify(token)
	if err != nil {
		return "", err
	}

	return claims.Role, nil
}

func (c stubTokenCodec) ExtractUserID(token string) (string, error) {
	claims, err := c.Verify(token)
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}

// stubQRCodeService records the last rendered URL.
type stubQRCodeService struct {
	lastURL string
}

func (s *stubQRCodeService) GeneratePortfolioQR(portfolioURL string) ([]byte, error) {
	s.lastURL = portfolioURL

	return []byte("png:" + portfolioURL), nil
}
