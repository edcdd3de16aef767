package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"marketplace/config"
	"marketplace/internal/delivery/http/middleware"
	"marketplace/internal/delivery/http/router/handler"
	"marketplace/internal/delivery/http/validator"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/service"
	"marketplace/internal/infra/auth"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthUsecase keeps accounts in a map and signs real tokens, so the
// identity filter and policy gate in front of the routes behave exactly as
// they do in production.
type fakeAuthUsecase struct {
	codec service.TokenCodec

	mu       sync.Mutex
	accounts map[string]*fakeAccount
}

type fakeAccount struct {
	summary  *usecase.IdentitySummary
	password string
}

func newFakeAuthUsecase(codec service.TokenCodec) *fakeAuthUsecase {
	return &fakeAuthUsecase{
		codec:    codec,
		accounts: make(map[string]*fakeAccount),
	}
}

func (f *fakeAuthUsecase) Register(_ context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email := entity.NormalizeEmail(input.Email)
	if _, exists := f.accounts[email]; exists {
		return nil, domainerrors.ErrEmailTaken
	}

	role, ok := entity.ParseRole(input.Role)
	if !ok {
		return nil, domainerrors.ErrInvalidRole
	}

	summary := &usecase.IdentitySummary{
		ID:        uuid.New(),
		Email:     email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
	}
	f.accounts[email] = &fakeAccount{summary: summary, password: input.Password}

	token, err := f.codec.Issue(email, role.String(), summary.ID.String())
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{Token: token, Identity: summary}, nil
}

func (f *fakeAuthUsecase) Login(_ context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[entity.NormalizeEmail(input.Email)]
	if !ok || account.password != input.Password {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := f.codec.Issue(account.summary.Email, account.summary.Role.String(), account.summary.ID.String())
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{Token: token, Identity: account.summary}, nil
}

func (f *fakeAuthUsecase) CurrentIdentity(_ context.Context, subject string) (*usecase.IdentitySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[subject]
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return account.summary, nil
}

// The remaining usecases are not under test here; the routes only need
// implementations that satisfy the interfaces.

type fakeAccountUsecase struct{}

func (fakeAccountUsecase) GetAccount(context.Context, uuid.UUID) (*entity.Identity, error) {
	return nil, domainerrors.ErrIdentityNotFound
}

func (fakeAccountUsecase) UpdateAccount(context.Context, uuid.UUID, usecase.UpdateAccountInput) (*entity.Identity, error) {
	return nil, domainerrors.ErrIdentityNotFound
}

func (fakeAccountUsecase) DeleteAccount(context.Context, uuid.UUID) error {
	return domainerrors.ErrIdentityNotFound
}

func (fakeAccountUsecase) ListAccountsByRole(context.Context, entity.Role) ([]*entity.Identity, error) {
	return nil, nil
}

func (fakeAccountUsecase) FindCustomersByPaymentMethod(context.Context, string) ([]*entity.Identity, error) {
	return nil, nil
}

type fakeDesignerUsecase struct{}

func (fakeDesignerUsecase) ListDesigners(context.Context) ([]*entity.Identity, error) {
	return nil, nil
}

func (fakeDesignerUsecase) PortfolioQR(context.Context, uuid.UUID) ([]byte, error) {
	return nil, domainerrors.ErrIdentityNotFound
}

type fakeProductUsecase struct{}

func (fakeProductUsecase) ListProducts(context.Context) ([]*entity.Product, error) {
	return []*entity.Product{}, nil
}

func (fakeProductUsecase) GetProduct(context.Context, uuid.UUID) (*entity.Product, error) {
	return nil, domainerrors.ErrProductNotFound
}

func (fakeProductUsecase) CreateProduct(_ context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	return &entity.Product{ID: uuid.New(), Name: input.Name, Price: input.Price, DesignerID: input.DesignerID}, nil
}

func (fakeProductUsecase) UpdateProduct(context.Context, uuid.UUID, usecase.UpdateProductInput) (*entity.Product, error) {
	return nil, domainerrors.ErrProductNotFound
}

func (fakeProductUsecase) DeleteProduct(context.Context, uuid.UUID) error {
	return domainerrors.ErrProductNotFound
}

type fakeOrderUsecase struct{}

func (fakeOrderUsecase) PlaceOrder(context.Context, uuid.UUID, usecase.PlaceOrderInput) (*entity.Order, error) {
	return nil, domainerrors.ErrProductNotFound
}

func (fakeOrderUsecase) GetOrder(context.Context, uuid.UUID) (*entity.Order, error) {
	return nil, domainerrors.ErrOrderNotFound
}

func (fakeOrderUsecase) ListOrders(context.Context) ([]*entity.Order, error) {
	return nil, nil
}

func (fakeOrderUsecase) ListCustomerOrders(context.Context, uuid.UUID) ([]*entity.Order, error) {
	return nil, nil
}

func (fakeOrderUsecase) UpdatePaymentStatus(context.Context, uuid.UUID, entity.PaymentStatus) (*entity.Order, error) {
	return nil, domainerrors.ErrOrderNotFound
}

type fakeReviewUsecase struct{}

func (fakeReviewUsecase) CreateReview(context.Context, uuid.UUID, usecase.CreateReviewInput) (*entity.Review, error) {
	return nil, domainerrors.ErrProductNotFound
}

func (fakeReviewUsecase) GetReview(context.Context, uuid.UUID) (*entity.Review, error) {
	return nil, domainerrors.ErrReviewNotFound
}

func (fakeReviewUsecase) ListReviews(context.Context) ([]*entity.Review, error) {
	return nil, nil
}

func (fakeReviewUsecase) ListProductReviews(context.Context, uuid.UUID) ([]*entity.Review, error) {
	return nil, nil
}

func (fakeReviewUsecase) UpdateReview(context.Context, uuid.UUID, uuid.UUID, usecase.UpdateReviewInput) (*entity.Review, error) {
	return nil, domainerrors.ErrReviewNotFound
}

func (fakeReviewUsecase) DeleteReview(context.Context, uuid.UUID, uuid.UUID, entity.Role) error {
	return domainerrors.ErrReviewNotFound
}

// newTestApp assembles a full echo app with the production route table,
// identity filter, policy gate and error handler.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			SigningKey: "integration-test-signing-key-0123456789",
			TokenTTL:   time.Hour,
		},
	}
	codec, err := auth.NewJWTCodec(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authUC := newFakeAuthUsecase(codec)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Use(middleware.NewIdentityMiddleware(codec, logger).Filter)
	e.Use(middleware.NewPolicyMiddleware(PolicyTable(), logger).Enforce)

	NewRouter(RouterParams{
		AuthHandler:     handler.NewAuthHandler(authUC, logger),
		AdminHandler:    handler.NewAdminHandler(fakeAccountUsecase{}, logger),
		CustomerHandler: handler.NewCustomerHandler(authUC, fakeAccountUsecase{}, logger),
		DesignerHandler: handler.NewDesignerHandler(fakeDesignerUsecase{}, fakeAccountUsecase{}, logger),
		ProductHandler:  handler.NewProductHandler(fakeProductUsecase{}, logger),
		OrderHandler:    handler.NewOrderHandler(fakeOrderUsecase{}, logger),
		ReviewHandler:   handler.NewReviewHandler(fakeReviewUsecase{}, logger),
	}).RegisterRoutes(e)

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func registerCustomer(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/auth/register", "",
		`{"email":"`+email+`","password":"secret-pw","role":"CUSTOMER","firstName":"Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)

	return envelope.Data.Token
}

func TestRouter_RegisterThenMe(t *testing.T) {
	e := newTestApp(t)

	token := registerCustomer(t, e, "Alice@Example.com")

	rec := doJSON(e, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.Contains(t, rec.Body.String(), entity.RoleCustomer.String())
}

func TestRouter_MeWithoutTokenIsUnauthorized(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestRouter_GarbageTokenStillReachesPublicRoute(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/products/all", "not-a-real-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CustomerCannotCreateAdmin(t *testing.T) {
	e := newTestApp(t)

	token := registerCustomer(t, e, "bob@example.com")

	rec := doJSON(e, http.MethodPost, "/admins/register", token,
		`{"email":"root@example.com","password":"secret-pw"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminSelfRegistrationRejected(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", "",
		`{"email":"root@example.com","password":"secret-pw","role":"ADMIN"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_CustomerCannotCreateProduct(t *testing.T) {
	e := newTestApp(t)

	token := registerCustomer(t, e, "carol@example.com")

	body := `{"name":"Mug","price":9.5,"designerId":"` + uuid.NewString() + `"}`

	anon := doJSON(e, http.MethodPost, "/products/create", "", body)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	rec := doJSON(e, http.MethodPost, "/products/create", token, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_LoginFailureIsGeneric(t *testing.T) {
	e := newTestApp(t)

	registerCustomer(t, e, "dave@example.com")

	wrongPassword := doJSON(e, http.MethodPost, "/auth/login", "",
		`{"email":"dave@example.com","password":"wrong"}`)
	unknownEmail := doJSON(e, http.MethodPost, "/auth/login", "",
		`{"email":"nobody@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRouter_HealthIsPublic(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
