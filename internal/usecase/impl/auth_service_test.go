package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service usecase.AuthUsecase
	factory *fakeRepoFactory
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	factory := newFakeRepoFactory()
	service := NewAuthService(&fakeTxManager{factory: factory}, stubHasher{}, stubTokenCodec{}, testLogger())

	return authServiceFixtures{
		service: service,
		factory: factory,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:         "Alice@Example.COM",
		Password:      "s3cret",
		Role:          "customer",
		FirstName:     "Alice",
		LastName:      "Lin",
		PaymentMethod: "credit_card",
	})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "alice@example.com", out.Identity.Email)
	assert.Equal(t, entity.RoleCustomer, out.Identity.Role)

	stored, err := fx.factory.identities.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.Customer)
	assert.Equal(t, "credit_card", stored.Customer.PaymentMethod)
	assert.Nil(t, stored.Designer)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
}

func TestAuthService_Register_DesignerProfile(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	out, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:        "bob@example.com",
		Password:     "s3cret",
		Role:         "DESIGNER",
		PortfolioURL: "https://portfolio.example.com/bob",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleDesigner, out.Identity.Role)

	stored, err := fx.factory.identities.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.Designer)
	assert.Equal(t, "https://portfolio.example.com/bob", stored.Designer.PortfolioURL)
	assert.Nil(t, stored.Customer)
}

func TestAuthService_Register_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "carol@example.com",
		Password: "s3cret",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	// Same address, different casing and role. The email namespace spans
	// every role, so this must conflict.
	_, err = fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "CAROL@Example.com",
		Password: "other",
		Role:     "DESIGNER",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "dave@example.com",
		Password: "s3cret",
		Role:     "SUPERUSER",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAuthService_Register_RoleAcceptsAuthorityPrefix(t *testing.T) {
	fx := createTestAuthService(t)

	out, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "erin@example.com",
		Password: "s3cret",
		Role:     "ROLE_ADMIN",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Identity.Role)
}

func TestAuthService_Register_BlankPassword(t *testing.T) {
	fx := createTestAuthService(t)

	for _, password := range []string{"", "   ", "\t"} {
		_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
			Email:    "frank@example.com",
			Password: password,
			Role:     "CUSTOMER",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	}
}

func TestAuthService_Register_BlankEmail(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "   ",
		Password: "s3cret",
		Role:     "CUSTOMER",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAuthService_Login_Roundtrip(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "grace@example.com",
		Password: "s3cret",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	out, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "Grace@Example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "grace@example.com", out.Identity.Email)
	assert.Equal(t, entity.RoleCustomer, out.Identity.Role)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "henry@example.com",
		Password: "s3cret",
		Role:     "CUSTOMER",
	})
	require.NoError(t, err)

	_, unknownErr := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})
	_, wrongErr := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "henry@example.com",
		Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	// Neither message may leak which half of the pair was wrong.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_CurrentIdentity(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	registered, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "iris@example.com",
		Password: "s3cret",
		Role:     "DESIGNER",
	})
	require.NoError(t, err)

	summary, err := fx.service.CurrentIdentity(ctx, "iris@example.com")

	require.NoError(t, err)
	assert.Equal(t, registered.Identity.ID, summary.ID)
	assert.Equal(t, entity.RoleDesigner, summary.Role)
}

func TestAuthService_CurrentIdentity_DeletedIdentity(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.CurrentIdentity(context.Background(), "ghost@example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
