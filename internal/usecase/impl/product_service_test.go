package impl

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productServiceFixtures struct {
	service usecase.ProductUsecase
	factory *fakeRepoFactory
}

func createTestProductService(t *testing.T) productServiceFixtures {
	t.Helper()

	factory := newFakeRepoFactory()
	service := NewProductService(&fakeTxManager{factory: factory}, testLogger())

	return productServiceFixtures{
		service: service,
		factory: factory,
	}
}

func seedDesigner(t *testing.T, factory *fakeRepoFactory, email string) *entity.Identity {
	t.Helper()

	identity := &entity.Identity{
		Email:        email,
		PasswordHash: stubHashPrefix + "pw",
		Role:         entity.RoleDesigner,
		Designer:     &entity.DesignerProfile{PortfolioURL: "https://portfolio.example.com"},
	}
	require.NoError(t, factory.identities.Create(context.Background(), identity))

	return identity
}

func TestProductService_CreateProduct(t *testing.T) {
	fx := createTestProductService(t)
	designer := seedDesigner(t, fx.factory, "maker@example.com")

	product, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:       "Canvas Tote",
		Price:      19.9,
		DesignerID: &designer.ID,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Canvas Tote", product.Name)
	require.NotNil(t, product.DesignerID)
	assert.Equal(t, designer.ID, *product.DesignerID)
}

func TestProductService_CreateProduct_UnknownDesigner(t *testing.T) {
	fx := createTestProductService(t)

	missing := uuid.New()
	_, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:       "Orphan",
		Price:      5,
		DesignerID: &missing,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestProductService_CreateProduct_NonDesignerReference(t *testing.T) {
	fx := createTestProductService(t)

	customer := &entity.Identity{
		Email:        "buyer@example.com",
		PasswordHash: stubHashPrefix + "pw",
		Role:         entity.RoleCustomer,
		Customer:     &entity.CustomerProfile{},
	}
	require.NoError(t, fx.factory.identities.Create(context.Background(), customer))

	_, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:       "Mislabeled",
		Price:      5,
		DesignerID: &customer.ID,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	fx := createTestProductService(t)

	_, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "  ", Price: 1})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Neg", Price: -1})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestProductService_UpdateProduct(t *testing.T) {
	fx := createTestProductService(t)

	product, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:  "Old Name",
		Price: 10,
	})
	require.NoError(t, err)

	name := "New Name"
	price := 12.5
	updated, err := fx.service.UpdateProduct(context.Background(), product.ID, usecase.UpdateProductInput{
		Name:  &name,
		Price: &price,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	name := "Nope"
	_, err := fx.service.UpdateProduct(context.Background(), uuid.New(), usecase.UpdateProductInput{Name: &name})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	fx := createTestProductService(t)

	product, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Gone", Price: 1})
	require.NoError(t, err)

	require.NoError(t, fx.service.DeleteProduct(context.Background(), product.ID))

	_, err = fx.service.GetProduct(context.Background(), product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	fx := createTestProductService(t)

	_, err := fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "A", Price: 1})
	require.NoError(t, err)
	_, err = fx.service.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "B", Price: 2})
	require.NoError(t, err)

	products, err := fx.service.ListProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 2)
}
