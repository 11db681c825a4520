package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of store.Store shared by the
// repository tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, table, keyAttr, keyValue string, out any) error {
	args := m.Called(ctx, table, keyAttr, keyValue, out)
	return args.Error(0)
}

func (m *MockStore) Put(ctx context.Context, table string, item any) error {
	args := m.Called(ctx, table, item)
	return args.Error(0)
}

func (m *MockStore) QueryIndex(ctx context.Context, table, index, attr, value string, out any) error {
	args := m.Called(ctx, table, index, attr, value, out)
	return args.Error(0)
}

func (m *MockStore) Scan(ctx context.Context, table string, out any) error {
	args := m.Called(ctx, table, out)
	return args.Error(0)
}

func (m *MockStore) UpdateFields(ctx context.Context, table, keyAttr, keyValue string, fields map[string]any, out any) error {
	args := m.Called(ctx, table, keyAttr, keyValue, fields, out)
	return args.Error(0)
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	repo := NewProductRepository(mockStore, "protein_products", zerolog.Nop())

	mockStore.On("Get", ctx, "protein_products", "id", "PZ001", mock.Anything).
		Run(func(args mock.Arguments) {
			p := args.Get(4).(*model.Product)
			*p = model.Product{ID: "PZ001", Name: "Prozis Bar - Choco Blast", Price: 2.0, Currency: "EUR", InStock: true}
		}).
		Return(nil)

	product, err := repo.GetByID(ctx, "PZ001")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "PZ001", product.ID)
	assert.Equal(t, 2.0, product.Price)
	mockStore.AssertExpectations(t)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	repo := NewProductRepository(mockStore, "protein_products", zerolog.Nop())

	mockStore.On("Get", ctx, "protein_products", "id", "PZ999", mock.Anything).
		Return(fmt.Errorf("%w: PZ999", store.ErrNotFound))

	product, err := repo.GetByID(ctx, "PZ999")

	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductRepository_GetByID_StoreFailure(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	repo := NewProductRepository(mockStore, "protein_products", zerolog.Nop())

	mockStore.On("Get", ctx, "protein_products", "id", "PZ001", mock.Anything).
		Return(fmt.Errorf("%w: timeout", store.ErrUnavailable))

	product, err := repo.GetByID(ctx, "PZ001")

	require.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, store.ErrUnavailable))
}

func TestProductRepository_ListInStock(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStore)
	repo := NewProductRepository(mockStore, "protein_products", zerolog.Nop())

	mockStore.On("QueryIndex", ctx, "protein_products", "InStockIndex", "in_stock", "true", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(5).(*[]model.Product)
			*out = []model.Product{
				{ID: "PZ001", Name: "Prozis Bar - Choco Blast", Price: 2.0, Currency: "EUR", InStock: true},
				{ID: "PZ002", Name: "Prozis Bar - Peanut Butter Power", Price: 2.0, Currency: "EUR", InStock: true},
			}
		}).
		Return(nil)

	products, err := repo.ListInStock(ctx)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "PZ001", products[0].ID)
	mockStore.AssertExpectations(t)
}
