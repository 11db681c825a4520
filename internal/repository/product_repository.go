package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/manueltarouca/protein-bars-mcp-server/internal/model"
	"github.com/manueltarouca/protein-bars-mcp-server/internal/store"

	"github.com/rs/zerolog"
)

// productRepository implements ProductRepository against the record store.
type productRepository struct {
	store  store.Store
	table  string
	logger zerolog.Logger
}

// NewProductRepository creates a store-backed product repository.
func NewProductRepository(s store.Store, table string, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		store:  s,
		table:  table,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.store.Get(ctx, r.table, "id", id, &p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// ListInStock retrieves all in-stock products via the InStockIndex.
func (r *productRepository) ListInStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.store.QueryIndex(ctx, r.table, inStockIndex, "in_stock", "true", &products)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query in-stock products")
		return nil, fmt.Errorf("failed to query in-stock products: %w", err)
	}

	r.logger.Debug().Int("count", len(products)).Msg("retrieved in-stock products")

	return products, nil
}
