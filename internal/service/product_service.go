package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/freshmart/supermarket-service/internal/domain"
	"github.com/freshmart/supermarket-service/internal/events"
	"github.com/freshmart/supermarket-service/internal/repository"
	apperrors "github.com/freshmart/supermarket-service/pkg/util"
)

const productCacheTTL = 5 * time.Minute

// ProductService covers product CRUD and filtered lookups, with a Redis
// read-through cache on single-product reads.
type ProductService struct {
	products   repository.ProductRepository
	cache      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProductService builds the service. cache may be nil.
func NewProductService(products repository.ProductRepository, cache *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, dispatcher: dispatcher, logger: logger}
}

// Create persists a new product.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventProductCreated, product.Name, events.ProductCreatedPayload{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			StoreID:   product.StoreID,
		}))
	}
	return product, nil
}

// GetByID loads a product, serving from cache when possible.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}

	s.cacheSet(ctx, product)
	return product, nil
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

// ListByCategory filters by category.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	parsed, err := domain.ParseProductCategory(category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	return s.products.ListByCategory(ctx, parsed)
}

// ListByStoreID filters by owning store.
func (s *ProductService) ListByStoreID(ctx context.Context, storeID int64) ([]*domain.Product, error) {
	return s.products.ListByStoreID(ctx, storeID)
}

// ListByCategoryAndStoreID filters by both category and store.
func (s *ProductService) ListByCategoryAndStoreID(ctx context.Context, category string, storeID int64) ([]*domain.Product, error) {
	parsed, err := domain.ParseProductCategory(category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	return s.products.ListByCategoryAndStoreID(ctx, parsed, storeID)
}

// SearchByName returns products whose name contains the term, case-insensitive.
func (s *ProductService) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	return s.products.SearchByName(ctx, name)
}

// UpdateProductInput carries optional field updates; nil means keep current.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	StoreID     *int64
}

// Update applies a partial update and invalidates the cache entry.
func (s *ProductService) Update(ctx context.Context, id int64, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		category, err := domain.ParseProductCategory(*input.Category)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		product.Category = category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.StoreID != nil {
		product.StoreID = *input.StoreID
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.cacheDelete(ctx, id)
	return product, nil
}

// Delete removes a product and its cache entry.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return err
	}
	s.cacheDelete(ctx, id)
	return nil
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *ProductService) cacheGet(ctx context.Context, id int64) *domain.Product {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, productCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil
	}
	return &product
}

func (s *ProductService) cacheSet(ctx context.Context, product *domain.Product) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, productCacheKey(product.ID), raw, productCacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Debug("product cache set failed", zap.Error(err))
	}
}

func (s *ProductService) cacheDelete(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productCacheKey(id)).Err(); err != nil && s.logger != nil {
		s.logger.Debug("product cache delete failed", zap.Error(err))
	}
}
