package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/catalog"
	"github.com/urmu/storefront/internal/querystate"
)

// CatalogConfig holds listing and cache settings
type CatalogConfig struct {
	PageSize      int
	CacheTTL      time.Duration
	CurrencyLabel string
}

// CatalogServiceImpl implements domain.CatalogService. Responses are cached
// in Redis when a client is given.
type CatalogServiceImpl struct {
	api      domain.CatalogAPI
	cache    *redis.Client
	resolver *querystate.Resolver
	config   CatalogConfig
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(api domain.CatalogAPI, cache *redis.Client, config CatalogConfig, logger *zap.Logger) domain.CatalogService {
	if config.PageSize <= 0 {
		config.PageSize = domain.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogServiceImpl{
		api:      api,
		cache:    cache,
		resolver: querystate.NewResolver(catalog.Defaults),
		config:   config,
		logger:   logger,
	}
}

// SearchProducts resolves the raw query string into a filter and fetches one page
func (s *CatalogServiceImpl) SearchProducts(ctx context.Context, rawQuery string, role string) (*domain.ProductSearchResult, error) {
	filter := catalog.FilterFromQuery(s.resolver.Resolve(rawQuery))
	query := catalog.BuildQuery(filter, s.config.PageSize, role)
	if err := query.Validate(); err != nil {
		return nil, err
	}

	canonical := catalog.CanonicalQuery(filter)
	priceList := "retail"
	if query.PriceList != nil {
		priceList = *query.PriceList
	}
	key := "catalog:products:" + priceList + ":" + canonical

	page, err := cached(ctx, s, key, func() (*domain.Page[domain.Product], error) {
		return s.api.ListProducts(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	pageCount := 0
	if page.Count > 0 {
		pageCount = (page.Count + s.config.PageSize - 1) / s.config.PageSize
	}
	return &domain.ProductSearchResult{
		Data:      catalog.ProjectAll(page.Data, s.config.CurrencyLabel),
		Count:     page.Count,
		Page:      filter.Page,
		PageCount: pageCount,
		Query:     canonical,
		Filter:    filter,
	}, nil
}

func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id string) (*domain.ProductView, error) {
	product, err := cached(ctx, s, "catalog:product:"+id, func() (*domain.Product, error) {
		return s.api.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	view := catalog.Project(*product, s.config.CurrencyLabel)
	return &view, nil
}

func (s *CatalogServiceImpl) Categories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s, "catalog:categories", func() ([]domain.Category, error) {
		return s.api.ListCategories(ctx)
	})
}

func (s *CatalogServiceImpl) Brands(ctx context.Context) ([]domain.Brand, error) {
	return cached(ctx, s, "catalog:brands", func() ([]domain.Brand, error) {
		return s.api.ListBrands(ctx)
	})
}

// Banners returns the hero carousel slides
func (s *CatalogServiceImpl) Banners(ctx context.Context) ([]domain.Banner, error) {
	return cached(ctx, s, "catalog:banners", func() ([]domain.Banner, error) {
		return s.api.ListBanners(ctx)
	})
}

// cached serves key from Redis or stores the fetched value for the cache TTL.
// Cache failures only cost a backend call.
func cached[T any](ctx context.Context, s *CatalogServiceImpl, key string, fetch func() (T, error)) (T, error) {
	if s.cache == nil || s.config.CacheTTL <= 0 {
		return fetch()
	}

	data, err := s.cache.Get(ctx, key).Bytes()
	if err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		s.logger.Warn("discarding unreadable catalog cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, data, s.config.CacheTTL).Err(); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}
