package mocks

import (
	"context"

	"github.com/urmu/storefront/domain"
)

// MockCatalogAPI implements domain.CatalogAPI interface for testing
type MockCatalogAPI struct {
	ListProductsFunc   func(ctx context.Context, query domain.ProductQuery) (*domain.Page[domain.Product], error)
	GetProductFunc     func(ctx context.Context, id string) (*domain.Product, error)
	ListCategoriesFunc func(ctx context.Context) ([]domain.Category, error)
	ListBrandsFunc     func(ctx context.Context) ([]domain.Brand, error)
	ListBannersFunc    func(ctx context.Context) ([]domain.Banner, error)
}

func NewMockCatalogAPI() *MockCatalogAPI {
	return &MockCatalogAPI{}
}

func (m *MockCatalogAPI) ListProducts(ctx context.Context, query domain.ProductQuery) (*domain.Page[domain.Product], error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, query)
	}
	return &domain.Page[domain.Product]{Data: []domain.Product{}}, nil
}

func (m *MockCatalogAPI) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return &domain.Product{ID: id}, nil
}

func (m *MockCatalogAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return []domain.Category{}, nil
}

func (m *MockCatalogAPI) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	if m.ListBrandsFunc != nil {
		return m.ListBrandsFunc(ctx)
	}
	return []domain.Brand{}, nil
}

func (m *MockCatalogAPI) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	if m.ListBannersFunc != nil {
		return m.ListBannersFunc(ctx)
	}
	return []domain.Banner{}, nil
}

// Compile-time interface compliance verification
var _ domain.CatalogAPI = (*MockCatalogAPI)(nil)
