package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/mocks"
	"github.com/urmu/storefront/internal/services"
)

func TestCatalogHandlers_Search(t *testing.T) {
	tests := []struct {
		name         string
		session      *domain.Session
		path         string
		expectedRaw  string
		expectedRole string
	}{
		{"guest", nil, "/products?q=%DA%86%D8%A7%DB%8C&page=2", "q=%DA%86%D8%A7%DB%8C&page=2", domain.RoleGuest},
		{"wholesale seller", &domain.Session{ID: "s2", Role: domain.RoleWholesale}, "/products", "", domain.RoleWholesale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockCatalogService()
			svc.SearchProductsFunc = func(ctx context.Context, rawQuery, role string) (*domain.ProductSearchResult, error) {
				assert.Equal(t, tt.expectedRaw, rawQuery)
				assert.Equal(t, tt.expectedRole, role)
				return &domain.ProductSearchResult{
					Data:      []domain.ProductView{{Product: domain.Product{ID: "p1"}, FinalPrice: 900}},
					Count:     13,
					Page:      2,
					PageCount: 2,
					Query:     "page=2&q=%DA%86%D8%A7%DB%8C",
				}, nil
			}
			h := NewCatalogHandlers(svc)
			r := newTestEngine(tt.session)
			r.GET("/products", h.Search)

			w := doRequest(t, r, http.MethodGet, tt.path, nil)

			require.Equal(t, http.StatusOK, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, float64(13), body["count"])
			assert.Equal(t, float64(2), body["pageCount"])
			assert.Equal(t, "page=2&q=%DA%86%D8%A7%DB%8C", body["query"])
			assert.Len(t, body["data"], 1)
		})
	}
}

func TestCatalogHandlers_Search_PriceRange(t *testing.T) {
	api := mocks.NewMockCatalogAPI()
	var sent domain.ProductQuery
	api.ListProductsFunc = func(ctx context.Context, query domain.ProductQuery) (*domain.Page[domain.Product], error) {
		sent = query
		return &domain.Page[domain.Product]{Data: []domain.Product{{ID: "p1", BasePrice: 300}}, Count: 1}, nil
	}
	h := NewCatalogHandlers(services.NewCatalogService(api, nil, services.CatalogConfig{PageSize: 12, CurrencyLabel: "تومان"}, nil))
	r := newTestEngine(nil)
	r.GET("/products", h.Search)

	w := doRequest(t, r, http.MethodGet, "/products?minPrice=500&maxPrice=100", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "minPrice=500", decodeBody(t, w)["query"])
	require.NotNil(t, sent.MinPrice)
	assert.Nil(t, sent.MaxPrice)

	w = doRequest(t, r, http.MethodGet, "/products?page=1e18", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, sent.Skip())
}

func TestCatalogHandlers_Search_InvalidFilter(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	svc.SearchProductsFunc = func(ctx context.Context, rawQuery, role string) (*domain.ProductSearchResult, error) {
		return nil, fmt.Errorf("%w: minimum price exceeds maximum price", domain.ErrInvalidProductFilter)
	}
	r := newTestEngine(nil)
	r.GET("/products", NewCatalogHandlers(svc).Search)

	w := doRequest(t, r, http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidFilter, decodeBody(t, w)["error"])
}

func TestCatalogHandlers_Lists(t *testing.T) {
	svc := mocks.NewMockCatalogService()
	svc.BannersFunc = func(ctx context.Context) ([]domain.Banner, error) {
		return []domain.Banner{{ID: "b1", Image: "/b1.jpg"}}, nil
	}
	svc.BrandsFunc = func(ctx context.Context) ([]domain.Brand, error) {
		return nil, domain.ErrBackendTimeout
	}
	svc.GetProductFunc = func(ctx context.Context, id string) (*domain.ProductView, error) {
		return nil, &domain.APIError{Status: 404, Message: "محصول یافت نشد"}
	}
	h := NewCatalogHandlers(svc)
	r := newTestEngine(nil)
	r.GET("/banners", h.Banners)
	r.GET("/brands", h.Brands)
	r.GET("/categories", h.Categories)
	r.GET("/products/:id", h.Product)

	w := doRequest(t, r, http.MethodGet, "/banners", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = doRequest(t, r, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decodeBody(t, w)["data"])

	w = doRequest(t, r, http.MethodGet, "/brands", nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = doRequest(t, r, http.MethodGet, "/products/p9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "محصول یافت نشد", decodeBody(t, w)["error"])
}
