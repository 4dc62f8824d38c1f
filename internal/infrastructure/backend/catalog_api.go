package backend

import (
	"context"
	"net/url"

	"github.com/urmu/storefront/domain"
)

var _ domain.CatalogAPI = (*Client)(nil)

func (c *Client) ListProducts(ctx context.Context, query domain.ProductQuery) (*domain.Page[domain.Product], error) {
	var page domain.Page[domain.Product]
	if err := c.get(ctx, "/products", "", query.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return listAll[domain.Category](ctx, c, "/categories")
}

func (c *Client) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return listAll[domain.Brand](ctx, c, "/brands")
}

func (c *Client) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return listAll[domain.Banner](ctx, c, "/banners")
}

// listAll fetches a small reference list in one page
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	query := url.Values{}
	query.Set("skip", "0")
	query.Set("limit", "100")

	var page domain.Page[T]
	if err := c.get(ctx, path, "", query, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		return []T{}, nil
	}
	return page.Data, nil
}
