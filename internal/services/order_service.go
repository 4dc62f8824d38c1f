package services

import (
	"context"
	"fmt"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/infrastructure/export"
)

const (
	defaultOrderPageSize = 10
	exportBatchSize      = domain.MaxPageSize
	exportMaxOrders      = 5000
)

// OrderServiceImpl implements domain.OrderService
type OrderServiceImpl struct {
	api           domain.OrderAPI
	currencyLabel string
}

// NewOrderService creates a new order service
func NewOrderService(api domain.OrderAPI, currencyLabel string) domain.OrderService {
	return &OrderServiceImpl{api: api, currencyLabel: currencyLabel}
}

// History returns one page of the customer's orders
func (s *OrderServiceImpl) History(ctx context.Context, session *domain.Session, page, limit int) (*domain.Page[domain.Order], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultOrderPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	orders, err := s.api.ListOrders(ctx, session.AccessToken, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders.Data == nil {
		orders.Data = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderServiceImpl) Get(ctx context.Context, session *domain.Session, id string) (*domain.Order, error) {
	order, err := s.api.GetOrder(ctx, session.AccessToken, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// Export renders the whole order history as an XLSX workbook
func (s *OrderServiceImpl) Export(ctx context.Context, session *domain.Session) ([]byte, error) {
	var all []domain.Order
	for skip := 0; skip < exportMaxOrders; skip += exportBatchSize {
		page, err := s.api.ListOrders(ctx, session.AccessToken, skip, exportBatchSize)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		all = append(all, page.Data...)
		if len(page.Data) < exportBatchSize || len(all) >= page.Count {
			break
		}
	}
	return export.OrdersXLSX(all, s.currencyLabel)
}
