package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/catalog"
)

// CartServiceImpl implements domain.CartService
type CartServiceImpl struct {
	api           domain.CartAPI
	currencyLabel string
}

// NewCartService creates a new cart service
func NewCartService(api domain.CartAPI, currencyLabel string) domain.CartService {
	return &CartServiceImpl{api: api, currencyLabel: currencyLabel}
}

func (s *CartServiceImpl) View(ctx context.Context, session *domain.Session) (*domain.CartView, error) {
	cart, err := s.api.GetCart(ctx, session.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return s.project(cart), nil
}

func (s *CartServiceImpl) Add(ctx context.Context, session *domain.Session, productID, variantID string, quantity int) (*domain.CartView, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, &domain.FieldError{Field: "productId", Err: domain.ErrMissingField}
	}
	if quantity < 1 {
		return nil, &domain.FieldError{Field: "quantity", Err: domain.ErrInvalidQuantity}
	}
	cart, err := s.api.AddCartItem(ctx, session.AccessToken, productID, variantID, quantity)
	if err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return s.project(cart), nil
}

func (s *CartServiceImpl) Update(ctx context.Context, session *domain.Session, itemID string, quantity int) (*domain.CartView, error) {
	if quantity < 1 {
		return nil, &domain.FieldError{Field: "quantity", Err: domain.ErrInvalidQuantity}
	}
	cart, err := s.api.UpdateCartItem(ctx, session.AccessToken, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return s.project(cart), nil
}

func (s *CartServiceImpl) Remove(ctx context.Context, session *domain.Session, itemID string) (*domain.CartView, error) {
	cart, err := s.api.RemoveCartItem(ctx, session.AccessToken, itemID)
	if err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	return s.project(cart), nil
}

// project prices every line and sums the totals
func (s *CartServiceImpl) project(cart *domain.Cart) *domain.CartView {
	view := &domain.CartView{
		Items:         make([]domain.CartLine, 0, len(cart.Items)),
		CurrencyLabel: s.currencyLabel,
	}
	for _, item := range cart.Items {
		final := catalog.FinalPrice(item.Product)
		line := domain.CartLine{
			CartItem:   item,
			UnitPrice:  item.Product.BasePrice,
			FinalPrice: final,
			LineTotal:  round2(final * float64(item.Quantity)),
		}
		view.Items = append(view.Items, line)
		view.ItemCount += item.Quantity
		view.Subtotal += item.Product.BasePrice * float64(item.Quantity)
		view.Total += line.LineTotal
	}
	view.Subtotal = round2(view.Subtotal)
	view.Total = round2(view.Total)
	view.Discount = round2(view.Subtotal - view.Total)
	return view
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
