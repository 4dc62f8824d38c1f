package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/mocks"
)

type commerceMocks struct {
	cart     *mocks.MockCartService
	checkout *mocks.MockCheckoutService
	orders   *mocks.MockOrderService
}

func commerceRouter(m commerceMocks, s *domain.Session) *gin.Engine {
	h := NewCommerceHandlers(m.cart, m.checkout, m.orders)
	r := newTestEngine(s)
	r.GET("/cart", h.Cart)
	r.POST("/cart/items", h.AddItem)
	r.PATCH("/cart/items/:id", h.UpdateItem)
	r.DELETE("/cart/items/:id", h.RemoveItem)
	r.POST("/checkout", h.Checkout)
	r.GET("/orders", h.Orders)
	r.GET("/orders/export", h.ExportOrders)
	r.GET("/orders/:id", h.Order)
	return r
}

func newCommerceMocks() commerceMocks {
	return commerceMocks{
		cart:     mocks.NewMockCartService(),
		checkout: mocks.NewMockCheckoutService(),
		orders:   mocks.NewMockOrderService(),
	}
}

func TestCommerceHandlers_RequireSession(t *testing.T) {
	r := commerceRouter(newCommerceMocks(), nil)

	for _, path := range []string{"/cart", "/orders", "/orders/o1", "/orders/export"} {
		w := doRequest(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCommerceHandlers_Cart(t *testing.T) {
	m := newCommerceMocks()
	m.cart.AddFunc = func(ctx context.Context, s *domain.Session, productID, variantID string, quantity int) (*domain.CartView, error) {
		assert.Equal(t, testSession, s)
		if quantity < 1 {
			return nil, &domain.FieldError{Field: "quantity", Err: domain.ErrInvalidQuantity}
		}
		return &domain.CartView{ItemCount: quantity, Items: []domain.CartLine{}}, nil
	}
	m.cart.UpdateFunc = func(ctx context.Context, s *domain.Session, itemID string, quantity int) (*domain.CartView, error) {
		assert.Equal(t, "i1", itemID)
		return &domain.CartView{ItemCount: quantity, Items: []domain.CartLine{}}, nil
	}
	r := commerceRouter(m, testSession)

	w := doRequest(t, r, http.MethodPost, "/cart/items", AddItemRequest{ProductID: "p1", Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["data"].(map[string]interface{})["itemCount"])

	w = doRequest(t, r, http.MethodPost, "/cart/items", AddItemRequest{ProductID: "p1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "quantity", body["field"])
	assert.Equal(t, "تعداد باید حداقل ۱ باشد", body["error"])

	w = doRequest(t, r, http.MethodPatch, "/cart/items/i1", UpdateItemRequest{Quantity: 5})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/cart/items/i1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommerceHandlers_Checkout(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedError  string
	}{
		{"order and payment created", nil, http.StatusCreated, ""},
		{"missing postal code", &domain.FieldError{Field: "postalCode", Err: domain.ErrInvalidPostalCode}, http.StatusBadRequest, "کد پستی باید ۱۰ رقم باشد"},
		{
			name:           "order rejected with a backend message",
			serviceErr:     fmt.Errorf("%w: %w", domain.ErrOrderFailed, &domain.APIError{Status: 400, Message: "سبد خرید خالی است"}),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "سبد خرید خالی است",
		},
		{
			name:           "order rejected without a message",
			serviceErr:     fmt.Errorf("%w: %w", domain.ErrOrderFailed, &domain.APIError{Status: 503}),
			expectedStatus: http.StatusBadGateway,
			expectedError:  "خطا در ثبت سفارش",
		},
		{
			name:           "payment failed after the order",
			serviceErr:     fmt.Errorf("%w: order o1", domain.ErrPaymentFailed),
			expectedStatus: http.StatusBadGateway,
			expectedError:  "خطا در ایجاد پرداخت",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newCommerceMocks()
			m.checkout.CheckoutFunc = func(ctx context.Context, s *domain.Session, input domain.CreateOrderInput) (*domain.CheckoutResult, error) {
				assert.Equal(t, "a1", input.AddressID)
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return mocks.NewMockCheckoutService().Checkout(ctx, s, input)
			}

			w := doRequest(t, commerceRouter(m, testSession), http.MethodPost, "/checkout", domain.CreateOrderInput{AddressID: "a1"})

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			body := decodeBody(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			payment := body["data"].(map[string]interface{})["payment"].(map[string]interface{})
			assert.Equal(t, "https://gateway.test/pay", payment["redirectUrl"])
		})
	}
}

func TestCommerceHandlers_Orders(t *testing.T) {
	m := newCommerceMocks()
	m.orders.HistoryFunc = func(ctx context.Context, s *domain.Session, page, limit int) (*domain.Page[domain.Order], error) {
		assert.Equal(t, 3, page)
		assert.Equal(t, 0, limit)
		return &domain.Page[domain.Order]{Data: []domain.Order{{ID: "o1"}}, Count: 21}, nil
	}
	r := commerceRouter(m, testSession)

	w := doRequest(t, r, http.MethodGet, "/orders?page=3&limit=abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(21), decodeBody(t, w)["count"])

	w = doRequest(t, r, http.MethodGet, "/orders/o7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "o7", decodeBody(t, w)["data"].(map[string]interface{})["id"])
}

func TestCommerceHandlers_ExportOrders(t *testing.T) {
	m := newCommerceMocks()
	m.orders.ExportFunc = func(ctx context.Context, s *domain.Session) ([]byte, error) {
		return []byte("PK-xlsx"), nil
	}

	w := doRequest(t, commerceRouter(m, testSession), http.MethodGet, "/orders/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.xlsx")
	assert.Equal(t, "PK-xlsx", w.Body.String())
}
