package mocks

import (
	"context"

	"github.com/urmu/storefront/domain"
)

// MockCartAPI implements domain.CartAPI interface for testing
type MockCartAPI struct {
	GetCartFunc        func(ctx context.Context, accessToken string) (*domain.Cart, error)
	AddCartItemFunc    func(ctx context.Context, accessToken, productID, variantID string, quantity int) (*domain.Cart, error)
	UpdateCartItemFunc func(ctx context.Context, accessToken, itemID string, quantity int) (*domain.Cart, error)
	RemoveCartItemFunc func(ctx context.Context, accessToken, itemID string) (*domain.Cart, error)
}

func NewMockCartAPI() *MockCartAPI {
	return &MockCartAPI{}
}

func (m *MockCartAPI) GetCart(ctx context.Context, accessToken string) (*domain.Cart, error) {
	if m.GetCartFunc != nil {
		return m.GetCartFunc(ctx, accessToken)
	}
	return &domain.Cart{}, nil
}

func (m *MockCartAPI) AddCartItem(ctx context.Context, accessToken, productID, variantID string, quantity int) (*domain.Cart, error) {
	if m.AddCartItemFunc != nil {
		return m.AddCartItemFunc(ctx, accessToken, productID, variantID, quantity)
	}
	return &domain.Cart{}, nil
}

func (m *MockCartAPI) UpdateCartItem(ctx context.Context, accessToken, itemID string, quantity int) (*domain.Cart, error) {
	if m.UpdateCartItemFunc != nil {
		return m.UpdateCartItemFunc(ctx, accessToken, itemID, quantity)
	}
	return &domain.Cart{}, nil
}

func (m *MockCartAPI) RemoveCartItem(ctx context.Context, accessToken, itemID string) (*domain.Cart, error) {
	if m.RemoveCartItemFunc != nil {
		return m.RemoveCartItemFunc(ctx, accessToken, itemID)
	}
	return &domain.Cart{}, nil
}

// MockOrderAPI implements domain.OrderAPI interface for testing
type MockOrderAPI struct {
	ListOrdersFunc    func(ctx context.Context, accessToken string, skip, limit int) (*domain.Page[domain.Order], error)
	GetOrderFunc      func(ctx context.Context, accessToken, id string) (*domain.Order, error)
	CreateOrderFunc   func(ctx context.Context, accessToken string, input domain.CreateOrderInput) (*domain.Order, error)
	CreatePaymentFunc func(ctx context.Context, accessToken, orderID string) (*domain.Payment, error)
}

func NewMockOrderAPI() *MockOrderAPI {
	return &MockOrderAPI{}
}

func (m *MockOrderAPI) ListOrders(ctx context.Context, accessToken string, skip, limit int) (*domain.Page[domain.Order], error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx, accessToken, skip, limit)
	}
	return &domain.Page[domain.Order]{Data: []domain.Order{}}, nil
}

func (m *MockOrderAPI) GetOrder(ctx context.Context, accessToken, id string) (*domain.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, accessToken, id)
	}
	return &domain.Order{ID: id}, nil
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, accessToken string, input domain.CreateOrderInput) (*domain.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, accessToken, input)
	}
	return &domain.Order{ID: "order_1", Status: "pending"}, nil
}

func (m *MockOrderAPI) CreatePayment(ctx context.Context, accessToken, orderID string) (*domain.Payment, error) {
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, accessToken, orderID)
	}
	return &domain.Payment{ID: "payment_1", OrderID: orderID, RedirectURL: "https://gateway.test/pay"}, nil
}

// MockAddressAPI implements domain.AddressAPI interface for testing
type MockAddressAPI struct {
	ListAddressesFunc func(ctx context.Context, accessToken string) ([]domain.Address, error)
	CreateAddressFunc func(ctx context.Context, accessToken string, address domain.Address) (*domain.Address, error)
	DeleteAddressFunc func(ctx context.Context, accessToken, id string) error
}

func NewMockAddressAPI() *MockAddressAPI {
	return &MockAddressAPI{}
}

func (m *MockAddressAPI) ListAddresses(ctx context.Context, accessToken string) ([]domain.Address, error) {
	if m.ListAddressesFunc != nil {
		return m.ListAddressesFunc(ctx, accessToken)
	}
	return []domain.Address{}, nil
}

func (m *MockAddressAPI) CreateAddress(ctx context.Context, accessToken string, address domain.Address) (*domain.Address, error) {
	if m.CreateAddressFunc != nil {
		return m.CreateAddressFunc(ctx, accessToken, address)
	}
	address.ID = "address_1"
	return &address, nil
}

func (m *MockAddressAPI) DeleteAddress(ctx context.Context, accessToken, id string) error {
	if m.DeleteAddressFunc != nil {
		return m.DeleteAddressFunc(ctx, accessToken, id)
	}
	return nil
}

// MockWholesaleAPI implements domain.WholesaleAPI interface for testing
type MockWholesaleAPI struct {
	SubmitFunc func(ctx context.Context, accessToken string, app domain.WholesaleApplication) (*domain.WholesaleApplication, error)
	GetFunc    func(ctx context.Context, accessToken string) (*domain.WholesaleApplication, error)
}

func NewMockWholesaleAPI() *MockWholesaleAPI {
	return &MockWholesaleAPI{}
}

func (m *MockWholesaleAPI) SubmitWholesaleApplication(ctx context.Context, accessToken string, app domain.WholesaleApplication) (*domain.WholesaleApplication, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, accessToken, app)
	}
	app.ID = "application_1"
	app.Status = "pending"
	return &app, nil
}

func (m *MockWholesaleAPI) GetWholesaleApplication(ctx context.Context, accessToken string) (*domain.WholesaleApplication, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, accessToken)
	}
	return nil, &domain.APIError{Status: 404}
}

// Compile-time interface compliance verification
var (
	_ domain.CartAPI      = (*MockCartAPI)(nil)
	_ domain.OrderAPI     = (*MockOrderAPI)(nil)
	_ domain.AddressAPI   = (*MockAddressAPI)(nil)
	_ domain.WholesaleAPI = (*MockWholesaleAPI)(nil)
)
