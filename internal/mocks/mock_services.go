package mocks

import (
	"context"

	"github.com/urmu/storefront/domain"
)

// MockAuthFlowService implements domain.AuthFlowService interface for testing
type MockAuthFlowService struct {
	StartFunc       func(ctx context.Context) (*domain.FlowStatus, error)
	StatusFunc      func(ctx context.Context, flowID string) (*domain.FlowStatus, error)
	SubmitPhoneFunc func(ctx context.Context, flowID, phone string) (*domain.FlowStatus, error)
	ResendFunc      func(ctx context.Context, flowID string) (*domain.FlowStatus, error)
	VerifyCodeFunc  func(ctx context.Context, flowID, code string) (*domain.FlowStatus, error)
	SignupFunc      func(ctx context.Context, flowID, firstName, lastName string) (*domain.FlowStatus, error)
	BackFunc        func(ctx context.Context, flowID string) (*domain.FlowStatus, error)
	ResetFunc       func(ctx context.Context, flowID string) (*domain.FlowStatus, error)
	LogoutFunc      func(ctx context.Context, session *domain.Session) error
}

func NewMockAuthFlowService() *MockAuthFlowService {
	return &MockAuthFlowService{}
}

func (m *MockAuthFlowService) Start(ctx context.Context) (*domain.FlowStatus, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx)
	}
	return &domain.FlowStatus{FlowID: "flow_1", Step: "phone"}, nil
}

func (m *MockAuthFlowService) Status(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, flowID)
	}
	return &domain.FlowStatus{FlowID: flowID, Step: "phone"}, nil
}

func (m *MockAuthFlowService) SubmitPhone(ctx context.Context, flowID, phone string) (*domain.FlowStatus, error) {
	if m.SubmitPhoneFunc != nil {
		return m.SubmitPhoneFunc(ctx, flowID, phone)
	}
	return &domain.FlowStatus{FlowID: flowID, Step: "otp", Phone: phone, ResendIn: 60}, nil
}

func (m *MockAuthFlowService) Resend(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, flowID)
	}
	return &domain.FlowStatus{FlowID: flowID, Step: "otp", ResendIn: 60}, nil
}

func (m *MockAuthFlowService) VerifyCode(ctx context.Context, flowID, code string) (*domain.FlowStatus, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, flowID, code)
	}
	return &domain.FlowStatus{FlowID: flowID, Step: "signup"}, nil
}

func (m *MockAuthFlowService) Signup(ctx context.Context, flowID, firstName, lastName string) (*domain.FlowStatus, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, flowID, firstName, lastName)
	}
	return &domain.FlowStatus{
		FlowID: flowID,
		Step:   "done",
		Result: &domain.AuthResult{SessionToken: "session_token_1", SessionID: "1", Role: domain.RoleCustomer, RedirectTo: "/"},
	}, nil
}

func (m *MockAuthFlowService) Back(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	if m.BackFunc != nil {
		return m.BackFunc(ctx, flowID)
	}
	return &domain.FlowStatus{FlowID: flowID, Step: "phone"}, nil
}

func (m *MockAuthFlowService) Reset(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, flowID)
	}
	return &domain.FlowStatus{FlowID: flowID, Step: "phone"}, nil
}

func (m *MockAuthFlowService) Logout(ctx context.Context, session *domain.Session) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, session)
	}
	return nil
}

// MockCatalogService implements domain.CatalogService interface for testing
type MockCatalogService struct {
	SearchProductsFunc func(ctx context.Context, rawQuery string, role string) (*domain.ProductSearchResult, error)
	GetProductFunc     func(ctx context.Context, id string) (*domain.ProductView, error)
	CategoriesFunc     func(ctx context.Context) ([]domain.Category, error)
	BrandsFunc         func(ctx context.Context) ([]domain.Brand, error)
	BannersFunc        func(ctx context.Context) ([]domain.Banner, error)
}

func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

func (m *MockCatalogService) SearchProducts(ctx context.Context, rawQuery string, role string) (*domain.ProductSearchResult, error) {
	if m.SearchProductsFunc != nil {
		return m.SearchProductsFunc(ctx, rawQuery, role)
	}
	return &domain.ProductSearchResult{Data: []domain.ProductView{}, Page: 1}, nil
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id string) (*domain.ProductView, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return &domain.ProductView{Product: domain.Product{ID: id}}, nil
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return []domain.Category{}, nil
}

func (m *MockCatalogService) Brands(ctx context.Context) ([]domain.Brand, error) {
	if m.BrandsFunc != nil {
		return m.BrandsFunc(ctx)
	}
	return []domain.Brand{}, nil
}

func (m *MockCatalogService) Banners(ctx context.Context) ([]domain.Banner, error) {
	if m.BannersFunc != nil {
		return m.BannersFunc(ctx)
	}
	return []domain.Banner{}, nil
}

// MockCartService implements domain.CartService interface for testing
type MockCartService struct {
	ViewFunc   func(ctx context.Context, session *domain.Session) (*domain.CartView, error)
	AddFunc    func(ctx context.Context, session *domain.Session, productID, variantID string, quantity int) (*domain.CartView, error)
	UpdateFunc func(ctx context.Context, session *domain.Session, itemID string, quantity int) (*domain.CartView, error)
	RemoveFunc func(ctx context.Context, session *domain.Session, itemID string) (*domain.CartView, error)
}

func NewMockCartService() *MockCartService {
	return &MockCartService{}
}

func (m *MockCartService) View(ctx context.Context, session *domain.Session) (*domain.CartView, error) {
	if m.ViewFunc != nil {
		return m.ViewFunc(ctx, session)
	}
	return &domain.CartView{Items: []domain.CartLine{}}, nil
}

func (m *MockCartService) Add(ctx context.Context, session *domain.Session, productID, variantID string, quantity int) (*domain.CartView, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, session, productID, variantID, quantity)
	}
	return &domain.CartView{Items: []domain.CartLine{}}, nil
}

func (m *MockCartService) Update(ctx context.Context, session *domain.Session, itemID string, quantity int) (*domain.CartView, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, session, itemID, quantity)
	}
	return &domain.CartView{Items: []domain.CartLine{}}, nil
}

func (m *MockCartService) Remove(ctx context.Context, session *domain.Session, itemID string) (*domain.CartView, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, session, itemID)
	}
	return &domain.CartView{Items: []domain.CartLine{}}, nil
}

// MockCheckoutService implements domain.CheckoutService interface for testing
type MockCheckoutService struct {
	CheckoutFunc func(ctx context.Context, session *domain.Session, input domain.CreateOrderInput) (*domain.CheckoutResult, error)
}

func NewMockCheckoutService() *MockCheckoutService {
	return &MockCheckoutService{}
}

func (m *MockCheckoutService) Checkout(ctx context.Context, session *domain.Session, input domain.CreateOrderInput) (*domain.CheckoutResult, error) {
	if m.CheckoutFunc != nil {
		return m.CheckoutFunc(ctx, session, input)
	}
	return &domain.CheckoutResult{
		Order:   &domain.Order{ID: "order_1", Status: "pending"},
		Payment: &domain.Payment{ID: "payment_1", OrderID: "order_1", RedirectURL: "https://gateway.test/pay"},
	}, nil
}

// MockOrderService implements domain.OrderService interface for testing
type MockOrderService struct {
	HistoryFunc func(ctx context.Context, session *domain.Session, page, limit int) (*domain.Page[domain.Order], error)
	GetFunc     func(ctx context.Context, session *domain.Session, id string) (*domain.Order, error)
	ExportFunc  func(ctx context.Context, session *domain.Session) ([]byte, error)
}

func NewMockOrderService() *MockOrderService {
	return &MockOrderService{}
}

func (m *MockOrderService) History(ctx context.Context, session *domain.Session, page, limit int) (*domain.Page[domain.Order], error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, session, page, limit)
	}
	return &domain.Page[domain.Order]{Data: []domain.Order{}}, nil
}

func (m *MockOrderService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, session, id)
	}
	return &domain.Order{ID: id}, nil
}

func (m *MockOrderService) Export(ctx context.Context, session *domain.Session) ([]byte, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, session)
	}
	return []byte("xlsx"), nil
}

// MockAddressService implements domain.AddressService interface for testing
type MockAddressService struct {
	ListFunc   func(ctx context.Context, session *domain.Session) ([]domain.Address, error)
	CreateFunc func(ctx context.Context, session *domain.Session, address domain.Address) (*domain.Address, error)
	DeleteFunc func(ctx context.Context, session *domain.Session, id string) error
}

func NewMockAddressService() *MockAddressService {
	return &MockAddressService{}
}

func (m *MockAddressService) List(ctx context.Context, session *domain.Session) ([]domain.Address, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, session)
	}
	return []domain.Address{}, nil
}

func (m *MockAddressService) Create(ctx context.Context, session *domain.Session, address domain.Address) (*domain.Address, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session, address)
	}
	address.ID = "address_1"
	return &address, nil
}

func (m *MockAddressService) Delete(ctx context.Context, session *domain.Session, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, session, id)
	}
	return nil
}

// MockWholesaleService implements domain.WholesaleService interface for testing
type MockWholesaleService struct {
	ApplyFunc  func(ctx context.Context, session *domain.Session, app domain.WholesaleApplication) (*domain.WholesaleApplication, error)
	StatusFunc func(ctx context.Context, session *domain.Session) (*domain.WholesaleApplication, error)
}

func NewMockWholesaleService() *MockWholesaleService {
	return &MockWholesaleService{}
}

func (m *MockWholesaleService) Apply(ctx context.Context, session *domain.Session, app domain.WholesaleApplication) (*domain.WholesaleApplication, error) {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, session, app)
	}
	app.ID = "application_1"
	app.Status = "pending"
	return &app, nil
}

func (m *MockWholesaleService) Status(ctx context.Context, session *domain.Session) (*domain.WholesaleApplication, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, session)
	}
	return &domain.WholesaleApplication{ID: "application_1", Status: "pending"}, nil
}

// Compile-time interface compliance verification
var (
	_ domain.AuthFlowService  = (*MockAuthFlowService)(nil)
	_ domain.CatalogService   = (*MockCatalogService)(nil)
	_ domain.CartService      = (*MockCartService)(nil)
	_ domain.CheckoutService  = (*MockCheckoutService)(nil)
	_ domain.OrderService     = (*MockOrderService)(nil)
	_ domain.AddressService   = (*MockAddressService)(nil)
	_ domain.WholesaleService = (*MockWholesaleService)(nil)
)
