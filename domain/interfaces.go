package domain

import "context"

// AuthAPI is the backend's OTP authentication surface
type AuthAPI interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (*OTPVerification, error)
	Login(ctx context.Context, shortTermToken string) (string, error)
	Signup(ctx context.Context, shortTermToken, firstName, lastName string) error
	Profile(ctx context.Context, accessToken string) (*Profile, error)
}

// CatalogAPI is the backend's read-only product surface
type CatalogAPI interface {
	ListProducts(ctx context.Context, query ProductQuery) (*Page[Product], error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListBrands(ctx context.Context) ([]Brand, error)
	ListBanners(ctx context.Context) ([]Banner, error)
}

type CartAPI interface {
	GetCart(ctx context.Context, accessToken string) (*Cart, error)
	AddCartItem(ctx context.Context, accessToken, productID, variantID string, quantity int) (*Cart, error)
	UpdateCartItem(ctx context.Context, accessToken, itemID string, quantity int) (*Cart, error)
	RemoveCartItem(ctx context.Context, accessToken, itemID string) (*Cart, error)
}

type OrderAPI interface {
	ListOrders(ctx context.Context, accessToken string, skip, limit int) (*Page[Order], error)
	GetOrder(ctx context.Context, accessToken, id string) (*Order, error)
	CreateOrder(ctx context.Context, accessToken string, input CreateOrderInput) (*Order, error)
	CreatePayment(ctx context.Context, accessToken, orderID string) (*Payment, error)
}

type AddressAPI interface {
	ListAddresses(ctx context.Context, accessToken string) ([]Address, error)
	CreateAddress(ctx context.Context, accessToken string, address Address) (*Address, error)
	DeleteAddress(ctx context.Context, accessToken, id string) error
}

type WholesaleAPI interface {
	SubmitWholesaleApplication(ctx context.Context, accessToken string, app WholesaleApplication) (*WholesaleApplication, error)
	GetWholesaleApplication(ctx context.Context, accessToken string) (*WholesaleApplication, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// CheckoutLedger keeps orders whose payment step failed
type CheckoutLedger interface {
	Record(ctx context.Context, attempt *CheckoutAttempt) error
	ListByPhone(ctx context.Context, phone string) ([]CheckoutAttempt, error)
}

// TokenService defines storefront session token operations
type TokenService interface {
	GenerateSessionToken(session *Session) (string, error)
	ValidateSessionToken(token string) (*TokenClaims, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	Phone     string `json:"user_phone"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// AuthFlowService drives the phone -> otp -> signup wizard
type AuthFlowService interface {
	Start(ctx context.Context) (*FlowStatus, error)
	Status(ctx context.Context, flowID string) (*FlowStatus, error)
	SubmitPhone(ctx context.Context, flowID, phone string) (*FlowStatus, error)
	Resend(ctx context.Context, flowID string) (*FlowStatus, error)
	VerifyCode(ctx context.Context, flowID, code string) (*FlowStatus, error)
	Signup(ctx context.Context, flowID, firstName, lastName string) (*FlowStatus, error)
	Back(ctx context.Context, flowID string) (*FlowStatus, error)
	Reset(ctx context.Context, flowID string) (*FlowStatus, error)
	Logout(ctx context.Context, session *Session) error
}

// FlowStatus is the client-visible projection of an OTP flow
type FlowStatus struct {
	FlowID          string      `json:"flow_id"`
	Step            string      `json:"step"`
	Phone           string      `json:"phone,omitempty"`
	ResendIn        int         `json:"resend_in"`
	CanResend       bool        `json:"can_resend"`
	AttemptsAllowed int         `json:"attempts_allowed,omitempty"`
	Result          *AuthResult `json:"-"`
}

type CatalogService interface {
	SearchProducts(ctx context.Context, rawQuery string, role string) (*ProductSearchResult, error)
	GetProduct(ctx context.Context, id string) (*ProductView, error)
	Categories(ctx context.Context) ([]Category, error)
	Brands(ctx context.Context) ([]Brand, error)
	Banners(ctx context.Context) ([]Banner, error)
}

// ProductSearchResult is one page of search results plus the canonical query
type ProductSearchResult struct {
	Data      []ProductView `json:"data"`
	Count     int           `json:"count"`
	Page      int           `json:"page"`
	PageCount int           `json:"pageCount"`
	Query     string        `json:"query"`
	Filter    ProductFilter `json:"filter"`
}

type CartService interface {
	View(ctx context.Context, session *Session) (*CartView, error)
	Add(ctx context.Context, session *Session, productID, variantID string, quantity int) (*CartView, error)
	Update(ctx context.Context, session *Session, itemID string, quantity int) (*CartView, error)
	Remove(ctx context.Context, session *Session, itemID string) (*CartView, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, session *Session, input CreateOrderInput) (*CheckoutResult, error)
}

type OrderService interface {
	History(ctx context.Context, session *Session, page, limit int) (*Page[Order], error)
	Get(ctx context.Context, session *Session, id string) (*Order, error)
	Export(ctx context.Context, session *Session) ([]byte, error)
}

type AddressService interface {
	List(ctx context.Context, session *Session) ([]Address, error)
	Create(ctx context.Context, session *Session, address Address) (*Address, error)
	Delete(ctx context.Context, session *Session, id string) error
}

type WholesaleService interface {
	Apply(ctx context.Context, session *Session, app WholesaleApplication) (*WholesaleApplication, error)
	Status(ctx context.Context, session *Session) (*WholesaleApplication, error)
}
