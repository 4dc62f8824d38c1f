package domain

import "time"

// Role values carried by a session
const (
	RoleGuest     = "guest"
	RoleCustomer  = "customer"
	RoleWholesale = "wholesale"
)

// Session is the server-held credential pair of a logged-in customer.
// AccessToken is the long-lived backend bearer credential; it never leaves the server.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthResult is returned once the OTP flow completes
type AuthResult struct {
	SessionToken string
	SessionID    string
	Role         string
	ExpiresIn    int64
	RedirectTo   string
}

// OTPVerification is the backend answer to a code verification
type OTPVerification struct {
	IsLoggedIn           bool   `json:"isLoggedIn"`
	ShortTermAccessToken string `json:"shortTermAccessToken"`
}

// Profile is the customer record exposed by GET /users/me
type Profile struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Product is the display projection of a backend product
type Product struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	BasePrice      float64   `json:"basePrice"`
	BaseDiscount   float64   `json:"baseDiscount"`
	ThumbnailImage string    `json:"thumbnailImage"`
	Category       *Category `json:"category,omitempty"`
	Brand          *Brand    `json:"brand,omitempty"`
	StockQuantity  int       `json:"stockQuantity"`
	HasVariants    bool      `json:"hasVariants"`
	Images         []string  `json:"images,omitempty"`
	Description    string    `json:"description,omitempty"`
}

// ProductView adds the derived display fields to a product
type ProductView struct {
	Product
	FinalPrice    float64 `json:"finalPrice"`
	HasDiscount   bool    `json:"hasDiscount"`
	InStock       bool    `json:"inStock"`
	CurrencyLabel string  `json:"currencyLabel"`
}

type Category struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

type Brand struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Logo  string `json:"logo,omitempty"`
}

// Banner is one slide of the hero carousel
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Link     string `json:"link,omitempty"`
	Position int    `json:"position"`
}

// Page is the {data, count} envelope returned by backend list endpoints
type Page[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// CartView is a cart with projected prices and totals
type CartView struct {
	Items         []CartLine `json:"items"`
	ItemCount     int        `json:"itemCount"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	CurrencyLabel string     `json:"currencyLabel"`
}

type CartLine struct {
	CartItem
	UnitPrice  float64 `json:"unitPrice"`
	FinalPrice float64 `json:"finalPrice"`
	LineTotal  float64 `json:"lineTotal"`
}

type Address struct {
	ID           string `json:"id,omitempty"`
	ReceiverName string `json:"receiverName"`
	Phone        string `json:"phone"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Address      string `json:"address"`
	PostalCode   string `json:"postalCode"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId,omitempty"`
	Title     string  `json:"title,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
}

type Order struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	TotalPrice float64     `json:"totalPrice"`
	Address    *Address    `json:"address,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// CreateOrderInput is the body of POST /orders
type CreateOrderInput struct {
	AddressID string   `json:"addressId,omitempty"`
	Address   *Address `json:"address,omitempty"`
	Note      string   `json:"note,omitempty"`
}

type Payment struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	RedirectURL string `json:"redirectUrl"`
}

// CheckoutResult is what the customer needs to continue to the payment gateway
type CheckoutResult struct {
	Order   *Order   `json:"order"`
	Payment *Payment `json:"payment"`
}

// WholesaleApplication is a request for the wholesale-seller role
type WholesaleApplication struct {
	ID            string    `json:"id,omitempty"`
	NationalCode  string    `json:"nationalCode"`
	BusinessName  string    `json:"businessName"`
	LicenseNumber string    `json:"licenseNumber"`
	Province      string    `json:"province"`
	City          string    `json:"city"`
	Address       string    `json:"address"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// CheckoutAttempt records an order whose payment could not be created
type CheckoutAttempt struct {
	ID        uint
	SessionID string
	Phone     string
	OrderID   string
	Status    string
	Reason    string
	CreatedAt time.Time
}
