package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CommerceHandlers covers the cart, checkout and order history
type CommerceHandlers struct {
	cart     domain.CartService
	checkout domain.CheckoutService
	orders   domain.OrderService
}

func NewCommerceHandlers(cart domain.CartService, checkout domain.CheckoutService, orders domain.OrderService) *CommerceHandlers {
	return &CommerceHandlers{cart: cart, checkout: checkout, orders: orders}
}

// AddItemRequest represents a cart addition
type AddItemRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest represents a quantity change
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// requireSession answers 401 when the request carries no session
func requireSession(c *gin.Context) (*domain.Session, bool) {
	sess := session.FromContext(c.Request.Context())
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "ابتدا وارد حساب کاربری شوید"})
		return nil, false
	}
	return sess, true
}

func (h *CommerceHandlers) Cart(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	view, err := h.cart.View(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (h *CommerceHandlers) AddItem(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	view, err := h.cart.Add(c.Request.Context(), sess, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		respondError(c, err, msgCartFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (h *CommerceHandlers) UpdateItem(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	view, err := h.cart.Update(c.Request.Context(), sess, c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err, msgCartFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (h *CommerceHandlers) RemoveItem(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	view, err := h.cart.Remove(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err, msgCartFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

// Checkout places the order and returns the payment redirect
func (h *CommerceHandlers) Checkout(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req domain.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, msgOrderFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// Orders lists the order history; page and limit default when absent or invalid
func (h *CommerceHandlers) Orders(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	orders, err := h.orders.History(c.Request.Context(), sess, page, limit)
	if err != nil {
		respondError(c, err, msgOrdersFailed)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *CommerceHandlers) Order(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, err, msgOrdersFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

// ExportOrders downloads the order history as a spreadsheet
func (h *CommerceHandlers) ExportOrders(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	data, err := h.orders.Export(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, msgExportFailed)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
