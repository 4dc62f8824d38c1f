package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
)

// AccountHandlers covers saved addresses and the wholesale application
type AccountHandlers struct {
	addresses domain.AddressService
	wholesale domain.WholesaleService
}

func NewAccountHandlers(addresses domain.AddressService, wholesale domain.WholesaleService) *AccountHandlers {
	return &AccountHandlers{addresses: addresses, wholesale: wholesale}
}

func (h *AccountHandlers) Addresses(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	list, err := h.addresses.List(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *AccountHandlers) CreateAddress(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req domain.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	created, err := h.addresses.Create(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, msgAddressFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *AccountHandlers) DeleteAddress(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if err := h.addresses.Delete(c.Request.Context(), sess, c.Param("id")); err != nil {
		respondError(c, err, msgAddressFailed)
		return
	}
	c.Status(http.StatusNoContent)
}

// ApplyWholesale submits the wholesale-seller application form
func (h *AccountHandlers) ApplyWholesale(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req domain.WholesaleApplication
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	app, err := h.wholesale.Apply(c.Request.Context(), sess, req)
	if err != nil {
		respondError(c, err, msgWholesaleFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": app})
}

func (h *AccountHandlers) WholesaleStatus(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	app, err := h.wholesale.Status(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": app})
}
