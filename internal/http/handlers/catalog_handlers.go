package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/session"
)

// CatalogHandlers serves product browsing to guests and customers alike
type CatalogHandlers struct {
	catalog domain.CatalogService
}

func NewCatalogHandlers(catalog domain.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// Search lists products for the filter in the query string. The response
// carries the canonical query so clients can mirror it into their URL.
func (h *CatalogHandlers) Search(c *gin.Context) {
	role := session.Role(c.Request.Context())
	result, err := h.catalog.SearchProducts(c.Request.Context(), c.Request.URL.RawQuery, role)
	if err != nil {
		respondError(c, err, msgProductsFailed)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandlers) Product(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, msgProductFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *CatalogHandlers) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *CatalogHandlers) Brands(c *gin.Context) {
	brands, err := h.catalog.Brands(c.Request.Context())
	if err != nil {
		respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": brands})
}

// Banners feeds the hero carousel
func (h *CatalogHandlers) Banners(c *gin.Context) {
	banners, err := h.catalog.Banners(c.Request.Context())
	if err != nil {
		respondError(c, err, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners})
}
