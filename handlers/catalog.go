package handlers

import (
	"net/http"

	"salonflow/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the tenant's service catalog.
type CatalogHandler struct {
	Catalog catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

// ListServices returns every bookable service for the tenant.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
