package handlers

import (
	"fmt"
	"net/http"

	"github.com/YannisFouzi/blind-test-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListUniverses godoc
// @Summary      List universes
// @Description  All universes available for game configuration
// @Tags         catalog
// @Produce      json
// @Success      200 {array} Universe
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/universes [get]
func (h *CatalogHandler) ListUniverses(c *gin.Context) {
	universes, err := h.catalogService.ListUniverses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, universes)
}

// ListWorks godoc
// @Summary      List works of a universe
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Universe ID"
// @Success      200 {array} Work
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/universes/{id}/works [get]
func (h *CatalogHandler) ListWorks(c *gin.Context) {
	works, err := h.catalogService.ListWorks(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, works)
}

// ListSongs godoc
// @Summary      List songs of a universe
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Universe ID"
// @Success      200 {array} Song
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/universes/{id}/songs [get]
func (h *CatalogHandler) ListSongs(c *gin.Context) {
	songs, err := h.catalogService.ListSongs(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, songs)
}

// Export godoc
// @Summary      Export the whole catalog as JSON
// @Tags         catalog
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} services.CatalogExport
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/catalog/export [get]
func (h *CatalogHandler) Export(c *gin.Context) {
	data, err := h.catalogService.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="catalog.json"`)
	c.JSON(http.StatusOK, data)
}

// Import godoc
// @Summary      Import a catalog dump
// @Description  Upsert universes, works and songs from a JSON dump
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body services.CatalogExport true "Catalog dump"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/catalog/import [post]
func (h *CatalogHandler) Import(c *gin.Context) {
	var data services.CatalogExport
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.catalogService.Import(&data)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("imported %d songs", imported)})
}
