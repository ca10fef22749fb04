package api

import (
	"net/http"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listBrands(c *gin.Context) {
	brands, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *Handler) getBrand(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	brand, err := h.catalog.GetBrand(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *Handler) createBrand(c *gin.Context) {
	var req models.BrandCreate
	if !bindJSON(c, &req) {
		return
	}
	brand, err := h.catalog.CreateBrand(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func (h *Handler) patchBrand(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.BrandPatch
	if !bindJSON(c, &req) {
		return
	}
	brand, err := h.catalog.PatchBrand(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *Handler) deleteBrand(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteBrand(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
