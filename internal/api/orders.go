package api

import (
	"net/http"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.catalog.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.catalog.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) createOrder(c *gin.Context) {
	var req models.OrderCreate
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.catalog.CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) patchOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.OrderPatch
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.catalog.PatchOrder(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
