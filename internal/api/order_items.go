package api

import (
	"net/http"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listOrderItems(c *gin.Context) {
	items, err := h.catalog.ListOrderItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.catalog.GetOrderItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) createOrderItem(c *gin.Context) {
	var req models.OrderItemCreate
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.catalog.CreateOrderItem(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) patchOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.OrderItemPatch
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.catalog.PatchOrderItem(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteOrderItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteOrderItem(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
