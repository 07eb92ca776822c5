package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/http/response"
	"github.com/yungbote/marketplace-backend/internal/services"
)

type CartHandler struct {
	cart services.CartService
}

func NewCartHandler(cart services.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// GET /api/cart
func (h *CartHandler) ListItems(c *gin.Context) {
	view, err := h.cart.ListItems(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"cart": view})
}

// POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID uuid.UUID `json:"product_id" binding:"required"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.cart.AddToCart(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// PATCH /api/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_cart_item_id")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := h.cart.UpdateCartItem(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_cart_item_id")
	if !ok {
		return
	}
	if err := h.cart.RemoveCartItem(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
