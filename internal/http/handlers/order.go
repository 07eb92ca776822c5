package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/http/response"
	"github.com/yungbote/marketplace-backend/internal/services"
)

const headerIdempotencyKey = "Idempotency-Key"

type OrderHandler struct {
	orders services.OrderService
}

func NewOrderHandler(orders services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// POST /api/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req struct {
		ShippingAddress string  `json:"shipping_address" binding:"required"`
		PhoneNumber     string  `json:"phone_number" binding:"required"`
		Notes           *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.orders.Checkout(c.Request.Context(), services.CheckoutRequest{
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Notes:           req.Notes,
		IdempotencyKey:  c.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		// a stock conflict can still have committed other stores' orders
		if domainagg.IsCode(err, domainagg.CodeStockConflict) && len(out.Orders) > 0 {
			status, body := response.ErrorBody(err)
			c.JSON(status, gin.H{
				"error":         body,
				"orders":        out.Orders,
				"failed_stores": out.FailedStores,
			})
			return
		}
		response.RespondDomainError(c, err)
		return
	}
	status := http.StatusCreated
	if out.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"orders": out.Orders, "replayed": out.Replayed})
}

// GET /api/orders?status=
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	limit, offset, ok := page(c)
	if !ok {
		return
	}
	orders, err := h.orders.ListOrdersByBuyer(c.Request.Context(), repos.OrderListOptions{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"orders": orders})
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_order_id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": order})
}

// PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_order_id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"order": order})
}
