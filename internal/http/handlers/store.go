package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	"github.com/yungbote/marketplace-backend/internal/http/response"
	"github.com/yungbote/marketplace-backend/internal/services"
)

type StoreHandler struct {
	stores   services.StoreService
	products services.ProductService
	orders   services.OrderService
}

func NewStoreHandler(stores services.StoreService, products services.ProductService, orders services.OrderService) *StoreHandler {
	return &StoreHandler{stores: stores, products: products, orders: orders}
}

// POST /api/stores
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		City        string  `json:"city" binding:"required"`
		Regency     string  `json:"regency" binding:"required"`
		FullAddress string  `json:"full_address" binding:"required"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	store, err := h.stores.CreateStore(c.Request.Context(), services.CreateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Regency:     req.Regency,
		FullAddress: req.FullAddress,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"store": store})
}

// GET /api/stores?city=&regency=
func (h *StoreHandler) ListStores(c *gin.Context) {
	limit, offset, ok := page(c)
	if !ok {
		return
	}
	stores, err := h.stores.ListStores(c.Request.Context(), repos.StoreFilter{
		City:    c.Query("city"),
		Regency: c.Query("regency"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stores": stores})
}

// GET /api/stores/:id
func (h *StoreHandler) GetStore(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_store_id")
	if !ok {
		return
	}
	store, err := h.stores.GetStore(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"store": store})
}

// POST /api/stores/:id/deactivate
func (h *StoreHandler) DeactivateStore(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_store_id")
	if !ok {
		return
	}
	store, err := h.stores.DeactivateStore(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"store": store})
}

// GET /api/sellers/:id/stores
func (h *StoreHandler) ListStoresBySeller(c *gin.Context) {
	sellerID, ok := pathUUID(c, "id", "invalid_seller_id")
	if !ok {
		return
	}
	stores, err := h.stores.ListStoresBySeller(c.Request.Context(), sellerID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stores": stores})
}

// GET /api/stores/:id/products
func (h *StoreHandler) ListProducts(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_store_id")
	if !ok {
		return
	}
	products, err := h.products.ListProductsByStore(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}

// GET /api/stores/:id/orders?status=
func (h *StoreHandler) ListOrders(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_store_id")
	if !ok {
		return
	}
	limit, offset, ok := page(c)
	if !ok {
		return
	}
	orders, err := h.orders.ListOrdersByStore(c.Request.Context(), id, repos.OrderListOptions{
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
