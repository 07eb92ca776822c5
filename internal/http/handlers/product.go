package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/marketplace-backend/internal/http/response"
	"github.com/yungbote/marketplace-backend/internal/services"
)

type ProductHandler struct {
	products services.ProductService
}

func NewProductHandler(products services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		StoreID       uuid.UUID       `json:"store_id" binding:"required"`
		CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
		Name          string          `json:"name" binding:"required"`
		Description   string          `json:"description"`
		Price         decimal.Decimal `json:"price"`
		StockQuantity int             `json:"stock_quantity"`
		ImageURLs     []string        `json:"image_urls" binding:"omitempty,dive,http_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	p, err := h.products.CreateProduct(c.Request.Context(), services.CreateProductInput{
		StoreID:       req.StoreID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURLs:     req.ImageURLs,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"product": p})
}

// PATCH /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_product_id")
	if !ok {
		return
	}
	var req struct {
		CategoryID    *uuid.UUID       `json:"category_id"`
		Name          *string          `json:"name"`
		Description   *string          `json:"description"`
		Price         *decimal.Decimal `json:"price"`
		StockQuantity *int             `json:"stock_quantity"`
		ImageURLs     *[]string        `json:"image_urls" binding:"omitempty,dive,http_url"`
		IsActive      *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	p, err := h.products.UpdateProduct(c.Request.Context(), id, services.UpdateProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURLs:     req.ImageURLs,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": p})
}

// POST /api/products/:id/deactivate
func (h *ProductHandler) DeactivateProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_product_id")
	if !ok {
		return
	}
	p, err := h.products.DeactivateProduct(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": p})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_product_id")
	if !ok {
		return
	}
	p, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": p})
}

// GET /api/products?q=&category_id=&city=&regency=&min_price=&max_price=&limit=&offset=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	limit, offset, ok := page(c)
	if !ok {
		return
	}
	categoryID, err := queryUUID(c, "category_id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	minPrice, err := queryDecimal(c, "min_price")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	maxPrice, err := queryDecimal(c, "max_price")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	products, err := h.products.SearchProducts(c.Request.Context(), services.SearchProductsInput{
		Query:      c.Query("q"),
		CategoryID: categoryID,
		City:       c.Query("city"),
		Regency:    c.Query("regency"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}
