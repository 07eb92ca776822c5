package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/http/response"
	"github.com/yungbote/marketplace-backend/internal/services"
)

type ReportHandler struct {
	reports services.ReportService
}

func NewReportHandler(reports services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// POST /api/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req struct {
		ReportedUserID    *uuid.UUID `json:"reported_user_id"`
		ReportedProductID *uuid.UUID `json:"reported_product_id"`
		ReportedStoreID   *uuid.UUID `json:"reported_store_id"`
		Reason            string     `json:"reason" binding:"required"`
		Description       string     `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rep, err := h.reports.CreateReport(c.Request.Context(), services.CreateReportInput{
		ReportedUserID:    req.ReportedUserID,
		ReportedProductID: req.ReportedProductID,
		ReportedStoreID:   req.ReportedStoreID,
		Reason:            req.Reason,
		Description:       req.Description,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"report": rep})
}

// GET /api/reports?status=
func (h *ReportHandler) ListReports(c *gin.Context) {
	limit, offset, ok := page(c)
	if !ok {
		return
	}
	out, err := h.reports.ListReports(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reports": out})
}

// PATCH /api/reports/:id/status
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_report_id")
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
	rep, err := h.reports.UpdateReportStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": rep})
}
