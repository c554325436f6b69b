package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	portssvc "github.com/Ryan-Musomba/givehub/internal/core/ports/services"
	"github.com/Ryan-Musomba/givehub/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ReportingHandler holds dependencies for reporting related handlers.
type ReportingHandler struct {
	reportingService portssvc.ReportingService
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(rs portssvc.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingService: rs}
}

// registerReportingRoutes sets up the authenticated reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := NewReportingHandler(reportingService)
	rg.GET("/organizations/:userID/summary", h.GetOrganizationSummary)
	rg.POST("/campaigns/:campaignID/reconcile", h.ReconcileCampaign)
}

// respondReportingError maps service errors onto HTTP statuses.
func respondReportingError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Reporting operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// GetOrganizationSummary godoc
// @Summary Organization fundraising summary
// @Description Aggregates campaign and donation figures across an organization's campaigns. Only the organization itself or an admin may ask.
// @Tags reporting
// @Produce json
// @Param userID path string true "Organization user ID"
// @Success 200 {object} dto.OrganizationSummaryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{userID}/summary [get]
func (h *ReportingHandler) GetOrganizationSummary(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}

	summary, err := h.reportingService.GetOrganizationSummary(c.Request.Context(), c.Param("userID"), requestingUserID)
	if err != nil {
		respondReportingError(c, err, "get organization summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ReconcileCampaign godoc
// @Summary Reconcile a campaign's raised amount
// @Description Recomputes the raised amount from donation rows and repairs the cached figure if it drifted. Admin only.
// @Tags reporting
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Success 200 {object} dto.ReconcileCampaignResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID}/reconcile [post]
func (h *ReportingHandler) ReconcileCampaign(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}

	report, err := h.reportingService.ReconcileCampaign(c.Request.Context(), c.Param("campaignID"), requestingUserID)
	if err != nil {
		respondReportingError(c, err, "reconcile campaign")
		return
	}
	c.JSON(http.StatusOK, report)
}
