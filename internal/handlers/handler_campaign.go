package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	portssvc "github.com/Ryan-Musomba/givehub/internal/core/ports/services"
	"github.com/Ryan-Musomba/givehub/internal/core/services"
	"github.com/Ryan-Musomba/givehub/internal/dto"
	"github.com/Ryan-Musomba/givehub/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CampaignHandler holds dependencies for campaign related handlers.
type CampaignHandler struct {
	campaignService portssvc.CampaignSvcFacade
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(cs portssvc.CampaignSvcFacade) *CampaignHandler {
	return &CampaignHandler{campaignService: cs}
}

// registerPublicCampaignRoutes sets up the unauthenticated browsing routes.
func registerPublicCampaignRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade) {
	h := NewCampaignHandler(campaignService)
	campaigns := rg.Group("/campaigns")
	{
		campaigns.GET("", h.ListCampaigns)
		campaigns.GET("/watch", h.WatchCampaigns)
		campaigns.GET("/:campaignID", h.GetCampaignByID)
	}
}

// registerCampaignRoutes sets up the authenticated campaign routes.
func registerCampaignRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade) {
	h := NewCampaignHandler(campaignService)
	campaigns := rg.Group("/campaigns")
	{
		campaigns.POST("", h.CreateCampaign)
		campaigns.PUT("/:campaignID", h.UpdateCampaign)
		campaigns.DELETE("/:campaignID", h.DeleteCampaign)
		campaigns.POST("/:campaignID/approve", h.ApproveCampaign)
		campaigns.POST("/:campaignID/reject", h.RejectCampaign)
	}
}

// respondCampaignError maps service errors onto HTTP statuses.
func respondCampaignError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Campaign not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNotPending):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrInvalidFundingGoal),
		errors.Is(err, services.ErrDeadlinePast),
		errors.Is(err, services.ErrRejectionReasonMissing):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Campaign operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Creates a fundraising campaign in pending status. Requires an organization account.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaign body dto.CreateCampaignRequest true "Campaign details"
// @Success 201 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), req, userID)
	if err != nil {
		respondCampaignError(c, err, "create campaign")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCampaignResponse(campaign))
}

// GetCampaignByID godoc
// @Summary Get a campaign
// @Description Retrieves a single campaign by ID.
// @Tags campaigns
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Success 200 {object} dto.CampaignResponse
// @Failure 404 {object} ErrorResponse
// @Router /campaigns/{campaignID} [get]
func (h *CampaignHandler) GetCampaignByID(c *gin.Context) {
	campaignID := c.Param("campaignID")
	campaign, err := h.campaignService.GetCampaignByID(c.Request.Context(), campaignID)
	if err != nil {
		respondCampaignError(c, err, "get campaign")
		return
	}
	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// ListCampaigns godoc
// @Summary List campaigns
// @Description Retrieves a filtered, cursor-paginated list of campaigns.
// @Tags campaigns
// @Produce json
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param creatorID query string false "Filter by creator user ID"
// @Param name query string false "Case-insensitive name substring"
// @Param category query string false "Filter by category"
// @Param urgency query string false "Filter by urgency"
// @Param goalBucket query string false "Funding goal bucket (low, medium, high)"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Cursor token from the previous page"
// @Success 200 {object} dto.ListCampaignsResponse
// @Failure 400 {object} ErrorResponse
// @Router /campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	var params dto.ListCampaignsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	campaigns, nextToken, err := h.campaignService.ListCampaigns(c.Request.Context(), params)
	if err != nil {
		respondCampaignError(c, err, "list campaigns")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCampaignsResponse(campaigns, nextToken))
}

// WatchCampaigns godoc
// @Summary Watch campaigns
// @Description Streams the filtered campaign list as server-sent events. The current snapshot is sent immediately, then a fresh one after every matching change.
// @Tags campaigns
// @Produce text/event-stream
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param creatorID query string false "Filter by creator user ID"
// @Param goalBucket query string false "Funding goal bucket (low, medium, high)"
// @Success 200 {string} string "stream of campaign list snapshots"
// @Failure 400 {object} ErrorResponse
// @Router /campaigns/watch [get]
func (h *CampaignHandler) WatchCampaigns(c *gin.Context) {
	var params dto.ListCampaignsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	snapshots, cancel, err := h.campaignService.WatchCampaigns(c.Request.Context(), params)
	if err != nil {
		respondCampaignError(c, err, "watch campaigns")
		return
	}
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, open := <-snapshots:
			if !open {
				return false
			}
			c.SSEvent("campaigns", dto.ToListCampaignsResponse(snapshot, nil))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Description Updates campaign details. Only the creator may edit; the review status is never changed by an edit.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param campaign body dto.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}
	campaignID := c.Param("campaignID")

	var req dto.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Request.Context(), campaignID, req, userID)
	if err != nil {
		respondCampaignError(c, err, "update campaign")
		return
	}
	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// DeleteCampaign godoc
// @Summary Delete a campaign
// @Description Deletes a campaign. Only the creator or an admin may delete. Recorded donations are kept.
// @Tags campaigns
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}
	campaignID := c.Param("campaignID")

	if err := h.campaignService.DeleteCampaign(c.Request.Context(), campaignID, userID); err != nil {
		respondCampaignError(c, err, "delete campaign")
		return
	}
	c.Status(http.StatusNoContent)
}

// ApproveCampaign godoc
// @Summary Approve a campaign
// @Description Moves a pending campaign to approved. Admin only.
// @Tags campaigns
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Success 200 {object} dto.CampaignResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Campaign is not pending"
// @Security BearerAuth
// @Router /campaigns/{campaignID}/approve [post]
func (h *CampaignHandler) ApproveCampaign(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}
	campaignID := c.Param("campaignID")

	campaign, err := h.campaignService.ApproveCampaign(c.Request.Context(), campaignID, userID)
	if err != nil {
		respondCampaignError(c, err, "approve campaign")
		return
	}
	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// RejectCampaign godoc
// @Summary Reject a campaign
// @Description Moves a pending campaign to rejected with a mandatory reason. Admin only.
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param rejection body dto.RejectCampaignRequest true "Rejection reason"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Campaign is not pending"
// @Security BearerAuth
// @Router /campaigns/{campaignID}/reject [post]
func (h *CampaignHandler) RejectCampaign(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}
	campaignID := c.Param("campaignID")

	var req dto.RejectCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	campaign, err := h.campaignService.RejectCampaign(c.Request.Context(), campaignID, req.Reason, userID)
	if err != nil {
		respondCampaignError(c, err, "reject campaign")
		return
	}
	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}
