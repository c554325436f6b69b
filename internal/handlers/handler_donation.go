package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	portssvc "github.com/Ryan-Musomba/givehub/internal/core/ports/services"
	"github.com/Ryan-Musomba/givehub/internal/core/services"
	"github.com/Ryan-Musomba/givehub/internal/dto"
	"github.com/Ryan-Musomba/givehub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// DonationHandler holds dependencies for donation related handlers.
type DonationHandler struct {
	donationService portssvc.DonationSvcFacade
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(ds portssvc.DonationSvcFacade) *DonationHandler {
	return &DonationHandler{donationService: ds}
}

// registerDonationRoutes sets up the authenticated donation routes.
// Donation creation is rate limited per client IP.
func registerDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	h := NewDonationHandler(donationService)

	rate, _ := limiter.NewRateFromFormatted("30-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	rg.POST("/campaigns/:campaignID/donations", limitMiddleware, h.CreateDonation)
	rg.GET("/campaigns/:campaignID/donors", h.ListCampaignDonors)
	rg.GET("/donations", h.ListMyDonations)
}

// respondDonationError maps service errors onto HTTP statuses.
func respondDonationError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Campaign not found"})
	case errors.Is(err, services.ErrSelfDonation),
		errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Campaign total changed while recording the donation, please retry"})
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrCampaignNotApproved),
		errors.Is(err, services.ErrCampaignExpired),
		errors.Is(err, services.ErrExceedsRemainingGoal),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Donation operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// CreateDonation godoc
// @Summary Donate to a campaign
// @Description Records a donation against an approved campaign and advances its raised amount atomically.
// @Tags donations
// @Accept json
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param donation body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} dto.DonationResponse
// @Failure 400 {object} ErrorResponse "Invalid amount, payment method, expired campaign or amount exceeding the remaining goal"
// @Failure 403 {object} ErrorResponse "Donating to your own campaign"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent donation conflict"
// @Security BearerAuth
// @Router /campaigns/{campaignID}/donations [post]
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}
	campaignID := c.Param("campaignID")

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), campaignID, req, userID)
	if err != nil {
		respondDonationError(c, err, "record donation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDonationResponse(donation))
}

// ListCampaignDonors godoc
// @Summary List a campaign's donors
// @Description Retrieves the donor list for a campaign in donation order. Only the campaign creator may see it; anonymous donors appear as "Anonymous".
// @Tags donations
// @Produce json
// @Param campaignID path string true "Campaign ID"
// @Param pageSize query int false "Donors per page (default 10)"
// @Param page query int false "Page number starting at 1"
// @Success 200 {array} dto.CampaignDonorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /campaigns/{campaignID}/donors [get]
func (h *DonationHandler) ListCampaignDonors(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}
	campaignID := c.Param("campaignID")

	var params dto.ListDonorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	donors, err := h.donationService.ListCampaignDonors(c.Request.Context(), campaignID, userID, params)
	if err != nil {
		respondDonationError(c, err, "list campaign donors")
		return
	}
	c.JSON(http.StatusOK, donors)
}

// ListMyDonations godoc
// @Summary List my donations
// @Description Retrieves the requesting user's own donation history, newest first.
// @Tags donations
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Cursor token from the previous page"
// @Success 200 {object} dto.ListDonationsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /donations [get]
func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID missing"})
		return
	}

	var params dto.ListDonationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	donations, err := h.donationService.ListDonationsByDonor(c.Request.Context(), userID, params)
	if err != nil {
		respondDonationError(c, err, "list donations")
		return
	}
	c.JSON(http.StatusOK, donations)
}
