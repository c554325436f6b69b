package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	portssvc "github.com/Ryan-Musomba/givehub/internal/core/ports/services"
	"github.com/Ryan-Musomba/givehub/internal/dto"
	"github.com/Ryan-Musomba/givehub/internal/middleware"
	"github.com/Ryan-Musomba/givehub/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount        = errors.New("donation amount must be a positive amount")
	ErrInvalidPaymentMethod = errors.New("payment method must be one of credit_card, paypal or bank_transfer")
	ErrCampaignNotApproved  = errors.New("campaign is not approved for donations")
	ErrCampaignExpired      = errors.New("campaign deadline has passed")
	ErrSelfDonation         = errors.New("campaign creators cannot donate to their own campaign")
	ErrExceedsRemainingGoal = errors.New("donation amount exceeds remaining goal")
)

// maxSaveAttempts bounds how often a donation commit is retried after losing
// a raised-amount race to a concurrent donation.
const maxSaveAttempts = 3

// anonymousDonorLabel replaces the donor name in creator-facing donor lists.
const anonymousDonorLabel = "Anonymous"

// donationService records donations and serves donation history views.
type donationService struct {
	donationRepo portsrepo.DonationRepositoryFacade
	campaignRepo portsrepo.CampaignReader
	userSvc      portssvc.UserReaderSvc
	notifier     Notifier
}

// NewDonationService creates a new DonationService.
func NewDonationService(donationRepo portsrepo.DonationRepositoryFacade, campaignRepo portsrepo.CampaignReader, userSvc portssvc.UserReaderSvc, notifier Notifier) portssvc.DonationSvcFacade {
	return &donationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		userSvc:      userSvc,
		notifier:     notifier,
	}
}

// Ensure donationService implements the portssvc.DonationSvcFacade interface
var _ portssvc.DonationSvcFacade = (*donationService)(nil)

// displayNameFor resolves the name recorded on a donation: the user's display
// name, or the local part of their email when no display name is set.
func displayNameFor(user *domain.User) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	if at := strings.Index(user.Email, "@"); at > 0 {
		return user.Email[:at]
	}
	return user.Email
}

// validateAgainstCampaign runs the campaign-dependent donation checks in their
// fixed order: approved status, open deadline, no self-donation, amount within
// the remaining goal.
func validateAgainstCampaign(campaign *domain.Campaign, amount decimal.Decimal, donorUserID string, now time.Time) error {
	if campaign.Status != domain.StatusApproved {
		return fmt.Errorf("%w: campaign is %s", ErrCampaignNotApproved, campaign.Status)
	}
	if campaign.IsExpired(now) {
		return ErrCampaignExpired
	}
	if campaign.CreatorID == donorUserID {
		return ErrSelfDonation
	}
	if remaining := campaign.Remaining(); amount.GreaterThan(remaining) {
		return fmt.Errorf("%w of $%s", ErrExceedsRemainingGoal, remaining.StringFixed(2))
	}
	return nil
}

// CreateDonation validates and records a donation. The insert and the
// campaign's raised-amount increment commit in one transaction; if a
// concurrent donation advanced the raised amount first, the campaign is
// re-read and the amount re-validated before retrying.
// Implements portssvc.DonationSvcFacade
func (s *donationService) CreateDonation(ctx context.Context, campaignID string, req dto.CreateDonationRequest, donorUserID string) (*domain.Donation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("campaign %s: %w", campaignID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find campaign %s: %w", campaignID, err)
	}

	donor, err := s.userSvc.GetUserByID(ctx, donorUserID)
	if err != nil {
		return nil, err
	}

	var displayName *string
	if !req.Anonymous {
		name := displayNameFor(donor)
		displayName = &name
	}

	for attempt := 1; ; attempt++ {
		now := time.Now().UTC()
		if err := validateAgainstCampaign(campaign, req.Amount, donorUserID, now); err != nil {
			return nil, err
		}

		donation := domain.Donation{
			DonationID:    uuid.NewString(),
			CampaignID:    campaign.CampaignID,
			CampaignName:  campaign.Name,
			Amount:        req.Amount,
			Timestamp:     now,
			DonorID:       donorUserID,
			DisplayName:   displayName,
			Anonymous:     req.Anonymous,
			PaymentMethod: req.PaymentMethod,
		}

		err := s.donationRepo.SaveDonation(ctx, donation, campaign.AmountRaised)
		if err == nil {
			logger.Info("Donation recorded",
				slog.String("donation_id", donation.DonationID),
				slog.String("campaign_id", campaignID),
				slog.String("amount", req.Amount.String()),
			)
			s.notifyWatchers(ctx)
			return &donation, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to save donation", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save donation: %w", err)
		}
		if attempt >= maxSaveAttempts {
			logger.Warn("Donation lost raised-amount race repeatedly, giving up",
				slog.String("campaign_id", campaignID),
				slog.Int("attempts", attempt),
			)
			return nil, fmt.Errorf("campaign %s is receiving concurrent donations, please retry: %w", campaignID, apperrors.ErrConflict)
		}

		// Lost the race: another donation advanced the raised amount. Re-read
		// and re-validate against the fresh figure.
		campaign, err = s.campaignRepo.FindCampaignByID(ctx, campaignID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("campaign %s: %w", campaignID, apperrors.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to re-read campaign %s: %w", campaignID, err)
		}
	}
}

// notifyWatchers pushes a fresh snapshot to campaign watchers, if wired.
func (s *donationService) notifyWatchers(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.Notify(ctx)
	}
}

// ListCampaignDonors retrieves one page of the donor list for a campaign.
// Only the campaign creator may see it. Anonymous donors appear under a fixed
// label and never expose their identity.
// Implements portssvc.DonationSvcFacade
func (s *donationService) ListCampaignDonors(ctx context.Context, campaignID string, requestingUserID string, params dto.ListDonorsParams) ([]dto.CampaignDonorResponse, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("campaign %s: %w", campaignID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find campaign %s: %w", campaignID, err)
	}
	if campaign.CreatorID != requestingUserID {
		return nil, fmt.Errorf("%w: only the campaign creator can view the donor list", apperrors.ErrForbidden)
	}

	donations, err := s.donationRepo.FindDonationsByCampaignID(ctx, campaignID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list campaign donations", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	donors := make([]dto.CampaignDonorResponse, len(donations))
	for i, d := range donations {
		name := anonymousDonorLabel
		if !d.Anonymous && d.DisplayName != nil {
			name = *d.DisplayName
		}
		donors[i] = dto.CampaignDonorResponse{
			DisplayName: name,
			Amount:      d.Amount,
			Timestamp:   d.Timestamp,
		}
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	pageNumber := params.Page
	if pageNumber <= 0 {
		pageNumber = 1
	}
	return pagination.Page(donors, pageSize, pageNumber), nil
}

// ListDonationsByDonor retrieves the requesting user's own donation history
// together with their all-time donated total.
// Implements portssvc.DonationSvcFacade
func (s *donationService) ListDonationsByDonor(ctx context.Context, donorUserID string, params dto.ListDonationsParams) (*dto.ListDonationsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	donations, nextToken, err := s.donationRepo.ListDonationsByDonor(ctx, donorUserID, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list donor donations", slog.String("donor_id", donorUserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	totalDonated, err := s.donationRepo.SumDonationsByDonor(ctx, donorUserID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to sum donor donations", slog.String("donor_id", donorUserID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to total donations: %w", err)
	}

	resp := dto.ToListDonationsResponse(donations, nextToken)
	resp.TotalDonated = totalDonated
	return &resp, nil
}
