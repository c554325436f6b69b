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
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidFundingGoal     = errors.New("funding goal must be a positive amount")
	ErrDeadlinePast           = errors.New("campaign deadline must be in the future")
	ErrNotPending             = errors.New("campaign is not pending review")
	ErrRejectionReasonMissing = errors.New("a rejection reason is required")
)

// Notifier pushes fresh snapshots to campaign list watchers after a mutation.
type Notifier interface {
	Notify(ctx context.Context)
}

// campaignService provides core campaign and approval workflow operations.
type campaignService struct {
	campaignRepo portsrepo.CampaignRepositoryFacade
	userSvc      portssvc.UserReaderSvc
	notifier     Notifier
	watcher      CampaignWatcher
}

// CampaignWatcher is the subscription half of the watch broker.
type CampaignWatcher interface {
	Subscribe(ctx context.Context, filter portsrepo.CampaignFilter) (<-chan []domain.Campaign, func(), error)
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(campaignRepo portsrepo.CampaignRepositoryFacade, userSvc portssvc.UserReaderSvc, notifier Notifier, watcher CampaignWatcher) portssvc.CampaignSvcFacade {
	return &campaignService{
		campaignRepo: campaignRepo,
		userSvc:      userSvc,
		notifier:     notifier,
		watcher:      watcher,
	}
}

// Ensure campaignService implements the portssvc.CampaignSvcFacade interface
var _ portssvc.CampaignSvcFacade = (*campaignService)(nil)

// notifyWatchers pushes a fresh snapshot to subscribers, if a notifier is wired.
func (s *campaignService) notifyWatchers(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.Notify(ctx)
	}
}

// filterFromParams converts list query params into a repository filter,
// validating the enum-valued fields.
func filterFromParams(params dto.ListCampaignsParams) (portsrepo.CampaignFilter, error) {
	filter := portsrepo.CampaignFilter{
		CreatorID: params.CreatorID,
		NameQuery: params.Name,
		Category:  params.Category,
	}

	switch domain.CampaignStatus(params.Status) {
	case "", domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
		filter.Status = domain.CampaignStatus(params.Status)
	default:
		return filter, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
	}

	switch domain.Urgency(params.Urgency) {
	case "", domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh:
		filter.Urgency = domain.Urgency(params.Urgency)
	default:
		return filter, fmt.Errorf("%w: unknown urgency %q", apperrors.ErrValidation, params.Urgency)
	}

	switch domain.GoalBucket(params.GoalBucket) {
	case "", domain.GoalBucketLow, domain.GoalBucketMedium, domain.GoalBucketHigh:
		filter.GoalBucket = domain.GoalBucket(params.GoalBucket)
	default:
		return filter, fmt.Errorf("%w: unknown goal bucket %q", apperrors.ErrValidation, params.GoalBucket)
	}

	return filter, nil
}

// CreateCampaign persists a new campaign in pending status.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest, creatorUserID string) (*domain.Campaign, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userSvc.GetUserByID(ctx, creatorUserID)
	if err != nil {
		logger.Warn("Failed to load creator for campaign creation", slog.String("user_id", creatorUserID), slog.String("error", err.Error()))
		return nil, err
	}
	if creator.Role != domain.RoleOrganization && creator.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only organization accounts can create campaigns", apperrors.ErrForbidden)
	}

	if req.FundingGoal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidFundingGoal
	}

	now := time.Now().UTC()
	if !req.Deadline.After(now) {
		return nil, ErrDeadlinePast
	}

	campaign := domain.Campaign{
		CampaignID:   uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Urgency:      req.Urgency,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		FundingGoal:  req.FundingGoal,
		AmountRaised: decimal.Zero,
		Deadline:     req.Deadline,
		Status:       domain.StatusPending,
		CreatorID:    creator.UserID,
		CreatorName:  creator.DisplayName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.campaignRepo.SaveCampaign(ctx, campaign); err != nil {
		logger.Error("Failed to save campaign", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save campaign: %w", err)
	}

	logger.Info("Campaign created", slog.String("campaign_id", campaign.CampaignID), slog.String("creator_id", creatorUserID))
	s.notifyWatchers(ctx)
	return &campaign, nil
}

// GetCampaignByID retrieves a specific campaign.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("campaign %s: %w", campaignID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find campaign %s: %w", campaignID, err)
	}
	return campaign, nil
}

// ListCampaigns retrieves a filtered, paginated list of campaigns.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) ListCampaigns(ctx context.Context, params dto.ListCampaignsParams) ([]domain.Campaign, *string, error) {
	filter, err := filterFromParams(params)
	if err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	campaigns, nextToken, err := s.campaignRepo.ListCampaigns(ctx, filter, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list campaigns", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nextToken, nil
}

// UpdateCampaign updates campaign details. Only the creator may edit, and an
// edit never changes the review status the campaign already holds.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) UpdateCampaign(ctx context.Context, campaignID string, req dto.UpdateCampaignRequest, requestingUserID string) (*domain.Campaign, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	campaign, err := s.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CreatorID != requestingUserID {
		return nil, fmt.Errorf("%w: only the campaign creator can edit it", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Category != nil {
		campaign.Category = *req.Category
	}
	if req.Urgency != nil {
		switch *req.Urgency {
		case domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh:
			campaign.Urgency = *req.Urgency
		default:
			return nil, fmt.Errorf("%w: unknown urgency %q", apperrors.ErrValidation, *req.Urgency)
		}
	}
	if req.Location != nil {
		campaign.Location = *req.Location
	}
	if req.ImageURL != nil {
		campaign.ImageURL = *req.ImageURL
	}
	if req.FundingGoal != nil {
		if req.FundingGoal.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidFundingGoal
		}
		campaign.FundingGoal = *req.FundingGoal
	}
	if req.Deadline != nil {
		if !req.Deadline.After(now) {
			return nil, ErrDeadlinePast
		}
		campaign.Deadline = *req.Deadline
	}

	campaign.LastUpdatedAt = now
	campaign.LastUpdatedBy = requestingUserID

	if err := s.campaignRepo.UpdateCampaign(ctx, *campaign); err != nil {
		logger.Error("Failed to update campaign", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	logger.Info("Campaign updated", slog.String("campaign_id", campaignID))
	s.notifyWatchers(ctx)
	return campaign, nil
}

// DeleteCampaign removes a campaign. Donations already recorded against it
// are kept as historical ledger rows.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) DeleteCampaign(ctx context.Context, campaignID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	campaign, err := s.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return err
	}

	if campaign.CreatorID != requestingUserID {
		requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
		if err != nil {
			return err
		}
		if requester.Role != domain.RoleAdmin {
			return fmt.Errorf("%w: only the creator or an admin can delete a campaign", apperrors.ErrForbidden)
		}
	}

	if err := s.campaignRepo.DeleteCampaign(ctx, campaignID); err != nil {
		logger.Error("Failed to delete campaign", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	logger.Info("Campaign deleted", slog.String("campaign_id", campaignID), slog.String("deleted_by", requestingUserID))
	s.notifyWatchers(ctx)
	return nil
}

// requireAdmin loads the requesting user and checks for the admin role.
func (s *campaignService) requireAdmin(ctx context.Context, requestingUserID string) error {
	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if requester.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return nil
}

// ApproveCampaign moves a pending campaign to approved, clearing any prior
// rejection reason.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) ApproveCampaign(ctx context.Context, campaignID string, requestingUserID string) (*domain.Campaign, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	campaign, err := s.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: campaign is %s", ErrNotPending, campaign.Status)
	}

	now := time.Now().UTC()
	if err := s.campaignRepo.UpdateCampaignStatus(ctx, campaignID, domain.StatusApproved, nil, requestingUserID, now); err != nil {
		logger.Error("Failed to approve campaign", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to approve campaign: %w", err)
	}

	campaign.Status = domain.StatusApproved
	campaign.RejectionReason = nil
	campaign.LastUpdatedAt = now
	campaign.LastUpdatedBy = requestingUserID

	logger.Info("Campaign approved", slog.String("campaign_id", campaignID), slog.String("approved_by", requestingUserID))
	s.notifyWatchers(ctx)
	return campaign, nil
}

// RejectCampaign moves a pending campaign to rejected with a mandatory reason.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) RejectCampaign(ctx context.Context, campaignID string, reason string, requestingUserID string) (*domain.Campaign, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonMissing
	}

	campaign, err := s.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: campaign is %s", ErrNotPending, campaign.Status)
	}

	now := time.Now().UTC()
	if err := s.campaignRepo.UpdateCampaignStatus(ctx, campaignID, domain.StatusRejected, &reason, requestingUserID, now); err != nil {
		logger.Error("Failed to reject campaign", slog.String("campaign_id", campaignID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reject campaign: %w", err)
	}

	campaign.Status = domain.StatusRejected
	campaign.RejectionReason = &reason
	campaign.LastUpdatedAt = now
	campaign.LastUpdatedBy = requestingUserID

	logger.Info("Campaign rejected", slog.String("campaign_id", campaignID), slog.String("rejected_by", requestingUserID))
	s.notifyWatchers(ctx)
	return campaign, nil
}

// WatchCampaigns subscribes to the filtered campaign list feed.
// Implements portssvc.CampaignSvcFacade
func (s *campaignService) WatchCampaigns(ctx context.Context, params dto.ListCampaignsParams) (<-chan []domain.Campaign, func(), error) {
	if s.watcher == nil {
		return nil, nil, fmt.Errorf("%w: watch feed is not enabled", apperrors.ErrInternal)
	}

	filter, err := filterFromParams(params)
	if err != nil {
		return nil, nil, err
	}
	return s.watcher.Subscribe(ctx, filter)
}
