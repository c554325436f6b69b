package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	portssvc "github.com/Ryan-Musomba/givehub/internal/core/ports/services"
	"github.com/Ryan-Musomba/givehub/internal/dto"
	"github.com/Ryan-Musomba/givehub/internal/middleware"
)

// reportingService serves aggregate views over campaigns and the donation ledger.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	campaignRepo  portsrepo.CampaignRepositoryFacade
	donationRepo  portsrepo.DonationReader
	userSvc       portssvc.UserReaderSvc
	notifier      Notifier
}

// ReportingOption configures optional reporting service dependencies.
type ReportingOption func(*reportingService)

// WithReportingNotifier wires the watch broker so reconciliation repairs
// propagate to live subscribers.
func WithReportingNotifier(n Notifier) ReportingOption {
	return func(s *reportingService) {
		s.notifier = n
	}
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, campaignRepo portsrepo.CampaignRepositoryFacade, donationRepo portsrepo.DonationReader, userSvc portssvc.UserReaderSvc, opts ...ReportingOption) portssvc.ReportingService {
	s := &reportingService{
		reportingRepo: reportingRepo,
		campaignRepo:  campaignRepo,
		donationRepo:  donationRepo,
		userSvc:       userSvc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure reportingService implements the portssvc.ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetOrganizationSummary aggregates campaign and donation figures for one
// organization. The organization itself or an admin may ask for it.
// Implements portssvc.ReportingService
func (s *reportingService) GetOrganizationSummary(ctx context.Context, creatorID string, requestingUserID string) (*dto.OrganizationSummaryResponse, error) {
	if requestingUserID != creatorID {
		requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
		if err != nil {
			return nil, err
		}
		if requester.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: summary is visible to the organization and admins only", apperrors.ErrForbidden)
		}
	}

	totals, err := s.reportingRepo.GetOrganizationTotals(ctx, creatorID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to aggregate organization totals", slog.String("creator_id", creatorID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate organization totals: %w", err)
	}

	resp := &dto.OrganizationSummaryResponse{
		CreatorID:     creatorID,
		CampaignCount: totals.CampaignCount,
		TotalRaised:   totals.TotalRaised,
		TotalGoal:     totals.TotalGoal,
		DonationCount: totals.DonationCount,
		UniqueDonors:  totals.UniqueDonorIDs,
	}
	resp.StatusCounts.Pending = totals.PendingCount
	resp.StatusCounts.Approved = totals.ApprovedCount
	resp.StatusCounts.Rejected = totals.RejectedCount
	return resp, nil
}

// ReconcileCampaign recomputes a campaign's raised amount from its donation
// rows and repairs the cached figure when it has drifted. Admin only.
// Implements portssvc.ReportingService
func (s *reportingService) ReconcileCampaign(ctx context.Context, campaignID string, requestingUserID string) (*dto.ReconcileCampaignResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	requester, err := s.userSvc.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if requester.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("campaign %s: %w", campaignID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find campaign %s: %w", campaignID, err)
	}

	ledgerAmount, err := s.donationRepo.SumDonationsByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum donations for campaign %s: %w", campaignID, err)
	}

	resp := &dto.ReconcileCampaignResponse{
		CampaignID:   campaignID,
		CachedAmount: campaign.AmountRaised,
		LedgerAmount: ledgerAmount,
	}

	if campaign.AmountRaised.Equal(ledgerAmount) {
		return resp, nil
	}

	logger.Warn("Campaign raised amount drifted from donation ledger",
		slog.String("campaign_id", campaignID),
		slog.String("cached", campaign.AmountRaised.String()),
		slog.String("ledger", ledgerAmount.String()),
	)

	if err := s.campaignRepo.SetAmountRaised(ctx, campaignID, ledgerAmount, requestingUserID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to repair raised amount for campaign %s: %w", campaignID, err)
	}
	resp.Adjusted = true

	if s.notifier != nil {
		s.notifier.Notify(ctx)
	}
	return resp, nil
}
