package services

import (
	"context"

	"github.com/Ryan-Musomba/givehub/internal/dto"
)

// ReportingService defines aggregate and audit operations over the donation ledger
type ReportingService interface {
	// GetOrganizationSummary aggregates campaign and donation figures for an
	// organization's campaigns. Only the organization itself or an admin may ask.
	GetOrganizationSummary(ctx context.Context, creatorID string, requestingUserID string) (*dto.OrganizationSummaryResponse, error)

	// ReconcileCampaign recomputes a campaign's raised amount from the donation
	// rows and repairs the cached figure if it drifted. Admin only.
	ReconcileCampaign(ctx context.Context, campaignID string, requestingUserID string) (*dto.ReconcileCampaignResponse, error)
}
