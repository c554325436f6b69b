package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrganizationTotals holds ledger-wide aggregates for one organization's campaigns.
type OrganizationTotals struct {
	CampaignCount  int
	ApprovedCount  int
	PendingCount   int
	RejectedCount  int
	TotalRaised    decimal.Decimal
	TotalGoal      decimal.Decimal
	DonationCount  int
	UniqueDonorIDs int
}

// ReportingRepository defines read-only aggregate queries for reporting
type ReportingRepository interface {
	// GetOrganizationTotals aggregates campaign and donation figures across all
	// campaigns created by the given organization user.
	GetOrganizationTotals(ctx context.Context, creatorID string) (*OrganizationTotals, error)
}
