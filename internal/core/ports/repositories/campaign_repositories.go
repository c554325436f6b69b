package repositories

import (
	"context"
	"time"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CampaignFilter narrows a campaign listing. Zero values mean "no constraint".
// Any combination of fields may be set; they are ANDed together.
type CampaignFilter struct {
	Status     domain.CampaignStatus
	CreatorID  string
	NameQuery  string // case-insensitive substring match on the campaign name
	Category   string
	Urgency    domain.Urgency
	GoalBucket domain.GoalBucket
}

// CampaignReader defines read operations for campaign data
type CampaignReader interface {
	// FindCampaignByID retrieves a specific campaign by its unique identifier.
	FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// ListCampaigns retrieves a paginated list of campaigns matching the filter,
	// in insertion order, using token-based pagination.
	ListCampaigns(ctx context.Context, filter CampaignFilter, limit int, nextToken *string) ([]domain.Campaign, *string, error)
}

// CampaignWriter defines write operations for campaign data
type CampaignWriter interface {
	// SaveCampaign persists a new campaign.
	SaveCampaign(ctx context.Context, campaign domain.Campaign) error

	// UpdateCampaign merges the given campaign's mutable fields into the stored record.
	UpdateCampaign(ctx context.Context, campaign domain.Campaign) error

	// UpdateCampaignStatus moves a campaign through the approval workflow.
	// An approval clears any prior rejection reason.
	UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus, rejectionReason *string, updatedBy string, updatedAt time.Time) error

	// SetAmountRaised overwrites the cached raised amount. Used by reconciliation only.
	SetAmountRaised(ctx context.Context, campaignID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// DeleteCampaign removes the campaign record. Donations referencing it are left in place.
	DeleteCampaign(ctx context.Context, campaignID string) error
}

// CampaignRepositoryFacade combines all campaign-related repository interfaces
type CampaignRepositoryFacade interface {
	CampaignReader
	CampaignWriter
}
