package services

import (
	"context"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/Ryan-Musomba/givehub/internal/dto"
)

// CampaignReaderSvc defines read operations for campaign data
type CampaignReaderSvc interface {
	// GetCampaignByID retrieves a specific campaign by its ID.
	GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error)

	// ListCampaigns retrieves a filtered, paginated list of campaigns.
	ListCampaigns(ctx context.Context, params dto.ListCampaignsParams) ([]domain.Campaign, *string, error)
}

// CampaignWriterSvc defines write operations for campaign data
type CampaignWriterSvc interface {
	// CreateCampaign persists a new campaign in pending status.
	CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest, creatorUserID string) (*domain.Campaign, error)

	// UpdateCampaign updates campaign details. Only the creator may edit, and
	// edits never touch the review status.
	UpdateCampaign(ctx context.Context, campaignID string, req dto.UpdateCampaignRequest, requestingUserID string) (*domain.Campaign, error)

	// DeleteCampaign removes a campaign. Only the creator or an admin may delete.
	DeleteCampaign(ctx context.Context, campaignID string, requestingUserID string) error
}

// CampaignApprovalSvc defines the admin review operations
type CampaignApprovalSvc interface {
	// ApproveCampaign moves a pending campaign to approved and clears any
	// rejection reason.
	ApproveCampaign(ctx context.Context, campaignID string, requestingUserID string) (*domain.Campaign, error)

	// RejectCampaign moves a pending campaign to rejected with a mandatory reason.
	RejectCampaign(ctx context.Context, campaignID string, reason string, requestingUserID string) (*domain.Campaign, error)
}

// CampaignWatchSvc defines the live feed of campaign list changes
type CampaignWatchSvc interface {
	// WatchCampaigns subscribes to the filtered campaign list. The current
	// snapshot is delivered first, then a fresh snapshot after every mutation
	// that touches a matching campaign. The returned cancel func releases the
	// subscription.
	WatchCampaigns(ctx context.Context, params dto.ListCampaignsParams) (<-chan []domain.Campaign, func(), error)
}

// CampaignSvcFacade combines all campaign-related service interfaces
type CampaignSvcFacade interface {
	CampaignReaderSvc
	CampaignWriterSvc
	CampaignApprovalSvc
	CampaignWatchSvc
}
