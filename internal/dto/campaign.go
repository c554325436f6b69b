package dto

import (
	"time"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCampaignRequest defines the data needed to create a new campaign.
type CreateCampaignRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Urgency     domain.Urgency  `json:"urgency" binding:"required,oneof=low medium high"`
	Location    string          `json:"location"`
	ImageURL    string          `json:"imageUrl"`
	FundingGoal decimal.Decimal `json:"fundingGoal" binding:"required"`
	Deadline    time.Time       `json:"deadline" binding:"required"`
}

// UpdateCampaignRequest defines the data allowed for updating a campaign.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCampaignRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Urgency     *domain.Urgency  `json:"urgency"`
	Location    *string          `json:"location"`
	ImageURL    *string          `json:"imageUrl"`
	FundingGoal *decimal.Decimal `json:"fundingGoal"`
	Deadline    *time.Time       `json:"deadline"`
}

// RejectCampaignRequest carries the mandatory reason for a rejection.
type RejectCampaignRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CampaignResponse defines the data returned for a campaign.
// Mirrors domain.Campaign.
type CampaignResponse struct {
	CampaignID      string                `json:"campaignID"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Category        string                `json:"category"`
	Urgency         domain.Urgency        `json:"urgency"`
	Location        string                `json:"location"`
	ImageURL        string                `json:"imageUrl"`
	FundingGoal     decimal.Decimal       `json:"fundingGoal"`
	AmountRaised    decimal.Decimal       `json:"amountRaised"`
	Progress        float64               `json:"progress"`
	Deadline        time.Time             `json:"deadline"`
	Status          domain.CampaignStatus `json:"status"`
	RejectionReason *string               `json:"rejectionReason,omitempty"`
	CreatorID       string                `json:"creatorID"`
	CreatorName     string                `json:"creatorName"`
	CreatedAt       time.Time             `json:"createdAt"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
}

// ListCampaignsParams defines query parameters for listing campaigns.
type ListCampaignsParams struct {
	Status     string  `form:"status"`
	CreatorID  string  `form:"creatorID"`
	Name       string  `form:"name"`
	Category   string  `form:"category"`
	Urgency    string  `form:"urgency"`
	GoalBucket string  `form:"goalBucket"`
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
}

// ListCampaignsResponse wraps a page of campaigns with the continuation token.
type ListCampaignsResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToCampaignResponse converts a domain.Campaign to CampaignResponse DTO
func ToCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		CampaignID:      c.CampaignID,
		Name:            c.Name,
		Description:     c.Description,
		Category:        c.Category,
		Urgency:         c.Urgency,
		Location:        c.Location,
		ImageURL:        c.ImageURL,
		FundingGoal:     c.FundingGoal,
		AmountRaised:    c.AmountRaised,
		Progress:        c.Progress(),
		Deadline:        c.Deadline,
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
		CreatorID:       c.CreatorID,
		CreatorName:     c.CreatorName,
		CreatedAt:       c.CreatedAt,
		LastUpdatedAt:   c.LastUpdatedAt,
	}
}

// ToListCampaignsResponse converts a slice of domain.Campaign plus the
// continuation token to a ListCampaignsResponse DTO
func ToListCampaignsResponse(campaigns []domain.Campaign, nextToken *string) ListCampaignsResponse {
	res := make([]CampaignResponse, len(campaigns))
	for i, c := range campaigns {
		res[i] = ToCampaignResponse(&c)
	}
	return ListCampaignsResponse{
		Campaigns: res,
		NextToken: nextToken,
	}
}
