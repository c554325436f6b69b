package dto

import (
	"time"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDonationRequest defines the data needed to record a donation.
// The campaign is taken from the URL and the donor from the auth context.
type CreateDonationRequest struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=credit_card paypal bank_transfer"`
	Anonymous     bool                 `json:"anonymous"`
}

// DonationResponse defines the data returned for a donation.
type DonationResponse struct {
	DonationID    string               `json:"donationID"`
	CampaignID    string               `json:"campaignID"`
	CampaignName  string               `json:"campaignName"`
	Amount        decimal.Decimal      `json:"amount"`
	Timestamp     time.Time            `json:"timestamp"`
	DisplayName   *string              `json:"displayName,omitempty"`
	Anonymous     bool                 `json:"anonymous"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

// CampaignDonorResponse is one row of the creator-only donor list.
// Anonymous donors are reported with the fixed "Anonymous" label and
// never leak their user ID.
type CampaignDonorResponse struct {
	DisplayName string          `json:"displayName"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
}

// ListDonorsParams defines query parameters for the creator-only donor list,
// which is paged by page number over the campaign's full donation order.
type ListDonorsParams struct {
	PageSize int `form:"pageSize,default=10"`
	Page     int `form:"page,default=1"`
}

// ListDonationsParams defines query parameters for listing a donor's donations.
type ListDonationsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListDonationsResponse wraps a page of donations with the continuation token
// and the donor's all-time total across every campaign.
type ListDonationsResponse struct {
	Donations    []DonationResponse `json:"donations"`
	TotalDonated decimal.Decimal    `json:"totalDonated"`
	NextToken    *string            `json:"nextToken,omitempty"`
}

// ToDonationResponse converts a domain.Donation to DonationResponse DTO
func ToDonationResponse(d *domain.Donation) DonationResponse {
	return DonationResponse{
		DonationID:    d.DonationID,
		CampaignID:    d.CampaignID,
		CampaignName:  d.CampaignName,
		Amount:        d.Amount,
		Timestamp:     d.Timestamp,
		DisplayName:   d.DisplayName,
		Anonymous:     d.Anonymous,
		PaymentMethod: d.PaymentMethod,
	}
}

// ToListDonationsResponse converts a slice of domain.Donation plus the
// continuation token to a ListDonationsResponse DTO
func ToListDonationsResponse(donations []domain.Donation, nextToken *string) ListDonationsResponse {
	res := make([]DonationResponse, len(donations))
	for i, d := range donations {
		res[i] = ToDonationResponse(&d)
	}
	return ListDonationsResponse{
		Donations: res,
		NextToken: nextToken,
	}
}
