package dto

import (
	"github.com/shopspring/decimal"
)

// OrganizationSummaryResponse aggregates campaign and donation figures across
// all campaigns created by one organization.
type OrganizationSummaryResponse struct {
	CreatorID     string          `json:"creatorID"`
	CampaignCount int             `json:"campaignCount"`
	TotalRaised   decimal.Decimal `json:"totalRaised"`
	TotalGoal     decimal.Decimal `json:"totalGoal"`
	DonationCount int             `json:"donationCount"`
	UniqueDonors  int             `json:"uniqueDonors"`
	StatusCounts  struct {
		Pending  int `json:"pending"`
		Approved int `json:"approved"`
		Rejected int `json:"rejected"`
	} `json:"statusCounts"`
}

// ReconcileCampaignResponse reports the outcome of auditing a campaign's
// cached raised amount against the donation ledger.
type ReconcileCampaignResponse struct {
	CampaignID   string          `json:"campaignID"`
	CachedAmount decimal.Decimal `json:"cachedAmount"`
	LedgerAmount decimal.Decimal `json:"ledgerAmount"`
	Adjusted     bool            `json:"adjusted"`
}
