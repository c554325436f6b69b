package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign is the database representation of a fundraising campaign.
type Campaign struct {
	CampaignID      string          `db:"campaign_id"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	Category        string          `db:"category"`
	Urgency         string          `db:"urgency"`
	Location        string          `db:"location"`
	ImageURL        string          `db:"image_url"`
	FundingGoal     decimal.Decimal `db:"funding_goal"`
	AmountRaised    decimal.Decimal `db:"amount_raised"`
	Deadline        time.Time       `db:"deadline"`
	Status          string          `db:"status"`
	RejectionReason *string         `db:"rejection_reason"`
	CreatorID       string          `db:"creator_id"`
	CreatorName     string          `db:"creator_name"`
	AuditFields
}
