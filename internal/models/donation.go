package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is the database representation of a single contribution.
type Donation struct {
	DonationID    string          `db:"donation_id"`
	CampaignID    string          `db:"campaign_id"`
	CampaignName  string          `db:"campaign_name"`
	Amount        decimal.Decimal `db:"amount"`
	Timestamp     time.Time       `db:"created_at"`
	DonorID       string          `db:"donor_id"`
	DisplayName   *string         `db:"display_name"` // NULL for anonymous donations
	Anonymous     bool            `db:"anonymous"`
	PaymentMethod string          `db:"payment_method"`
}
