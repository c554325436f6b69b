package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the method a donor selected. Recorded only; nothing is charged.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentPaypal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCreditCard, PaymentPaypal, PaymentBankTransfer:
		return true
	}
	return false
}

// Donation is an immutable record of one contribution toward a campaign.
// Donations are never updated or deleted once written.
type Donation struct {
	DonationID    string          `json:"donationID"` // Primary key (UUID)
	CampaignID    string          `json:"campaignID"` // FK -> campaigns.campaign_id
	CampaignName  string          `json:"campaignName"`
	Amount        decimal.Decimal `json:"amount"` // Positive
	Timestamp     time.Time       `json:"timestamp"`
	DonorID       string          `json:"donorID"`               // FK -> users.user_id
	DisplayName   *string         `json:"displayName,omitempty"` // nil when the donation is anonymous
	Anonymous     bool            `json:"anonymous"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}
