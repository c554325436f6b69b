package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus reflects where a campaign stands in the approval workflow.
type CampaignStatus string

const (
	StatusPending  CampaignStatus = "pending"
	StatusApproved CampaignStatus = "approved"
	StatusRejected CampaignStatus = "rejected"
)

// Urgency is the organization-declared urgency of a campaign. Descriptive only.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// GoalBucket groups campaigns by the size of their funding goal for browsing filters.
type GoalBucket string

const (
	GoalBucketLow    GoalBucket = "low"    // fundingGoal <= 1000
	GoalBucketMedium GoalBucket = "medium" // 1000 < fundingGoal <= 10000
	GoalBucketHigh   GoalBucket = "high"   // fundingGoal > 10000
)

// Campaign represents a fundraising request with a goal, deadline and approval status.
type Campaign struct {
	CampaignID      string          `json:"campaignID"` // Primary key (UUID)
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Urgency         Urgency         `json:"urgency"`
	Location        string          `json:"location"`
	ImageURL        string          `json:"imageURL"`
	FundingGoal     decimal.Decimal `json:"fundingGoal"`  // Positive
	AmountRaised    decimal.Decimal `json:"amountRaised"` // Derived: running sum of donations, cached for fast read
	Deadline        time.Time       `json:"deadline"`
	Status          CampaignStatus  `json:"status"`
	RejectionReason *string         `json:"rejectionReason,omitempty"` // Set only when Status == rejected
	CreatorID       string          `json:"creatorID"`                 // FK -> users.user_id (organization owner)
	CreatorName     string          `json:"creatorName"`
	AuditFields
}

// Remaining returns the funding still needed, floored at the time of the read.
func (c Campaign) Remaining() decimal.Decimal {
	return c.FundingGoal.Sub(c.AmountRaised)
}

// IsExpired reports whether the campaign deadline has passed at the given instant.
func (c Campaign) IsExpired(now time.Time) bool {
	return now.After(c.Deadline)
}

// Progress returns the funded percentage clamped to [0, 100].
// A zero funding goal is trivially met, so it reports 100.
func (c Campaign) Progress() float64 {
	if c.FundingGoal.IsZero() {
		return 100
	}
	ratio, _ := c.AmountRaised.Div(c.FundingGoal).Float64()
	pct := ratio * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
