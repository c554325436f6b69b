package repositories

import (
	"context"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DonationReader defines read operations for donation data
type DonationReader interface {
	// FindDonationsByCampaignID retrieves all donations for a campaign, oldest first.
	FindDonationsByCampaignID(ctx context.Context, campaignID string) ([]domain.Donation, error)

	// ListDonationsByDonor retrieves a paginated list of one donor's donations,
	// newest first, using token-based pagination.
	ListDonationsByDonor(ctx context.Context, donorID string, limit int, nextToken *string) ([]domain.Donation, *string, error)

	// SumDonationsByCampaignID recomputes the donation total for a campaign from
	// the ledger rows. Used to audit the cached amountRaised.
	SumDonationsByCampaignID(ctx context.Context, campaignID string) (decimal.Decimal, error)

	// SumDonationsByDonor totals everything one donor has given, across all
	// campaigns and all pages of their history.
	SumDonationsByDonor(ctx context.Context, donorID string) (decimal.Decimal, error)
}

// DonationWriter defines write operations for donation data
type DonationWriter interface {
	// SaveDonation inserts the donation and increments the campaign's raised
	// amount in a single database transaction. The increment is conditional on
	// the raised amount still equalling expectedRaised; if a concurrent donation
	// moved it, nothing is written and apperrors.ErrConflict is returned so the
	// caller can re-read and re-validate.
	SaveDonation(ctx context.Context, donation domain.Donation, expectedRaised decimal.Decimal) error
}

// DonationRepositoryFacade combines all donation-related repository interfaces
type DonationRepositoryFacade interface {
	DonationReader
	DonationWriter
}

// DonationRepositoryWithTx extends DonationRepositoryFacade with transaction capabilities
type DonationRepositoryWithTx interface {
	DonationRepositoryFacade
	TransactionManager
}
