package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for reporting queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetOrganizationTotals aggregates campaign and donation figures across all
// campaigns created by the given organization user. Campaign totals and
// donation totals come from separate queries so the join does not multiply
// the campaign-level sums.
func (r *ReportingRepository) GetOrganizationTotals(ctx context.Context, creatorID string) (*portsrepo.OrganizationTotals, error) {
	totals, err := retryRead(ctx, func() (portsrepo.OrganizationTotals, error) {
		var t portsrepo.OrganizationTotals

		campaignQuery := `
			SELECT COUNT(*),
				COUNT(*) FILTER (WHERE status = 'approved'),
				COUNT(*) FILTER (WHERE status = 'pending'),
				COUNT(*) FILTER (WHERE status = 'rejected'),
				COALESCE(SUM(amount_raised), 0),
				COALESCE(SUM(funding_goal), 0)
			FROM campaigns
			WHERE creator_id = $1;
		`
		err := r.Pool.QueryRow(ctx, campaignQuery, creatorID).Scan(
			&t.CampaignCount,
			&t.ApprovedCount,
			&t.PendingCount,
			&t.RejectedCount,
			&t.TotalRaised,
			&t.TotalGoal,
		)
		if err != nil {
			return t, err
		}

		donationQuery := `
			SELECT COUNT(*), COUNT(DISTINCT d.donor_id)
			FROM donations d
			JOIN campaigns c ON c.campaign_id = d.campaign_id
			WHERE c.creator_id = $1;
		`
		err = r.Pool.QueryRow(ctx, donationQuery, creatorID).Scan(
			&t.DonationCount,
			&t.UniqueDonorIDs,
		)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals for creator %s: %w", creatorID, err)
	}
	return &totals, nil
}
