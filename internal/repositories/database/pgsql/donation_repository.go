package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	"github.com/Ryan-Musomba/givehub/internal/models"
	"github.com/Ryan-Musomba/givehub/internal/utils/mapping"
	"github.com/Ryan-Musomba/givehub/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const donationColumns = `donation_id, campaign_id, campaign_name, amount, created_at, donor_id,
		display_name, anonymous, payment_method`

type PgxDonationRepository struct {
	BaseRepository
}

// newPgxDonationRepository creates a new repository for donation data.
func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepositoryWithTx {
	return &PgxDonationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDonationRepository implements portsrepo.DonationRepositoryWithTx
var _ portsrepo.DonationRepositoryWithTx = (*PgxDonationRepository)(nil)

func scanDonationRow(row pgx.Row) (models.Donation, error) {
	var m models.Donation
	err := row.Scan(
		&m.DonationID,
		&m.CampaignID,
		&m.CampaignName,
		&m.Amount,
		&m.Timestamp,
		&m.DonorID,
		&m.DisplayName,
		&m.Anonymous,
		&m.PaymentMethod,
	)
	return m, err
}

// SaveDonation inserts the donation row and advances the campaign's cached
// raised amount in one database transaction. The raised-amount update is
// guarded: it only applies while the stored figure still equals
// expectedRaised. If a concurrent donation moved it first, the whole
// transaction rolls back and apperrors.ErrConflict is returned so the caller
// can re-read and re-validate before retrying.
func (r *PgxDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation, expectedRaised decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	guardQuery := `
		UPDATE campaigns
		SET amount_raised = amount_raised + $1, last_updated_at = $2, last_updated_by = $3
		WHERE campaign_id = $4 AND amount_raised = $5;
	`
	cmdTag, err := tx.Exec(ctx, guardQuery,
		donation.Amount,
		donation.Timestamp,
		donation.DonorID,
		donation.CampaignID,
		expectedRaised,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance raised amount for campaign "+donation.CampaignID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the campaign vanished or its raised amount no longer matches
		// the caller's snapshot. Distinguish so the caller can react.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE campaign_id = $1);`, donation.CampaignID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check campaign existence", err)
		}
		if !exists {
			return fmt.Errorf("campaign %s: %w", donation.CampaignID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("raised amount moved for campaign %s: %w", donation.CampaignID, apperrors.ErrConflict)
	}

	m := mapping.ToModelDonation(donation)
	insertQuery := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.DonationID,
		m.CampaignID,
		m.CampaignName,
		m.Amount,
		m.Timestamp,
		m.DonorID,
		m.DisplayName,
		m.Anonymous,
		m.PaymentMethod,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert donation "+m.DonationID, err)
	}

	return r.Commit(ctx, tx)
}

// FindDonationsByCampaignID retrieves all donations for a campaign, oldest first.
func (r *PgxDonationRepository) FindDonationsByCampaignID(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	query := `
		SELECT ` + donationColumns + `
		FROM donations
		WHERE campaign_id = $1
		ORDER BY created_at ASC, donation_id ASC;
	`
	modelDonations, err := retryRead(ctx, func() ([]models.Donation, error) {
		rows, err := r.Pool.Query(ctx, query, campaignID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.Donation
		for rows.Next() {
			m, err := scanDonationRow(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list donations for campaign %s: %w", campaignID, err)
	}
	return mapping.ToDomainDonationSlice(modelDonations), nil
}

// ListDonationsByDonor retrieves a page of one donor's donations, newest
// first, using (created_at, donation_id) cursor pagination.
func (r *PgxDonationRepository) ListDonationsByDonor(ctx context.Context, donorID string, limit int, nextToken *string) ([]domain.Donation, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{donorID}
	query := `
		SELECT ` + donationColumns + `
		FROM donations
		WHERE donor_id = $1`

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursorToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorTime)
		tPos := "$" + strconv.Itoa(len(args))
		args = append(args, cursorID)
		idPos := "$" + strconv.Itoa(len(args))
		query += " AND (created_at, donation_id) < (" + tPos + ", " + idPos + ")"
	}

	args = append(args, limit+1)
	query += " ORDER BY created_at DESC, donation_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	modelDonations, err := retryRead(ctx, func() ([]models.Donation, error) {
		rows, err := r.Pool.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.Donation
		for rows.Next() {
			m, err := scanDonationRow(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list donations for donor %s: %w", donorID, err)
	}

	var newNextToken *string
	if len(modelDonations) > limit {
		modelDonations = modelDonations[:limit]
		last := modelDonations[limit-1]
		token := pagination.EncodeCursorToken(last.Timestamp, last.DonationID)
		newNextToken = &token
	}

	return mapping.ToDomainDonationSlice(modelDonations), newNextToken, nil
}

// SumDonationsByCampaignID recomputes the donation total for a campaign from
// the ledger rows.
func (r *PgxDonationRepository) SumDonationsByCampaignID(ctx context.Context, campaignID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE campaign_id = $1;`

	sum, err := retryRead(ctx, func() (decimal.Decimal, error) {
		var s decimal.Decimal
		err := r.Pool.QueryRow(ctx, query, campaignID).Scan(&s)
		return s, err
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum donations for campaign %s: %w", campaignID, err)
	}
	return sum, nil
}

// SumDonationsByDonor totals everything one donor has given across all campaigns.
func (r *PgxDonationRepository) SumDonationsByDonor(ctx context.Context, donorID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE donor_id = $1;`

	sum, err := retryRead(ctx, func() (decimal.Decimal, error) {
		var s decimal.Decimal
		err := r.Pool.QueryRow(ctx, query, donorID).Scan(&s)
		return s, err
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum donations for donor %s: %w", donorID, err)
	}
	return sum, nil
}
