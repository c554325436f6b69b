package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

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

// Goal bucket boundaries, in whole currency units.
var (
	goalBucketLowMax    = decimal.NewFromInt(1000)
	goalBucketMediumMax = decimal.NewFromInt(10000)
)

const campaignColumns = `campaign_id, name, description, category, urgency, location, image_url,
		funding_goal, amount_raised, deadline, status, rejection_reason, creator_id, creator_name,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxCampaignRepository struct {
	BaseRepository
}

// newPgxCampaignRepository creates a new repository for campaign data.
func newPgxCampaignRepository(pool *pgxpool.Pool) portsrepo.CampaignRepositoryFacade {
	return &PgxCampaignRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCampaignRepository implements portsrepo.CampaignRepositoryFacade
var _ portsrepo.CampaignRepositoryFacade = (*PgxCampaignRepository)(nil)

func scanCampaignRow(row pgx.Row) (models.Campaign, error) {
	var m models.Campaign
	err := row.Scan(
		&m.CampaignID,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.Urgency,
		&m.Location,
		&m.ImageURL,
		&m.FundingGoal,
		&m.AmountRaised,
		&m.Deadline,
		&m.Status,
		&m.RejectionReason,
		&m.CreatorID,
		&m.CreatorName,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCampaign persists a new campaign.
func (r *PgxCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) error {
	m := mapping.ToModelCampaign(campaign)
	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CampaignID,
		m.Name,
		m.Description,
		m.Category,
		m.Urgency,
		m.Location,
		m.ImageURL,
		m.FundingGoal,
		m.AmountRaised,
		m.Deadline,
		m.Status,
		m.RejectionReason,
		m.CreatorID,
		m.CreatorName,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	return nil
}

// FindCampaignByID retrieves a campaign by its ID.
func (r *PgxCampaignRepository) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE campaign_id = $1;`

	m, err := retryRead(ctx, func() (models.Campaign, error) {
		return scanCampaignRow(r.Pool.QueryRow(ctx, query, campaignID))
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find campaign by ID %s: %w", campaignID, err)
	}

	d := mapping.ToDomainCampaign(m)
	return &d, nil
}

// buildCampaignFilterClauses renders the filter into WHERE clauses and args,
// continuing the placeholder numbering from the given offset.
func buildCampaignFilterClauses(filter portsrepo.CampaignFilter, args []interface{}) ([]string, []interface{}) {
	var clauses []string

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.CreatorID != "" {
		args = append(args, filter.CreatorID)
		clauses = append(clauses, "creator_id = $"+strconv.Itoa(len(args)))
	}
	if filter.NameQuery != "" {
		args = append(args, filter.NameQuery)
		clauses = append(clauses, "name ILIKE '%' || $"+strconv.Itoa(len(args))+" || '%'")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.Urgency != "" {
		args = append(args, string(filter.Urgency))
		clauses = append(clauses, "urgency = $"+strconv.Itoa(len(args)))
	}

	switch filter.GoalBucket {
	case domain.GoalBucketLow:
		args = append(args, goalBucketLowMax)
		clauses = append(clauses, "funding_goal <= $"+strconv.Itoa(len(args)))
	case domain.GoalBucketMedium:
		args = append(args, goalBucketLowMax)
		low := "$" + strconv.Itoa(len(args))
		args = append(args, goalBucketMediumMax)
		high := "$" + strconv.Itoa(len(args))
		clauses = append(clauses, "funding_goal > "+low+" AND funding_goal <= "+high)
	case domain.GoalBucketHigh:
		args = append(args, goalBucketMediumMax)
		clauses = append(clauses, "funding_goal > $"+strconv.Itoa(len(args)))
	}

	return clauses, args
}

// ListCampaigns retrieves a filtered page of campaigns in insertion order
// using (created_at, campaign_id) cursor pagination.
func (r *PgxCampaignRepository) ListCampaigns(ctx context.Context, filter portsrepo.CampaignFilter, limit int, nextToken *string) ([]domain.Campaign, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var args []interface{}
	clauses, args := buildCampaignFilterClauses(filter, args)

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursorToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorTime)
		tPos := "$" + strconv.Itoa(len(args))
		args = append(args, cursorID)
		idPos := "$" + strconv.Itoa(len(args))
		clauses = append(clauses, "(created_at, campaign_id) > ("+tPos+", "+idPos+")")
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, limit+1) // fetch one extra row to detect the next page
	query += " ORDER BY created_at ASC, campaign_id ASC LIMIT $" + strconv.Itoa(len(args)) + ";"

	modelCampaigns, err := retryRead(ctx, func() ([]models.Campaign, error) {
		rows, err := r.Pool.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.Campaign
		for rows.Next() {
			m, err := scanCampaignRow(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, rows.Err()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	var newNextToken *string
	if len(modelCampaigns) > limit {
		modelCampaigns = modelCampaigns[:limit]
		last := modelCampaigns[limit-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.CampaignID)
		newNextToken = &token
	}

	return mapping.ToDomainCampaignSlice(modelCampaigns), newNextToken, nil
}

// UpdateCampaign merges the mutable fields of the campaign into the stored row.
func (r *PgxCampaignRepository) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	m := mapping.ToModelCampaign(campaign)
	query := `
		UPDATE campaigns
		SET name = $1, description = $2, category = $3, urgency = $4, location = $5,
			image_url = $6, funding_goal = $7, deadline = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE campaign_id = $11;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.Category,
		m.Urgency,
		m.Location,
		m.ImageURL,
		m.FundingGoal,
		m.Deadline,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CampaignID,
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign %s: %w", m.CampaignID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("campaign not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// UpdateCampaignStatus moves a campaign through the approval workflow.
// The rejection reason column always takes the given value, so an approval
// clears any reason left from a prior rejection.
func (r *PgxCampaignRepository) UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus, rejectionReason *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE campaigns
		SET status = $1, rejection_reason = $2, last_updated_at = $3, last_updated_by = $4
		WHERE campaign_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), rejectionReason, updatedAt, updatedBy, campaignID)
	if err != nil {
		return fmt.Errorf("failed to update campaign status for %s: %w", campaignID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("campaign not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// SetAmountRaised overwrites the cached raised amount. Reconciliation only;
// regular donation writes go through the donation repository's guarded update.
func (r *PgxCampaignRepository) SetAmountRaised(ctx context.Context, campaignID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE campaigns
		SET amount_raised = $1, last_updated_at = $2, last_updated_by = $3
		WHERE campaign_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, amount, updatedAt, updatedBy, campaignID)
	if err != nil {
		return fmt.Errorf("failed to set raised amount for campaign %s: %w", campaignID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("campaign not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCampaign removes the campaign row. Donation rows referencing it stay
// in place as historical ledger records.
func (r *PgxCampaignRepository) DeleteCampaign(ctx context.Context, campaignID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM campaigns WHERE campaign_id = $1;`, campaignID)
	if err != nil {
		return fmt.Errorf("failed to delete campaign %s: %w", campaignID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("campaign not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
