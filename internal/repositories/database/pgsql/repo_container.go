package pgsql

import (
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	campaignRepo := newPgxCampaignRepository(dbPool)
	donationRepo := newPgxDonationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CampaignRepo:  campaignRepo,
		DonationRepo:  donationRepo,
		UserRepo:      userRepo,
		ReportingRepo: reportingRepo,
	}
}
