package services

import (
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	portssvc "github.com/Ryan-Musomba/givehub/internal/core/ports/services"
	"github.com/Ryan-Musomba/givehub/internal/platform/config"
	"github.com/Ryan-Musomba/givehub/internal/watch"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The watch broker fans campaign list changes out to SSE subscribers.
	// Campaign and donation writes notify it after every successful commit.
	broker := watch.NewBroker(repos.CampaignRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Campaign = NewCampaignService(repos.CampaignRepo, container.User, broker, broker)
	container.Donation = NewDonationService(repos.DonationRepo, repos.CampaignRepo, container.User, broker)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.CampaignRepo, repos.DonationRepo, container.User, WithReportingNotifier(broker))

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CampaignSvcFacade = (*campaignService)(nil)
	_ portssvc.DonationSvcFacade = (*donationService)(nil)
	_ portssvc.UserSvcFacade     = (*userService)(nil)
)
