package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Ryan-Musomba/givehub/internal/apperrors"
	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portssvc "github.com/Ryan-Musomba/givehub/internal/core/ports/services"
	"github.com/Ryan-Musomba/givehub/internal/core/services"
	"github.com/Ryan-Musomba/givehub/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DonationServiceTestSuite struct {
	suite.Suite
	mockDonationRepo *MockDonationRepository
	mockCampaignRepo *MockCampaignRepository
	mockUserSvc      *MockUserReaderSvc
	mockNotifier     *MockNotifier
	service          portssvc.DonationSvcFacade

	campaign *domain.Campaign
	donor    *domain.User
}

func (suite *DonationServiceTestSuite) SetupTest() {
	suite.mockDonationRepo = new(MockDonationRepository)
	suite.mockCampaignRepo = new(MockCampaignRepository)
	suite.mockUserSvc = new(MockUserReaderSvc)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewDonationService(suite.mockDonationRepo, suite.mockCampaignRepo, suite.mockUserSvc, suite.mockNotifier)

	suite.campaign = &domain.Campaign{
		CampaignID:   uuid.NewString(),
		Name:         "Clean Water",
		FundingGoal:  decimal.NewFromInt(1000),
		AmountRaised: decimal.NewFromInt(950),
		Deadline:     time.Now().Add(48 * time.Hour),
		Status:       domain.StatusApproved,
		CreatorID:    uuid.NewString(),
	}
	suite.donor = &domain.User{
		UserID:      uuid.NewString(),
		Email:       "jane.doe@example.com",
		DisplayName: "Jane Doe",
		Role:        domain.RoleDonor,
	}
}

func (suite *DonationServiceTestSuite) expectLookups() {
	ctx := mock.Anything
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaign.CampaignID).Return(suite.campaign, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, suite.donor.UserID).Return(suite.donor, nil).Once()
}

func (suite *DonationServiceTestSuite) TestCreateDonation_Success() {
	ctx := context.Background()
	suite.expectLookups()
	suite.mockDonationRepo.On("SaveDonation", mock.Anything, mock.AnythingOfType("domain.Donation"), suite.campaign.AmountRaised).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(50),
		PaymentMethod: domain.PaymentCreditCard,
	}
	donation, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(donation)
	suite.NotEmpty(donation.DonationID)
	suite.Equal(suite.campaign.CampaignID, donation.CampaignID)
	suite.Equal(suite.campaign.Name, donation.CampaignName)
	suite.True(donation.Amount.Equal(decimal.NewFromInt(50)))
	suite.False(donation.Anonymous)
	suite.Require().NotNil(donation.DisplayName)
	suite.Equal("Jane Doe", *donation.DisplayName)
	suite.mockDonationRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *DonationServiceTestSuite) TestCreateDonation_AnonymousHasNoDisplayName() {
	ctx := context.Background()
	suite.expectLookups()
	suite.mockDonationRepo.On("SaveDonation", mock.Anything, mock.AnythingOfType("domain.Donation"), suite.campaign.AmountRaised).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentPaypal,
		Anonymous:     true,
	}
	donation, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().NoError(err)
	suite.True(donation.Anonymous)
	suite.Nil(donation.DisplayName)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_DisplayNameFallsBackToEmailLocalPart() {
	ctx := context.Background()
	suite.donor.DisplayName = ""
	suite.expectLookups()
	suite.mockDonationRepo.On("SaveDonation", mock.Anything, mock.AnythingOfType("domain.Donation"), suite.campaign.AmountRaised).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentBankTransfer,
	}
	donation, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(donation.DisplayName)
	suite.Equal("jane.doe", *donation.DisplayName)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_NonPositiveAmount() {
	ctx := context.Background()

	req := dto.CreateDonationRequest{
		Amount:        decimal.Zero,
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrInvalidAmount)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "FindCampaignByID", mock.Anything, mock.Anything)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_InvalidPaymentMethod() {
	ctx := context.Background()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: "bitcoin",
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrInvalidPaymentMethod)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "FindCampaignByID", mock.Anything, mock.Anything)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_CampaignNotFound() {
	ctx := context.Background()
	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_PendingCampaign() {
	ctx := context.Background()
	suite.campaign.Status = domain.StatusPending
	suite.expectLookups()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrCampaignNotApproved)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_ExpiredCampaign() {
	ctx := context.Background()
	suite.campaign.Deadline = time.Now().Add(-time.Hour)
	suite.expectLookups()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrCampaignExpired)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_SelfDonation() {
	ctx := context.Background()
	suite.campaign.CreatorID = suite.donor.UserID
	suite.expectLookups()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrSelfDonation)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_ExceedsRemainingGoal() {
	ctx := context.Background()
	// 950 of 1000 raised leaves $50.00 of headroom.
	suite.expectLookups()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrExceedsRemainingGoal)
	suite.Contains(err.Error(), "$50.00")
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "SaveDonation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_ExpiredBeatsSelfDonation() {
	// When several preconditions fail at once the earliest check wins.
	ctx := context.Background()
	suite.campaign.Deadline = time.Now().Add(-time.Hour)
	suite.campaign.CreatorID = suite.donor.UserID
	suite.expectLookups()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrCampaignExpired)
}

func (suite *DonationServiceTestSuite) TestCreateDonation_RetriesAfterConflict() {
	ctx := context.Background()
	fresh := *suite.campaign
	fresh.AmountRaised = decimal.NewFromInt(960)

	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(suite.campaign, nil).Once()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.donor.UserID).Return(suite.donor, nil).Once()

	// First save loses the raised-amount race, the retry succeeds against the
	// re-read figure.
	suite.mockDonationRepo.On("SaveDonation", mock.Anything, mock.AnythingOfType("domain.Donation"), decimal.NewFromInt(950)).Return(apperrors.ErrConflict).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(&fresh, nil).Once()
	suite.mockDonationRepo.On("SaveDonation", mock.Anything, mock.AnythingOfType("domain.Donation"), decimal.NewFromInt(960)).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: domain.PaymentCreditCard,
	}
	donation, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(donation)
	suite.mockDonationRepo.AssertExpectations(suite.T())
}

func (suite *DonationServiceTestSuite) TestCreateDonation_ConflictRetryRevalidatesRemainingGoal() {
	ctx := context.Background()
	fresh := *suite.campaign
	fresh.AmountRaised = decimal.NewFromInt(990)

	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(suite.campaign, nil).Once()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.donor.UserID).Return(suite.donor, nil).Once()
	suite.mockDonationRepo.On("SaveDonation", mock.Anything, mock.AnythingOfType("domain.Donation"), decimal.NewFromInt(950)).Return(apperrors.ErrConflict).Once()
	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(&fresh, nil).Once()

	// $20 fit before the race but only $10.00 remains after it.
	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, services.ErrExceedsRemainingGoal)
	suite.Contains(err.Error(), "$10.00")
}

func (suite *DonationServiceTestSuite) TestCreateDonation_GivesUpAfterRepeatedConflicts() {
	ctx := context.Background()

	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(suite.campaign, nil)
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.donor.UserID).Return(suite.donor, nil).Once()
	suite.mockDonationRepo.On("SaveDonation", mock.Anything, mock.AnythingOfType("domain.Donation"), mock.Anything).Return(apperrors.ErrConflict).Times(3)

	req := dto.CreateDonationRequest{
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, err := suite.service.CreateDonation(ctx, suite.campaign.CampaignID, req, suite.donor.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockDonationRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything)
}

func (suite *DonationServiceTestSuite) TestListCampaignDonors_MasksAnonymousDonors() {
	ctx := context.Background()
	creatorID := suite.campaign.CreatorID
	jane := "Jane Doe"
	donations := []domain.Donation{
		{DonationID: uuid.NewString(), Amount: decimal.NewFromInt(50), DisplayName: &jane},
		{DonationID: uuid.NewString(), Amount: decimal.NewFromInt(25), Anonymous: true},
	}

	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(suite.campaign, nil).Once()
	suite.mockDonationRepo.On("FindDonationsByCampaignID", mock.Anything, suite.campaign.CampaignID).Return(donations, nil).Once()

	donors, err := suite.service.ListCampaignDonors(ctx, suite.campaign.CampaignID, creatorID, dto.ListDonorsParams{})

	suite.Require().NoError(err)
	suite.Require().Len(donors, 2)
	suite.Equal("Jane Doe", donors[0].DisplayName)
	suite.Equal("Anonymous", donors[1].DisplayName)
}

func (suite *DonationServiceTestSuite) TestListCampaignDonors_PagesResults() {
	ctx := context.Background()
	creatorID := suite.campaign.CreatorID
	donations := make([]domain.Donation, 7)
	for i := range donations {
		name := fmt.Sprintf("Donor %d", i+1)
		donations[i] = domain.Donation{DonationID: uuid.NewString(), Amount: decimal.NewFromInt(10), DisplayName: &name}
	}

	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(suite.campaign, nil).Once()
	suite.mockDonationRepo.On("FindDonationsByCampaignID", mock.Anything, suite.campaign.CampaignID).Return(donations, nil).Once()

	donors, err := suite.service.ListCampaignDonors(ctx, suite.campaign.CampaignID, creatorID, dto.ListDonorsParams{PageSize: 3, Page: 3})

	suite.Require().NoError(err)
	suite.Require().Len(donors, 1)
	suite.Equal("Donor 7", donors[0].DisplayName)
}

func (suite *DonationServiceTestSuite) TestListCampaignDonors_NonCreatorForbidden() {
	ctx := context.Background()
	suite.mockCampaignRepo.On("FindCampaignByID", mock.Anything, suite.campaign.CampaignID).Return(suite.campaign, nil).Once()

	_, err := suite.service.ListCampaignDonors(ctx, suite.campaign.CampaignID, uuid.NewString(), dto.ListDonorsParams{})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDonationRepo.AssertNotCalled(suite.T(), "FindDonationsByCampaignID", mock.Anything, mock.Anything)
}

func (suite *DonationServiceTestSuite) TestListDonationsByDonor() {
	ctx := context.Background()
	donations := []domain.Donation{
		{DonationID: uuid.NewString(), DonorID: suite.donor.UserID, Amount: decimal.NewFromInt(15)},
	}
	token := "next"
	suite.mockDonationRepo.On("ListDonationsByDonor", mock.Anything, suite.donor.UserID, 20, (*string)(nil)).Return(donations, &token, nil).Once()
	suite.mockDonationRepo.On("SumDonationsByDonor", mock.Anything, suite.donor.UserID).Return(decimal.NewFromInt(115), nil).Once()

	resp, err := suite.service.ListDonationsByDonor(ctx, suite.donor.UserID, dto.ListDonationsParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Donations, 1)
	suite.True(resp.TotalDonated.Equal(decimal.NewFromInt(115)))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
}

func TestDonationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DonationServiceTestSuite))
}
