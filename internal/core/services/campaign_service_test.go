package services_test

import (
	"context"
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

type CampaignServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockCampaignRepository
	mockUserSvc  *MockUserReaderSvc
	mockNotifier *MockNotifier
	service      portssvc.CampaignSvcFacade

	org   *domain.User
	admin *domain.User
	donor *domain.User
}

func (suite *CampaignServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCampaignRepository)
	suite.mockUserSvc = new(MockUserReaderSvc)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewCampaignService(suite.mockRepo, suite.mockUserSvc, suite.mockNotifier, nil)

	suite.org = &domain.User{UserID: uuid.NewString(), Email: "org@example.com", DisplayName: "Hope Org", Role: domain.RoleOrganization}
	suite.admin = &domain.User{UserID: uuid.NewString(), Email: "admin@example.com", Role: domain.RoleAdmin}
	suite.donor = &domain.User{UserID: uuid.NewString(), Email: "donor@example.com", Role: domain.RoleDonor}
}

func (suite *CampaignServiceTestSuite) validCreateRequest() dto.CreateCampaignRequest {
	return dto.CreateCampaignRequest{
		Name:        "Clean Water",
		Description: "Wells for the valley",
		Category:    "health",
		Urgency:     domain.UrgencyHigh,
		FundingGoal: decimal.NewFromInt(5000),
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
	}
}

func (suite *CampaignServiceTestSuite) pendingCampaign() *domain.Campaign {
	return &domain.Campaign{
		CampaignID:   uuid.NewString(),
		Name:         "Clean Water",
		FundingGoal:  decimal.NewFromInt(5000),
		AmountRaised: decimal.Zero,
		Deadline:     time.Now().Add(30 * 24 * time.Hour),
		Status:       domain.StatusPending,
		CreatorID:    suite.org.UserID,
	}
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_Success() {
	ctx := context.Background()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.org.UserID).Return(suite.org, nil).Once()
	suite.mockRepo.On("SaveCampaign", mock.Anything, mock.AnythingOfType("domain.Campaign")).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	campaign, err := suite.service.CreateCampaign(ctx, suite.validCreateRequest(), suite.org.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(campaign)
	suite.NotEmpty(campaign.CampaignID)
	suite.Equal(domain.StatusPending, campaign.Status)
	suite.True(campaign.AmountRaised.IsZero())
	suite.Equal(suite.org.UserID, campaign.CreatorID)
	suite.Equal("Hope Org", campaign.CreatorName)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_DonorForbidden() {
	ctx := context.Background()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.donor.UserID).Return(suite.donor, nil).Once()

	_, err := suite.service.CreateCampaign(ctx, suite.validCreateRequest(), suite.donor.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCampaign", mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_NonPositiveGoal() {
	ctx := context.Background()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.org.UserID).Return(suite.org, nil).Once()

	req := suite.validCreateRequest()
	req.FundingGoal = decimal.Zero
	_, err := suite.service.CreateCampaign(ctx, req, suite.org.UserID)

	suite.Require().ErrorIs(err, services.ErrInvalidFundingGoal)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_PastDeadline() {
	ctx := context.Background()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.org.UserID).Return(suite.org, nil).Once()

	req := suite.validCreateRequest()
	req.Deadline = time.Now().Add(-time.Hour)
	_, err := suite.service.CreateCampaign(ctx, req, suite.org.UserID)

	suite.Require().ErrorIs(err, services.ErrDeadlinePast)
}

func (suite *CampaignServiceTestSuite) TestListCampaigns_RejectsUnknownStatus() {
	ctx := context.Background()

	_, _, err := suite.service.ListCampaigns(ctx, dto.ListCampaignsParams{Status: "archived"})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListCampaigns", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_PreservesStatus() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()
	campaign.Status = domain.StatusApproved
	newName := "Clean Water II"

	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()
	suite.mockRepo.On("UpdateCampaign", mock.Anything, mock.MatchedBy(func(c domain.Campaign) bool {
		return c.Name == newName && c.Status == domain.StatusApproved
	})).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	updated, err := suite.service.UpdateCampaign(ctx, campaign.CampaignID, dto.UpdateCampaignRequest{Name: &newName}, suite.org.UserID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(domain.StatusApproved, updated.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_NonCreatorForbidden() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()
	newName := "Hijack"

	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()

	_, err := suite.service.UpdateCampaign(ctx, campaign.CampaignID, dto.UpdateCampaignRequest{Name: &newName}, suite.donor.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCampaign", mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestDeleteCampaign_AdminAllowed() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()

	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockRepo.On("DeleteCampaign", mock.Anything, campaign.CampaignID).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	err := suite.service.DeleteCampaign(ctx, campaign.CampaignID, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestDeleteCampaign_StrangerForbidden() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()

	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.donor.UserID).Return(suite.donor, nil).Once()

	err := suite.service.DeleteCampaign(ctx, campaign.CampaignID, suite.donor.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCampaign", mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestApproveCampaign_Success() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()
	reason := "missing documents"
	campaign.RejectionReason = &reason

	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()
	suite.mockRepo.On("UpdateCampaignStatus", mock.Anything, campaign.CampaignID, domain.StatusApproved, (*string)(nil), suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	approved, err := suite.service.ApproveCampaign(ctx, campaign.CampaignID, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.Status)
	suite.Nil(approved.RejectionReason)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestApproveCampaign_NonAdminForbidden() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()

	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.org.UserID).Return(suite.org, nil).Once()

	_, err := suite.service.ApproveCampaign(ctx, campaign.CampaignID, suite.org.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCampaignStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestApproveCampaign_AlreadyApproved() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()
	campaign.Status = domain.StatusApproved

	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()

	_, err := suite.service.ApproveCampaign(ctx, campaign.CampaignID, suite.admin.UserID)

	suite.Require().ErrorIs(err, services.ErrNotPending)
	suite.Contains(err.Error(), "approved")
}

func (suite *CampaignServiceTestSuite) TestRejectCampaign_Success() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()

	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()
	suite.mockRepo.On("UpdateCampaignStatus", mock.Anything, campaign.CampaignID, domain.StatusRejected, mock.AnythingOfType("*string"), suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Notify", mock.Anything).Once()

	rejected, err := suite.service.RejectCampaign(ctx, campaign.CampaignID, "incomplete documentation", suite.admin.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.Status)
	suite.Require().NotNil(rejected.RejectionReason)
	suite.Equal("incomplete documentation", *rejected.RejectionReason)
}

func (suite *CampaignServiceTestSuite) TestRejectCampaign_BlankReason() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()

	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.admin.UserID).Return(suite.admin, nil).Once()

	_, err := suite.service.RejectCampaign(ctx, campaign.CampaignID, "   ", suite.admin.UserID)

	suite.Require().ErrorIs(err, services.ErrRejectionReasonMissing)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCampaignStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestRejectCampaign_AlreadyRejected() {
	ctx := context.Background()
	campaign := suite.pendingCampaign()
	campaign.Status = domain.StatusRejected

	suite.mockUserSvc.On("GetUserByID", mock.Anything, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockRepo.On("FindCampaignByID", mock.Anything, campaign.CampaignID).Return(campaign, nil).Once()

	_, err := suite.service.RejectCampaign(ctx, campaign.CampaignID, "still not right", suite.admin.UserID)

	suite.Require().ErrorIs(err, services.ErrNotPending)
}

func TestCampaignServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignServiceTestSuite))
}
