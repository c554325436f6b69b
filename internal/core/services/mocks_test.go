package services_test

import (
	"context"
	"time"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	"github.com/Ryan-Musomba/givehub/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCampaignRepository is a mock type for the CampaignRepositoryFacade interface
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListCampaigns(ctx context.Context, filter portsrepo.CampaignFilter, limit int, nextToken *string) ([]domain.Campaign, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Campaign), token, args.Error(2)
}

func (m *MockCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) UpdateCampaignStatus(ctx context.Context, campaignID string, status domain.CampaignStatus, rejectionReason *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, campaignID, status, rejectionReason, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockCampaignRepository) SetAmountRaised(ctx context.Context, campaignID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, campaignID, amount, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockCampaignRepository) DeleteCampaign(ctx context.Context, campaignID string) error {
	args := m.Called(ctx, campaignID)
	return args.Error(0)
}

// MockDonationRepository is a mock type for the DonationRepositoryFacade interface
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) FindDonationsByCampaignID(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListDonationsByDonor(ctx context.Context, donorID string, limit int, nextToken *string) ([]domain.Donation, *string, error) {
	args := m.Called(ctx, donorID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Donation), token, args.Error(2)
}

func (m *MockDonationRepository) SumDonationsByCampaignID(ctx context.Context, campaignID string) (decimal.Decimal, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDonationRepository) SumDonationsByDonor(ctx context.Context, donorID string) (decimal.Decimal, error) {
	args := m.Called(ctx, donorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation, expectedRaised decimal.Decimal) error {
	args := m.Called(ctx, donation, expectedRaised)
	return args.Error(0)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.User), token, args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, userID string, params map[string]interface{}, updatedByUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, params, updatedByUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedByUserID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedByUserID, deletedAt)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetOrganizationTotals(ctx context.Context, creatorID string) (*portsrepo.OrganizationTotals, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.OrganizationTotals), args.Error(1)
}

// MockUserReaderSvc is a mock type for the UserReaderSvc interface
type MockUserReaderSvc struct {
	mock.Mock
}

func (m *MockUserReaderSvc) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReaderSvc) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReaderSvc) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.User), token, args.Error(2)
}

// MockNotifier is a mock type for the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context) {
	m.Called(ctx)
}
