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
	"github.com/Ryan-Musomba/givehub/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Email:    "Jane.Doe@Example.com",
		Password: "s3cretpass",
	}

	suite.mockRepo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("jane.doe@example.com", user.Email)
	// Display name defaults to the email local part.
	suite.Equal("jane.doe", user.DisplayName)
	suite.Equal(domain.RoleDonor, user.Role)
	suite.NotEmpty(user.PasswordHash)
	suite.NotEqual("s3cretpass", user.PasswordHash)
	suite.WithinDuration(time.Now(), user.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "jane.doe@example.com"}
	suite.mockRepo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Email: "jane.doe@example.com", Password: "s3cretpass"})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_OrganizationRole() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByEmail", mock.Anything, "org@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Email:       "org@example.com",
		Password:    "s3cretpass",
		DisplayName: "Hope Org",
		Role:        domain.RoleOrganization,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleOrganization, user.Role)
	suite.Equal("Hope Org", user.DisplayName)
}

func (suite *UserServiceTestSuite) TestCreateOrGetGoogleUser_ExistingAccount() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "jane.doe@example.com", Role: domain.RoleDonor}
	suite.mockRepo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(existing, nil).Once()

	user, err := suite.service.CreateOrGetGoogleUser(ctx, domain.GoogleUserInfo{
		Sub:   "google-sub",
		Email: "Jane.Doe@example.com",
		Name:  "Jane Doe",
	})

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateOrGetGoogleUser_FirstSignin() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := suite.service.CreateOrGetGoogleUser(ctx, domain.GoogleUserInfo{
		Sub:     "google-sub",
		Email:   "jane.doe@example.com",
		Name:    "Jane Doe",
		Picture: "https://example.com/p.jpg",
	})

	suite.Require().NoError(err)
	suite.Equal("Jane Doe", user.DisplayName)
	suite.Equal(domain.RoleDonor, user.Role)
	suite.Empty(user.PasswordHash)
	suite.Equal("https://example.com/p.jpg", user.PhotoURL)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SelfOnly() {
	ctx := context.Background()
	userID := uuid.NewString()
	name := "New Name"

	_, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{DisplayName: &name}, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	name := "New Name"
	updated := &domain.User{UserID: userID, DisplayName: name}

	suite.mockRepo.On("UpdateUser", mock.Anything, userID, map[string]interface{}{"display_name": name}, userID).Return(updated, nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{DisplayName: &name}, userID)

	suite.Require().NoError(err)
	suite.Equal(name, user.DisplayName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_AdminCanDeleteOthers() {
	ctx := context.Background()
	admin := &domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	targetID := uuid.NewString()

	suite.mockRepo.On("FindUserByID", mock.Anything, admin.UserID).Return(admin, nil).Once()
	suite.mockRepo.On("MarkUserDeleted", mock.Anything, targetID, admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, targetID, admin.UserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_NonAdminCannotDeleteOthers() {
	ctx := context.Background()
	donor := &domain.User{UserID: uuid.NewString(), Role: domain.RoleDonor}
	targetID := uuid.NewString()

	suite.mockRepo.On("FindUserByID", mock.Anything, donor.UserID).Return(donor, nil).Once()

	err := suite.service.DeleteUser(ctx, targetID, donor.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cretpass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "jane.doe@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "Jane.Doe@example.com", "s3cretpass")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cretpass")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "jane.doe@example.com", PasswordHash: hash}

	suite.mockRepo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "jane.doe@example.com", "wrongpass")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailLooksLikeWrongPassword() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_FederatedOnlyAccount() {
	// Google-only accounts have no password hash and must not pass password auth.
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "jane.doe@example.com", PasswordHash: ""}

	suite.mockRepo.On("FindUserByEmail", mock.Anything, "jane.doe@example.com").Return(user, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, "jane.doe@example.com", "anything")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestClearRefreshToken() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("UpdateRefreshToken", mock.Anything, userID, "", (*time.Time)(nil)).Return(nil).Once()

	err := suite.service.ClearRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
