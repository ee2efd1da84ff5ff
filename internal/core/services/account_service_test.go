package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/apperrors"
	"github.com/SscSPs/bizbooks_backend/internal/cache"
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/core/services"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	store    *cache.MemoryStore
	service  portssvc.AccountSvcFacade
	ownerID  string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.store = cache.NewMemoryStore(16, time.Minute)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountReportCache(cache.NewReports(suite.store)))
	suite.ownerID = "owner-1"
}

func (suite *AccountServiceTestSuite) generation() uint64 {
	gen, err := suite.store.Generation(context.Background(), suite.ownerID)
	suite.Require().NoError(err)
	return gen
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: " 1000 ", Name: "Cash in hand", AccountType: "cash"}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.OwnerID == suite.ownerID && a.Code == "1000" && a.AccountType == domain.Cash && a.IsActive
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("Cash in hand", created.Name)
	suite.Equal(suite.ownerID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.Equal(uint64(1), suite.generation(), "new accounts change the trial balance")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	_, err := suite.service.CreateAccount(context.Background(), suite.ownerID, dto.CreateAccountRequest{Code: "1", Name: "x", AccountType: "REVENUE"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, suite.ownerID, dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Cash})

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(uint64(0), suite.generation())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(assert.AnError).Once()

	created, err := suite.service.CreateAccount(ctx, suite.ownerID, dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Cash})

	suite.Nil(created)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	acc := &domain.Account{AccountID: "a1", OwnerID: suite.ownerID, Code: "1000"}
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(acc, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, suite.ownerID, "a1")

	suite.Require().NoError(err)
	suite.Equal(acc, got)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherOwnerIsNotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&domain.Account{AccountID: "a1", OwnerID: "someone-else"}, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, suite.ownerID, "a1")

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.ownerID, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "account missing not found")
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(nil, assert.AnError).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.ownerID, "a1")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestListAccounts_OrderedByCode() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsByOwner", ctx, suite.ownerID).Return([]domain.Account{
		{AccountID: "sales", Code: "4000"},
		{AccountID: "cash", Code: "1000"},
		{AccountID: "petty", Code: "200"},
	}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 3)
	suite.Equal([]string{"petty", "cash", "sales"}, []string{accounts[0].AccountID, accounts[1].AccountID, accounts[2].AccountID})
}

func (suite *AccountServiceTestSuite) TestListAccounts_Empty() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsByOwner", ctx, suite.ownerID).Return([]domain.Account{}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.ownerID)

	suite.NoError(err)
	suite.Empty(accounts)
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListAccountsByOwner", ctx, suite.ownerID).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListAccounts(ctx, suite.ownerID)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&domain.Account{AccountID: "a1", OwnerID: suite.ownerID, IsActive: true}, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, "a1", suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.ownerID, "a1")

	suite.NoError(err)
	suite.Equal(uint64(1), suite.generation())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&domain.Account{AccountID: "a1", OwnerID: suite.ownerID, IsActive: false}, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.ownerID, "a1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "a1").Return(&domain.Account{AccountID: "a1", OwnerID: suite.ownerID, IsActive: true}, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, "a1", suite.ownerID, mock.AnythingOfType("time.Time")).Return(assert.AnError).Once()

	err := suite.service.DeactivateAccount(ctx, suite.ownerID, "a1")

	suite.ErrorIs(err, assert.AnError)
	suite.Equal(uint64(0), suite.generation())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
