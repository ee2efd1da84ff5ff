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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	accountRepo  *MockAccountRepository
	journalRepo  *MockJournalRepository
	documentRepo *MockDocumentRepository
	reports      *cache.Reports
	service      portssvc.ReportingService
	ownerID      string
	today        time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.accountRepo = new(MockAccountRepository)
	suite.journalRepo = new(MockJournalRepository)
	suite.documentRepo = new(MockDocumentRepository)
	suite.reports = cache.NewReports(cache.NewMemoryStore(32, time.Minute))
	suite.ownerID = "owner-1"
	suite.today = time.Date(2024, 2, 15, 16, 45, 0, 0, time.UTC)
	suite.service = services.NewReportingService(suite.accountRepo, suite.journalRepo, suite.documentRepo,
		services.WithReportCache(suite.reports),
		services.WithReportingClock(func() time.Time { return suite.today }),
	)
}

func (suite *ReportingServiceTestSuite) chart() []domain.Account {
	return []domain.Account{
		{AccountID: "sales", OwnerID: suite.ownerID, Code: "4000", Name: "Sales", AccountType: domain.Income},
		{AccountID: "cash", OwnerID: suite.ownerID, Code: "1000", Name: "Cash", AccountType: domain.Cash},
		{AccountID: "rent", OwnerID: suite.ownerID, Code: "5100", Name: "Rent", AccountType: domain.Expense},
		{AccountID: "bank", OwnerID: suite.ownerID, Code: "1100", Name: "Bank", AccountType: domain.Bank},
	}
}

func (suite *ReportingServiceTestSuite) expectLedger(dateRange domain.DateRange) {
	on := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	journals := []domain.Journal{
		{JournalID: "j-sale", OwnerID: suite.ownerID, JournalDate: on, Narration: "Sale", Status: domain.Posted},
		{JournalID: "j-rent", OwnerID: suite.ownerID, JournalDate: on, Narration: "Rent", Status: domain.Posted},
	}
	lines := []domain.JournalLine{
		{LineID: "l1", JournalID: "j-sale", AccountID: strPtr("cash"), Debit: decimal.NewFromInt(500)},
		{LineID: "l2", JournalID: "j-sale", AccountID: strPtr("sales"), Credit: decimal.NewFromInt(500)},
		{LineID: "l3", JournalID: "j-rent", AccountID: strPtr("rent"), Debit: decimal.NewFromInt(200)},
		{LineID: "l4", JournalID: "j-rent", AccountID: strPtr("bank"), Credit: decimal.NewFromInt(200)},
	}
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, suite.ownerID).Return(suite.chart(), nil).Once()
	suite.journalRepo.On("ListJournalsByOwner", mock.Anything, suite.ownerID, dateRange, []domain.JournalStatus{domain.Posted}).Return(journals, nil).Once()
	suite.journalRepo.On("FindLinesByJournalIDs", mock.Anything, []string{"j-sale", "j-rent"}).Return(lines, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Scenario() {
	suite.expectLedger(domain.DateRange{})

	tb, err := suite.service.TrialBalance(context.Background(), suite.ownerID)

	suite.Require().NoError(err)
	suite.True(tb.Balanced)
	suite.Equal("700.00", tb.TotalDebit.StringFixed(2))
	suite.Equal("700.00", tb.TotalCredit.StringFixed(2))
	suite.Equal([]string{"cash", "bank", "sales", "rent"}, []string{tb.Rows[0].AccountID, tb.Rows[1].AccountID, tb.Rows[2].AccountID, tb.Rows[3].AccountID})
	suite.accountRepo.AssertExpectations(suite.T())
	suite.journalRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_CachedUntilInvalidated() {
	ctx := context.Background()
	suite.expectLedger(domain.DateRange{})

	first, err := suite.service.TrialBalance(ctx, suite.ownerID)
	suite.Require().NoError(err)
	second, err := suite.service.TrialBalance(ctx, suite.ownerID)
	suite.Require().NoError(err)

	suite.Equal(first.TotalDebit.StringFixed(2), second.TotalDebit.StringFixed(2))
	suite.Len(second.Rows, 4)
	suite.journalRepo.AssertNumberOfCalls(suite.T(), "ListJournalsByOwner", 1)

	suite.Require().NoError(suite.reports.Invalidate(ctx, suite.ownerID))
	suite.expectLedger(domain.DateRange{})
	_, err = suite.service.TrialBalance(ctx, suite.ownerID)
	suite.Require().NoError(err)
	suite.journalRepo.AssertNumberOfCalls(suite.T(), "ListJournalsByOwner", 2)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NoJournalsSkipsLineFetch() {
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, suite.ownerID).Return(suite.chart(), nil).Once()
	suite.journalRepo.On("ListJournalsByOwner", mock.Anything, suite.ownerID, domain.DateRange{}, []domain.JournalStatus{domain.Posted}).Return([]domain.Journal{}, nil).Once()

	tb, err := suite.service.TrialBalance(context.Background(), suite.ownerID)

	suite.Require().NoError(err)
	suite.Len(tb.Rows, 4)
	suite.True(tb.Balanced)
	suite.journalRepo.AssertNotCalled(suite.T(), "FindLinesByJournalIDs", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_FetchError() {
	suite.accountRepo.On("ListAccountsByOwner", mock.Anything, suite.ownerID).Return(nil, assert.AnError).Once()
	suite.journalRepo.On("ListJournalsByOwner", mock.Anything, suite.ownerID, domain.DateRange{}, mock.Anything).Return([]domain.Journal{}, nil).Maybe()

	_, err := suite.service.TrialBalance(context.Background(), suite.ownerID)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *ReportingServiceTestSuite) TestDayBook_Scenario() {
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	dateRange := domain.DateRange{Start: &from, End: &to}
	suite.expectLedger(dateRange)

	rows, err := suite.service.DayBook(context.Background(), suite.ownerID, dateRange)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("500.00", rows[0].Balance.StringFixed(2))
	suite.Equal("300.00", rows[1].Balance.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestAccountSummary_TypeFilter() {
	suite.expectLedger(domain.DateRange{})

	summary, err := suite.service.AccountSummary(context.Background(), suite.ownerID, domain.DateRange{}, []domain.AccountType{"bank", "CASH", "cash"})

	suite.Require().NoError(err)
	suite.Equal([]domain.AccountType{domain.Bank, domain.Cash}, summary.Types)
	suite.Require().Len(summary.Rows, 2)
	suite.Equal("cash", summary.Rows[0].AccountID)
	suite.Equal("500.00", summary.TotalDebit.StringFixed(2))
	suite.Equal("200.00", summary.TotalCredit.StringFixed(2))
	suite.Equal(2, summary.Diagnostics.TypeFiltered)
}

func (suite *ReportingServiceTestSuite) TestAgingReport_Receivables() {
	ctx := context.Background()
	docs := []domain.OutstandingDocument{
		{DocumentID: "inv-1", Kind: domain.Receivable, DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(1000), AmountSettled: decimal.NewFromInt(100)},
		{DocumentID: "inv-2", Kind: domain.Receivable, DueDate: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(50), Status: "Paid"},
	}
	suite.documentRepo.On("ListOutstanding", ctx, suite.ownerID, domain.Receivable).Return(docs, nil).Twice()

	report, err := suite.service.AgingReport(ctx, suite.ownerID, domain.Receivable, time.Time{})

	suite.Require().NoError(err)
	suite.Equal(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), report.AsOf)
	suite.Require().Len(report.Rows, 1)
	suite.Equal(45, report.Rows[0].DaysOverdue)
	suite.Equal(domain.Bucket31To60, report.Rows[0].Bucket)
	suite.Equal("900.00", report.Totals[1].Amount.StringFixed(2))

	// never cached: a second call reads the documents again
	_, err = suite.service.AgingReport(ctx, suite.ownerID, domain.Receivable, time.Time{})
	suite.Require().NoError(err)
	suite.documentRepo.AssertNumberOfCalls(suite.T(), "ListOutstanding", 2)
}

func (suite *ReportingServiceTestSuite) TestAgingReport_ClockWestOfUTC() {
	ctx := context.Background()
	est := time.FixedZone("EST", -5*60*60)
	service := services.NewReportingService(suite.accountRepo, suite.journalRepo, suite.documentRepo,
		services.WithReportingClock(func() time.Time { return time.Date(2024, 1, 31, 9, 0, 0, 0, est) }),
	)
	docs := []domain.OutstandingDocument{
		{DocumentID: "bill-30", Kind: domain.Payable, DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(300)},
		{DocumentID: "bill-31", Kind: domain.Payable, DueDate: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(200)},
	}
	suite.documentRepo.On("ListOutstanding", ctx, suite.ownerID, domain.Payable).Return(docs, nil).Once()

	report, err := service.AgingReport(ctx, suite.ownerID, domain.Payable, time.Time{})

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.Equal(30, report.Rows[0].DaysOverdue)
	suite.Equal(domain.Bucket0To30, report.Rows[0].Bucket)
	suite.Equal(31, report.Rows[1].DaysOverdue)
	suite.Equal(domain.Bucket31To60, report.Rows[1].Bucket)
}

func (suite *ReportingServiceTestSuite) TestAgingReport_UnknownKind() {
	_, err := suite.service.AgingReport(context.Background(), suite.ownerID, "CREDIT_NOTE", time.Time{})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestAgingReport_RepoError() {
	ctx := context.Background()
	suite.documentRepo.On("ListOutstanding", ctx, suite.ownerID, domain.Payable).Return(nil, assert.AnError).Once()

	_, err := suite.service.AgingReport(ctx, suite.ownerID, domain.Payable, suite.today)

	suite.ErrorIs(err, assert.AnError)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
