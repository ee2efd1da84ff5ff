package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, ownerID string, accountID string) error {
	args := m.Called(ctx, ownerID, accountID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournal(ctx context.Context, ownerID string, journalID string) (*domain.JournalWithLines, error) {
	args := m.Called(ctx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalWithLines), args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, ownerID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, ownerID string, req dto.CreateJournalRequest) (*domain.JournalWithLines, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalWithLines), args.Error(1)
}

func (m *MockJournalService) PostJournal(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) VoidJournal(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, ownerID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, ownerID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) DayBook(ctx context.Context, ownerID string, dateRange domain.DateRange) ([]domain.DayBookRow, error) {
	args := m.Called(ctx, ownerID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayBookRow), args.Error(1)
}

func (m *MockReportingService) AccountSummary(ctx context.Context, ownerID string, dateRange domain.DateRange, types []domain.AccountType) (*domain.AccountSummary, error) {
	args := m.Called(ctx, ownerID, dateRange, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSummary), args.Error(1)
}

func (m *MockReportingService) AgingReport(ctx context.Context, ownerID string, kind domain.DocumentKind, asOf time.Time) (*domain.AgingReport, error) {
	args := m.Called(ctx, ownerID, kind, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgingReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
