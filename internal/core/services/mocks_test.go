package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, ownerID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByOwner(ctx context.Context, ownerID string, dateRange domain.DateRange, statuses []domain.JournalStatus) ([]domain.Journal, error) {
	args := m.Called(ctx, ownerID, dateRange, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsPage(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, ownerID, dateRange, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, from, to domain.JournalStatus, userID string, now time.Time) error {
	args := m.Called(ctx, journalID, from, to, userID, now)
	return args.Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentReader = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) ListOutstanding(ctx context.Context, ownerID string, kind domain.DocumentKind) ([]domain.OutstandingDocument, error) {
	args := m.Called(ctx, ownerID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutstandingDocument), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}
