package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournalsByOwner retrieves every journal of the owner inside dateRange
	// whose status is one of statuses, ordered by date then creation time.
	ListJournalsByOwner(ctx context.Context, ownerID string, dateRange domain.DateRange, statuses []domain.JournalStatus) ([]domain.Journal, error)

	// ListJournalsPage retrieves journals newest first using token-based pagination.
	// It returns the journals, a token for the next page, and an error.
	ListJournalsPage(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// LineReader defines read operations for journal lines
type LineReader interface {
	// FindLinesByJournalID retrieves the lines of one journal in entry order.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// FindLinesByJournalIDs retrieves the lines of many journals, grouped by
	// journal in the order of journalIDs and in entry order within a journal.
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) ([]domain.JournalLine, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal and its lines atomically.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error

	// UpdateJournalStatus moves a journal from one status to another. It fails
	// with apperrors.ErrConflict when the journal is not currently in from.
	UpdateJournalStatus(ctx context.Context, journalID string, from, to domain.JournalStatus, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	LineReader
	JournalWriter
}
