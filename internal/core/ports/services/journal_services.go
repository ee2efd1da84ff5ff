package services

import (
	"context"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournal retrieves one of the owner's journals with its lines.
	GetJournal(ctx context.Context, ownerID string, journalID string) (*domain.JournalWithLines, error)

	// ListJournals retrieves a page of the owner's journals, newest first.
	ListJournals(ctx context.Context, ownerID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines the posting workflow
type JournalWriterSvc interface {
	// CreateJournal records a journal as DRAFT, or as POSTED when req.Post is set.
	CreateJournal(ctx context.Context, ownerID string, req dto.CreateJournalRequest) (*domain.JournalWithLines, error)

	// PostJournal validates a DRAFT journal and moves it to POSTED.
	PostJournal(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error)

	// VoidJournal moves a POSTED journal to VOID, removing it from reports.
	VoidJournal(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
