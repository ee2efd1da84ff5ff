package repositories

import (
	"context"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
)

// DocumentReader retrieves invoices and purchase bills for the aging report.
type DocumentReader interface {
	// ListOutstanding retrieves the owner's documents of one kind, oldest due first.
	// Paid documents may be included; callers filter them.
	ListOutstanding(ctx context.Context, ownerID string, kind domain.DocumentKind) ([]domain.OutstandingDocument, error)
}
