package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	"github.com/SscSPs/bizbooks_backend/internal/models"
	"github.com/SscSPs/bizbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentReader = (*PgxDocumentRepository)(nil)

// ListOutstanding retrieves the owner's documents of one kind, oldest due first.
func (r *PgxDocumentRepository) ListOutstanding(ctx context.Context, ownerID string, kind domain.DocumentKind) ([]domain.OutstandingDocument, error) {
	query := `
		SELECT document_id, owner_id, kind, party_name, document_number, due_date, total_amount, amount_settled, status
		FROM outstanding_documents
		WHERE owner_id = $1 AND kind = $2
		ORDER BY due_date, document_number;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s documents for owner %s: %w", kind, ownerID, err)
	}
	defer rows.Close()

	ms := []models.OutstandingDocument{}
	for rows.Next() {
		var m models.OutstandingDocument
		if err := rows.Scan(
			&m.DocumentID,
			&m.OwnerID,
			&m.Kind,
			&m.PartyName,
			&m.DocumentNumber,
			&m.DueDate,
			&m.TotalAmount,
			&m.AmountSettled,
			&m.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document row for owner %s: %w", ownerID, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows for owner %s: %w", ownerID, err)
	}
	return mapping.ToDomainOutstandingDocumentSlice(ms), nil
}
