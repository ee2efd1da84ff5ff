package pgsql

import (
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
	}
}
