package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/apperrors"
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	"github.com/SscSPs/bizbooks_backend/internal/models"
	"github.com/SscSPs/bizbooks_backend/internal/utils/mapping"
	"github.com/SscSPs/bizbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	journalColumns = `journal_id, owner_id, journal_date, narration, status, created_at, created_by, last_updated_at, last_updated_by`
	lineColumns    = `line_id, journal_id, account_id, debit, credit, notes, position`
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.OwnerID,
		&m.JournalDate,
		&m.Narration,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.JournalID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Notes,
		&m.Position,
	)
	return m, err
}

// SaveJournal inserts the journal and all of its lines in one transaction.
// Lines keep their slice order through the position column.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	m := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, journalQuery,
		m.JournalID,
		m.OwnerID,
		m.JournalDate,
		m.Narration,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal %s already exists", apperrors.ErrDuplicate, m.JournalID)
		}
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `INSERT INTO journal_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	for i, line := range lines {
		ml := mapping.ToModelJournalLine(line, i)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.JournalID,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.Notes,
			ml.Position,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert lines for journal "+m.JournalID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	j := mapping.ToDomainJournal(m)
	return &j, nil
}

// rangeClause appends inclusive day bounds on journal_date to args and returns
// the matching SQL fragment.
func rangeClause(dateRange domain.DateRange, args []any) (string, []any) {
	var clause strings.Builder
	if dateRange.Start != nil {
		args = append(args, domain.DayOf(*dateRange.Start))
		clause.WriteString(" AND journal_date >= $" + strconv.Itoa(len(args)))
	}
	if dateRange.End != nil {
		args = append(args, domain.DayOf(*dateRange.End))
		clause.WriteString(" AND journal_date <= $" + strconv.Itoa(len(args)))
	}
	return clause.String(), args
}

// ListJournalsByOwner retrieves the owner's journals in the range with one of
// the given statuses, oldest first.
func (r *PgxJournalRepository) ListJournalsByOwner(ctx context.Context, ownerID string, dateRange domain.DateRange, statuses []domain.JournalStatus) ([]domain.Journal, error) {
	statusArg := make([]string, len(statuses))
	for i, s := range statuses {
		statusArg[i] = string(s)
	}

	args := []any{ownerID, statusArg}
	where, args := rangeClause(dateRange, args)
	query := `SELECT ` + journalColumns + ` FROM journals
		WHERE owner_id = $1 AND status = ANY($2)` + where + `
		ORDER BY journal_date, created_at, journal_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	ms := []models.Journal{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row for owner %s: %w", ownerID, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows for owner %s: %w", ownerID, err)
	}
	return mapping.ToDomainJournalSlice(ms), nil
}

// ListJournalsPage retrieves a page of the owner's journals of any status,
// newest first, using token-based pagination.
func (r *PgxJournalRepository) ListJournalsPage(ctx context.Context, ownerID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	args := []any{ownerID}
	where, args := rangeClause(dateRange, args)

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + err.Error())
		}
		args = append(args, cursor.JournalDate, cursor.CreatedAt, cursor.JournalID)
		n := len(args)
		where += fmt.Sprintf(" AND (journal_date, created_at, journal_id) < ($%d, $%d, $%d)", n-2, n-1, n)
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + journalColumns + ` FROM journals
		WHERE owner_id = $1` + where + `
		ORDER BY journal_date DESC, created_at DESC, journal_id DESC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for owner "+ownerID, err)
	}
	defer rows.Close()

	ms := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for owner "+ownerID, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for owner "+ownerID, err)
	}

	var newToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(pagination.JournalCursor{
			JournalDate: last.JournalDate,
			CreatedAt:   last.CreatedAt,
			JournalID:   last.JournalID,
		})
		newToken = &token
	}
	return mapping.ToDomainJournalSlice(ms), newToken, nil
}

// FindLinesByJournalID retrieves the lines of one journal in entry order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_id = $1 ORDER BY position;`
	return r.queryLines(ctx, query, journalID)
}

// FindLinesByJournalIDs retrieves the lines of many journals, grouped in the
// order of journalIDs.
func (r *PgxJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) ([]domain.JournalLine, error) {
	if len(journalIDs) == 0 {
		return []domain.JournalLine{}, nil
	}
	query := `SELECT ` + lineColumns + ` FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY array_position($1::text[], journal_id::text), position;`
	return r.queryLines(ctx, query, journalIDs)
}

func (r *PgxJournalRepository) queryLines(ctx context.Context, query string, args ...any) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	ms := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}

// UpdateJournalStatus moves a journal from one status to another atomically.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, from, to domain.JournalStatus, userID string, now time.Time) error {
	query := `
		UPDATE journals
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, journalID, string(from), string(to), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of journal %s: %w", journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindJournalByID(ctx, journalID); findErr != nil {
			return findErr
		}
		return apperrors.NewConflictError(fmt.Sprintf("journal %s is not %s", journalID, from))
	}
	return nil
}
