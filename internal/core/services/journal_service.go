package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/apperrors"
	"github.com/SscSPs/bizbooks_backend/internal/cache"
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
	"github.com/SscSPs/bizbooks_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

// journalService records journals and moves them through DRAFT -> POSTED -> VOID.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalReportCache makes journal changes invalidate the owner's cached reports.
func WithJournalReportCache(reports *cache.Reports) JournalServiceOption {
	return func(s *journalService) {
		s.Reports = reports
	}
}

// WithJournalClock overrides the clock used for audit fields.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.Now = now
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal records a journal. Drafts may be incomplete but never carry
// negative amounts or foreign accounts; posted journals must pass the full
// posting rules.
func (s *journalService) CreateJournal(ctx context.Context, ownerID string, req dto.CreateJournalRequest) (*domain.JournalWithLines, error) {
	journalDate, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid journal date '%s'", req.Date))
	}
	if len(req.Lines) == 0 {
		return nil, apperrors.NewValidationError("journal must have at least one line")
	}

	now := s.now().UTC()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		OwnerID:     ownerID,
		JournalDate: journalDate,
		Narration:   strings.TrimSpace(req.Narration),
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}
	if req.Post {
		journal.Status = domain.Posted
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d has a negative amount", i+1))
		}
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			JournalID: journal.JournalID,
			AccountID: normalizeAccountID(l.AccountID),
			Debit:     l.Debit,
			Credit:    l.Credit,
			Notes:     l.Notes,
		}
	}

	if req.Post {
		if err := accounting.ValidateJournalLines(lines); err != nil {
			return nil, err
		}
	}
	if err := s.checkAccounts(ctx, ownerID, lines, req.Post); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal",
			slog.String("journal_id", journal.JournalID),
			slog.String("status", string(journal.Status)))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}
	s.invalidateReports(ctx, ownerID)

	s.LogInfo(ctx, "Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("status", string(journal.Status)),
		slog.Int("lines", len(lines)))
	return &domain.JournalWithLines{Journal: journal, Lines: lines}, nil
}

func (s *journalService) GetJournal(ctx context.Context, ownerID string, journalID string) (*domain.JournalWithLines, error) {
	journal, err := s.ownedJournal(ctx, ownerID, journalID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal lines", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to fetch journal lines: %w", err)
	}
	return &domain.JournalWithLines{Journal: *journal, Lines: lines}, nil
}

func (s *journalService) ListJournals(ctx context.Context, ownerID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	dateRange, err := dto.ReportRangeParams{FromDate: params.FromDate, ToDate: params.ToDate}.DateRange()
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date range")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	journals, nextToken, err := s.journalRepo.ListJournalsPage(ctx, ownerID, dateRange, limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list journals", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	resp := dto.ToListJournalsResponse(journals, nextToken)
	return &resp, nil
}

func (s *journalService) PostJournal(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error) {
	journal, err := s.ownedJournal(ctx, ownerID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, apperrors.NewConflictError(fmt.Sprintf("journal %s is %s, only drafts can be posted", journalID, journal.Status))
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal lines", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to fetch journal lines: %w", err)
	}
	if err := accounting.ValidateJournalLines(lines); err != nil {
		return nil, err
	}
	if err := s.checkAccounts(ctx, ownerID, lines, true); err != nil {
		return nil, err
	}

	return s.transition(ctx, ownerID, journal, domain.Draft, domain.Posted)
}

func (s *journalService) VoidJournal(ctx context.Context, ownerID string, journalID string) (*domain.Journal, error) {
	journal, err := s.ownedJournal(ctx, ownerID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Posted {
		return nil, apperrors.NewConflictError(fmt.Sprintf("journal %s is %s, only posted journals can be voided", journalID, journal.Status))
	}
	return s.transition(ctx, ownerID, journal, domain.Posted, domain.Void)
}

func (s *journalService) transition(ctx context.Context, ownerID string, journal *domain.Journal, from, to domain.JournalStatus) (*domain.Journal, error) {
	now := s.now().UTC()
	if err := s.journalRepo.UpdateJournalStatus(ctx, journal.JournalID, from, to, ownerID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update journal status",
			slog.String("journal_id", journal.JournalID),
			slog.String("to", string(to)))
		return nil, fmt.Errorf("failed to update journal status: %w", err)
	}
	s.invalidateReports(ctx, ownerID)

	updated := *journal
	updated.Status = to
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = ownerID
	s.LogInfo(ctx, "Journal status changed",
		slog.String("journal_id", journal.JournalID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return &updated, nil
}

func (s *journalService) ownedJournal(ctx context.Context, ownerID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal", journalID)
		}
		s.LogError(ctx, err, "Failed to find journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to find journal: %w", err)
	}
	if journal.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("journal", journalID)
	}
	return journal, nil
}

// checkAccounts verifies every linked account belongs to the owner. When
// posting, the accounts must also be active.
func (s *journalService) checkAccounts(ctx context.Context, ownerID string, lines []domain.JournalLine, posting bool) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if id, ok := l.LinkedAccountID(); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ownerID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal accounts", slog.Int("accounts", len(ids)))
		return fmt.Errorf("failed to fetch journal accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok || acc.OwnerID != ownerID {
			return apperrors.NewValidationError(fmt.Sprintf("account %s not found", id))
		}
		if posting && !acc.IsActive {
			return apperrors.NewValidationError(fmt.Sprintf("account %s is inactive", acc.Code))
		}
	}
	return nil
}

func normalizeAccountID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
