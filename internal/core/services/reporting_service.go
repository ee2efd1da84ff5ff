package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/apperrors"
	"github.com/SscSPs/bizbooks_backend/internal/cache"
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// Cache report names.
const (
	reportTrialBalance   = "trial-balance"
	reportDayBook        = "day-book"
	reportAccountSummary = "account-summary"
)

// reportingStatuses are the journal statuses that feed reports.
var reportingStatuses = []domain.JournalStatus{domain.Posted}

// LedgerReader is what reports need from the journal store.
type LedgerReader interface {
	portsrepo.JournalReader
	portsrepo.LineReader
}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	ledgerRepo   LedgerReader
	documentRepo portsrepo.DocumentReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportCache memoizes the ledger reports.
func WithReportCache(reports *cache.Reports) ReportingServiceOption {
	return func(s *reportingService) {
		s.Reports = reports
	}
}

// WithReportingClock overrides the clock that decides "today" for aging.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, ledgerRepo LedgerReader, documentRepo portsrepo.DocumentReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		documentRepo: documentRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// ledger is everything one report run reads for an owner.
type ledger struct {
	accounts []domain.Account
	journals []domain.Journal
	lines    []domain.JournalLine
}

// fetchLedger loads the chart and the posted journals concurrently, then the
// lines of those journals.
func (s *reportingService) fetchLedger(ctx context.Context, ownerID string, dateRange domain.DateRange) (*ledger, error) {
	var l ledger
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.accountRepo.ListAccountsByOwner(gctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to fetch accounts: %w", err)
		}
		l.accounts = accounts
		return nil
	})
	g.Go(func() error {
		journals, err := s.ledgerRepo.ListJournalsByOwner(gctx, ownerID, dateRange, reportingStatuses)
		if err != nil {
			return fmt.Errorf("failed to fetch journals: %w", err)
		}
		l.journals = journals
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger", slog.String("owner_id", ownerID))
		return nil, err
	}

	if len(l.journals) == 0 {
		return &l, nil
	}
	ids := make([]string, len(l.journals))
	for i, j := range l.journals {
		ids[i] = j.JournalID
	}
	lines, err := s.ledgerRepo.FindLinesByJournalIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal lines", slog.String("owner_id", ownerID), slog.Int("journals", len(ids)))
		return nil, fmt.Errorf("failed to fetch journal lines: %w", err)
	}
	l.lines = lines
	return &l, nil
}

// TrialBalance generates the trial balance over every posted journal.
func (s *reportingService) TrialBalance(ctx context.Context, ownerID string) (*domain.TrialBalance, error) {
	tb, err := cache.Fetch(ctx, s.Reports, ownerID, reportTrialBalance, nil, func(ctx context.Context) (domain.TrialBalance, error) {
		l, err := s.fetchLedger(ctx, ownerID, domain.DateRange{})
		if err != nil {
			return domain.TrialBalance{}, err
		}
		tb := accounting.ComputeTrialBalance(l.accounts, l.lines)
		s.logDiagnostics(ctx, reportTrialBalance, tb.Diagnostics)
		return tb, nil
	})
	if err != nil {
		return nil, err
	}

	if !tb.Balanced {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("owner_id", ownerID),
			slog.String("total_debit", tb.TotalDebit.StringFixed(accounting.AmountPlaces)),
			slog.String("total_credit", tb.TotalCredit.StringFixed(accounting.AmountPlaces)))
	}
	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("owner_id", ownerID),
		slog.Int("row_count", len(tb.Rows)),
		slog.Bool("balanced", tb.Balanced))
	return &tb, nil
}

// DayBook generates the cash and bank day book for the range.
func (s *reportingService) DayBook(ctx context.Context, ownerID string, dateRange domain.DateRange) ([]domain.DayBookRow, error) {
	rows, err := cache.Fetch(ctx, s.Reports, ownerID, reportDayBook, []string{rangeKey(dateRange)}, func(ctx context.Context) ([]domain.DayBookRow, error) {
		l, err := s.fetchLedger(ctx, ownerID, dateRange)
		if err != nil {
			return nil, err
		}
		return accounting.BuildDayBook(l.journals, l.lines, l.accounts, dateRange), nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Day book report generated successfully",
		slog.String("owner_id", ownerID),
		slog.String("range", rangeKey(dateRange)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// AccountSummary sums posted activity per account for the range.
func (s *reportingService) AccountSummary(ctx context.Context, ownerID string, dateRange domain.DateRange, types []domain.AccountType) (*domain.AccountSummary, error) {
	types = canonicalTypes(types)
	summary, err := cache.Fetch(ctx, s.Reports, ownerID, reportAccountSummary, []string{rangeKey(dateRange), typesKey(types)}, func(ctx context.Context) (domain.AccountSummary, error) {
		l, err := s.fetchLedger(ctx, ownerID, dateRange)
		if err != nil {
			return domain.AccountSummary{}, err
		}
		res := accounting.Aggregate(l.journals, l.lines, l.accounts, accounting.AggregateOptions{
			Range:        dateRange,
			AccountTypes: types,
		})
		s.logDiagnostics(ctx, reportAccountSummary, res.Diagnostics)
		return domain.AccountSummary{
			Range:       dateRange,
			Types:       types,
			Rows:        res.Rows,
			TotalDebit:  accounting.Round(res.TotalDebit),
			TotalCredit: accounting.Round(res.TotalCredit),
			Diagnostics: res.Diagnostics,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account summary report generated successfully",
		slog.String("owner_id", ownerID),
		slog.String("range", rangeKey(dateRange)),
		slog.Int("row_count", len(summary.Rows)))
	return &summary, nil
}

// AgingReport buckets the owner's outstanding documents of one kind as of
// the given day. A zero asOf means today. The report is never cached.
func (s *reportingService) AgingReport(ctx context.Context, ownerID string, kind domain.DocumentKind, asOf time.Time) (*domain.AgingReport, error) {
	if kind != domain.Receivable && kind != domain.Payable {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown document kind '%s'", kind))
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	today := domain.DayOf(asOf)

	docs, err := s.documentRepo.ListOutstanding(ctx, ownerID, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch outstanding documents",
			slog.String("owner_id", ownerID),
			slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to fetch outstanding documents: %w", err)
	}

	rows := accounting.ClassifyAging(docs, today)
	report := &domain.AgingReport{
		Kind:   kind,
		AsOf:   today,
		Rows:   rows,
		Totals: accounting.SummarizeAging(rows),
	}

	s.LogInfo(ctx, "Aging report generated successfully",
		slog.String("owner_id", ownerID),
		slog.String("kind", string(kind)),
		slog.Int("documents", len(docs)),
		slog.Int("outstanding", len(rows)))
	return report, nil
}

// logDiagnostics reports dropped or malformed lines. They indicate data the
// posting workflow should have rejected.
func (s *reportingService) logDiagnostics(ctx context.Context, report string, d domain.LineDiagnostics) {
	attrs := []any{
		slog.String("report", report),
		slog.Int("retained", d.Retained),
		slog.Int("unlinked", d.Unlinked),
		slog.Int("unknown_account", d.UnknownAccount),
		slog.Int("out_of_range", d.OutOfRange),
		slog.Int("type_filtered", d.TypeFiltered),
		slog.Int("both_sides", d.BothSides),
		slog.Int("no_sides", d.NoSides),
	}
	if d.Unlinked > 0 || d.UnknownAccount > 0 || d.Malformed() > 0 {
		s.LogWarn(ctx, "Ledger lines skipped or malformed", attrs...)
		return
	}
	s.LogDebug(ctx, "Ledger line diagnostics", attrs...)
}

func rangeKey(r domain.DateRange) string {
	from, to := "-", "-"
	if r.Start != nil {
		from = r.Start.Format("2006-01-02")
	}
	if r.End != nil {
		to = r.End.Format("2006-01-02")
	}
	return from + ".." + to
}

// canonicalTypes upper-cases, deduplicates and sorts a type filter so equal
// filters share a cache entry.
func canonicalTypes(types []domain.AccountType) []domain.AccountType {
	if len(types) == 0 {
		return nil
	}
	seen := make(map[domain.AccountType]bool, len(types))
	out := make([]domain.AccountType, 0, len(types))
	for _, t := range types {
		t = domain.AccountType(strings.ToUpper(strings.TrimSpace(string(t))))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func typesKey(types []domain.AccountType) string {
	if len(types) == 0 {
		return "all"
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
