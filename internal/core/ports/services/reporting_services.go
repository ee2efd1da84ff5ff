package services

import (
	"context"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Only POSTED journals contribute.
type ReportingService interface {
	// TrialBalance lists the whole chart with summed debits and credits and the balance check.
	TrialBalance(ctx context.Context, ownerID string) (*domain.TrialBalance, error)

	// DayBook lists cash and bank movements in the range with a daily running balance.
	DayBook(ctx context.Context, ownerID string, dateRange domain.DateRange) ([]domain.DayBookRow, error)

	// AccountSummary sums activity per account in the range, optionally for some types only.
	AccountSummary(ctx context.Context, ownerID string, dateRange domain.DateRange, types []domain.AccountType) (*domain.AccountSummary, error)

	// AgingReport buckets the owner's unpaid receivables or payables as of a day.
	AgingReport(ctx context.Context, ownerID string, kind domain.DocumentKind, asOf time.Time) (*domain.AgingReport, error)
}
