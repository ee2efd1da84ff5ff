package accounting

import (
	"sort"
	"strings"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultParticulars is shown when a journal has no narration.
	DefaultParticulars = "Entry"
	// JournalVoucherType labels day-book rows that come from journals.
	JournalVoucherType = "Journal"
)

// DayBookTypes are the account types that feed the day book.
var DayBookTypes = []domain.AccountType{domain.Cash, domain.Bank}

// BuildDayBook lists cash and bank lines in date order. The running balance
// restarts at zero on every new calendar day instead of carrying across days.
func BuildDayBook(journals []domain.Journal, lines []domain.JournalLine, accounts []domain.Account, dateRange domain.DateRange) []domain.DayBookRow {
	var diag domain.LineDiagnostics
	retained := selectLines(journals, lines, accounts, AggregateOptions{
		Range:        dateRange,
		AccountTypes: DayBookTypes,
	}, &diag)

	rows := make([]domain.DayBookRow, 0, len(retained))
	for _, pl := range retained {
		if pl.journal == nil {
			continue // no journal, no date
		}
		particulars := strings.TrimSpace(pl.journal.Narration)
		if particulars == "" {
			particulars = DefaultParticulars
		}
		rows = append(rows, domain.DayBookRow{
			Date:        pl.journal.JournalDate,
			JournalID:   pl.journal.JournalID,
			AccountID:   pl.account.AccountID,
			AccountName: pl.account.Name,
			Particulars: particulars,
			VoucherType: JournalVoucherType,
			Debit:       Round(pl.line.Debit),
			Credit:      Round(pl.line.Credit),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	running := decimal.Zero
	for i := range rows {
		if i == 0 || !domain.SameDay(rows[i].Date, rows[i-1].Date) {
			running = decimal.Zero
		}
		running = running.Add(rows[i].Debit).Sub(rows[i].Credit)
		rows[i].Balance = Round(running)
	}
	return rows
}
