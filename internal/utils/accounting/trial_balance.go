package accounting

import (
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeTrialBalance lists every account of the chart with its summed debit
// and credit over the whole ledger, and checks that the totals agree.
// Lines are matched to accounts only; no date or type filter applies.
func ComputeTrialBalance(accounts []domain.Account, lines []domain.JournalLine) domain.TrialBalance {
	agg := Aggregate(nil, lines, accounts, AggregateOptions{IncludeZeroRows: true})

	tb := domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(agg.Rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Diagnostics: agg.Diagnostics,
	}
	for _, row := range agg.Rows {
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountID:   row.AccountID,
			Code:        row.Code,
			Name:        row.Name,
			AccountType: row.AccountType,
			Debit:       row.DebitSum,
			Credit:      row.CreditSum,
		})
	}

	tb.Balanced = IsBalanced(agg.TotalDebit, agg.TotalCredit)
	tb.TotalDebit = Round(agg.TotalDebit)
	tb.TotalCredit = Round(agg.TotalCredit)
	return tb
}
