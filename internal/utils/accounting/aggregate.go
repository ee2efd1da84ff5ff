package accounting

import (
	"strings"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregateOptions restricts which lines are summed and which rows are emitted.
type AggregateOptions struct {
	Range domain.DateRange
	// AccountTypes keeps only lines on accounts of these types (case-insensitive).
	// Empty means no type filter.
	AccountTypes []domain.AccountType
	// IncludeZeroRows emits every account of the chart, active or not.
	IncludeZeroRows bool
}

// AggregateResult is the per-account summation of a set of journal lines.
type AggregateResult struct {
	Rows        []domain.AggregatedAccountRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Diagnostics domain.LineDiagnostics
}

// postedLine is a line that survived filtering, with its resolved parents.
// journal is nil for lines whose journal was not supplied and no range applied.
type postedLine struct {
	line    domain.JournalLine
	journal *domain.Journal
	account domain.Account
}

type sums struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// Aggregate sums debit and credit per account for the lines that pass the
// options. Inputs are never modified and the result depends only on them.
func Aggregate(journals []domain.Journal, lines []domain.JournalLine, accounts []domain.Account, opts AggregateOptions) AggregateResult {
	var diag domain.LineDiagnostics
	retained := selectLines(journals, lines, accounts, opts, &diag)

	totals := make(map[string]*sums, len(accounts))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, pl := range retained {
		s, ok := totals[pl.account.AccountID]
		if !ok {
			s = &sums{debit: decimal.Zero, credit: decimal.Zero}
			totals[pl.account.AccountID] = s
		}
		s.debit = s.debit.Add(pl.line.Debit)
		s.credit = s.credit.Add(pl.line.Credit)
		totalDebit = totalDebit.Add(pl.line.Debit)
		totalCredit = totalCredit.Add(pl.line.Credit)
	}

	filter := typeFilter(opts.AccountTypes)
	rows := make([]domain.AggregatedAccountRow, 0, len(totals))
	emitted := make(map[string]bool, len(accounts))
	for _, acc := range SortedChart(accounts) {
		if emitted[acc.AccountID] {
			continue
		}
		s, active := totals[acc.AccountID]
		if !active {
			if !opts.IncludeZeroRows || !filter.allows(acc.AccountType) {
				continue
			}
			s = &sums{debit: decimal.Zero, credit: decimal.Zero}
		} else if !opts.IncludeZeroRows && s.debit.IsZero() && s.credit.IsZero() {
			continue
		}
		emitted[acc.AccountID] = true
		rows = append(rows, domain.AggregatedAccountRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			DebitSum:    Round(s.debit),
			CreditSum:   Round(s.credit),
		})
	}

	return AggregateResult{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Diagnostics: diag,
	}
}

// selectLines applies the linkage, date, account and type rules and returns the
// surviving lines grouped by journal in journal input order, each group in line
// input order. Lines of unknown journals follow, and only when no range is set.
func selectLines(journals []domain.Journal, lines []domain.JournalLine, accounts []domain.Account, opts AggregateOptions, diag *domain.LineDiagnostics) []postedLine {
	accountsByID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		if _, dup := accountsByID[acc.AccountID]; !dup {
			accountsByID[acc.AccountID] = acc
		}
	}
	journalsByID := make(map[string]int, len(journals))
	for i, j := range journals {
		if _, dup := journalsByID[j.JournalID]; !dup {
			journalsByID[j.JournalID] = i
		}
	}

	byJournal := make(map[string][]int)
	var orphans []int
	for i, line := range lines {
		if _, linked := line.LinkedAccountID(); !linked {
			diag.Unlinked++
			continue
		}
		if _, known := journalsByID[line.JournalID]; !known {
			orphans = append(orphans, i)
			continue
		}
		byJournal[line.JournalID] = append(byJournal[line.JournalID], i)
	}

	filter := typeFilter(opts.AccountTypes)
	retained := make([]postedLine, 0, len(lines))
	keep := func(line domain.JournalLine, journal *domain.Journal) {
		if opts.Range.IsBounded() && (journal == nil || !opts.Range.Contains(journal.JournalDate)) {
			diag.OutOfRange++
			return
		}
		accountID, _ := line.LinkedAccountID()
		acc, ok := accountsByID[accountID]
		if !ok {
			diag.UnknownAccount++
			return
		}
		if !filter.allows(acc.AccountType) {
			diag.TypeFiltered++
			return
		}
		diag.Retained++
		switch {
		case !line.Debit.IsZero() && !line.Credit.IsZero():
			diag.BothSides++
		case line.Debit.IsZero() && line.Credit.IsZero():
			diag.NoSides++
		}
		retained = append(retained, postedLine{line: line, journal: journal, account: acc})
	}

	for i := range journals {
		journal := &journals[i]
		idxs, ok := byJournal[journal.JournalID]
		if !ok {
			continue
		}
		delete(byJournal, journal.JournalID) // duplicate journal ids are visited once
		for _, idx := range idxs {
			keep(lines[idx], journal)
		}
	}
	for _, idx := range orphans {
		keep(lines[idx], nil)
	}
	return retained
}

type accountTypeSet map[string]struct{}

func typeFilter(types []domain.AccountType) accountTypeSet {
	if len(types) == 0 {
		return nil
	}
	set := make(accountTypeSet, len(types))
	for _, t := range types {
		set[strings.ToUpper(strings.TrimSpace(string(t)))] = struct{}{}
	}
	return set
}

func (s accountTypeSet) allows(t domain.AccountType) bool {
	if s == nil {
		return true
	}
	_, ok := s[strings.ToUpper(strings.TrimSpace(string(t)))]
	return ok
}
