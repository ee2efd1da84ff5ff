package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/SscSPs/bizbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ReportRangeParams are the optional period bounds shared by ranged reports.
type ReportRangeParams struct {
	FromDate string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
}

// AccountSummaryParams adds a comma separated account type filter.
type AccountSummaryParams struct {
	ReportRangeParams
	Types string `form:"types"`
}

// AgingParams selects the evaluation date of the aging report.
type AgingParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response.
// Zero cells are empty strings.
type TrialBalanceRowResponse struct {
	AccountID   string `json:"accountID"`
	Code        string `json:"code"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// AmountTotals carries the column totals of a report.
type AmountTotals struct {
	Debit  string `json:"debit"`
	Credit string `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   AmountTotals              `json:"totals"`
	Balanced bool                      `json:"balanced"`
}

// DayBookRowResponse is one cash or bank movement.
type DayBookRowResponse struct {
	Date        string `json:"date"`
	JournalID   string `json:"journalID"`
	AccountID   string `json:"accountID"`
	AccountName string `json:"accountName"`
	Particulars string `json:"particulars"`
	VoucherType string `json:"voucherType"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Balance     string `json:"balance"`
}

// DayBookResponse represents the day book report response
type DayBookResponse struct {
	FromDate string               `json:"fromDate,omitempty"`
	ToDate   string               `json:"toDate,omitempty"`
	Rows     []DayBookRowResponse `json:"rows"`
}

// AccountSummaryRowResponse is one account's activity with its net balance
// on the account's normal side.
type AccountSummaryRowResponse struct {
	AccountID   string `json:"accountID"`
	Code        string `json:"code"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Net         string `json:"net"`
}

// AccountSummaryResponse represents the account summary report response
type AccountSummaryResponse struct {
	FromDate string                      `json:"fromDate,omitempty"`
	ToDate   string                      `json:"toDate,omitempty"`
	Types    []string                    `json:"types,omitempty"`
	Rows     []AccountSummaryRowResponse `json:"rows"`
	Totals   AmountTotals                `json:"totals"`
}

// AgingRowResponse is an outstanding document in its bucket.
type AgingRowResponse struct {
	DocumentID     string `json:"documentID"`
	PartyName      string `json:"partyName"`
	DocumentNumber string `json:"documentNumber"`
	DueDate        string `json:"dueDate"`
	Amount         string `json:"amount"`
	DaysOverdue    int    `json:"daysOverdue"`
	Bucket         string `json:"bucket"`
}

// AgingBucketResponse totals one bucket.
type AgingBucketResponse struct {
	Bucket string `json:"bucket"`
	Amount string `json:"amount"`
	Count  int    `json:"count"`
}

// AgingResponse represents the receivable or payable aging report response
type AgingResponse struct {
	Kind    string                `json:"kind"`
	AsOf    string                `json:"asOf"`
	Rows    []AgingRowResponse    `json:"rows"`
	Buckets []AgingBucketResponse `json:"buckets"`
	Total   string                `json:"total"`
}

func fixed(d decimal.Decimal) string {
	return accounting.Round(d).StringFixed(accounting.AmountPlaces)
}

func formatRange(r domain.DateRange) (string, string) {
	var from, to string
	if r.Start != nil {
		from = r.Start.Format(DateLayout)
	}
	if r.End != nil {
		to = r.End.Format(DateLayout)
	}
	return from, to
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
		Totals:   AmountTotals{Debit: fixed(tb.TotalDebit), Credit: fixed(tb.TotalCredit)},
		Balanced: tb.Balanced,
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.Name,
			AccountType: string(row.AccountType),
			Debit:       accounting.FormatAmount(row.Debit),
			Credit:      accounting.FormatAmount(row.Credit),
		}
	}
	return response
}

// ToDayBookResponse converts day book rows to a DTO response
func ToDayBookResponse(rows []domain.DayBookRow, dateRange domain.DateRange) DayBookResponse {
	from, to := formatRange(dateRange)
	response := DayBookResponse{
		FromDate: from,
		ToDate:   to,
		Rows:     make([]DayBookRowResponse, len(rows)),
	}
	for i, row := range rows {
		response.Rows[i] = DayBookRowResponse{
			Date:        row.Date.Format(DateLayout),
			JournalID:   row.JournalID,
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			Particulars: row.Particulars,
			VoucherType: row.VoucherType,
			Debit:       accounting.FormatAmount(row.Debit),
			Credit:      accounting.FormatAmount(row.Credit),
			Balance:     fixed(row.Balance),
		}
	}
	return response
}

// ToAccountSummaryResponse converts an account summary to a DTO response.
// Rows of unknown account types get an empty net.
func ToAccountSummaryResponse(summary *domain.AccountSummary) AccountSummaryResponse {
	from, to := formatRange(summary.Range)
	response := AccountSummaryResponse{
		FromDate: from,
		ToDate:   to,
		Rows:     make([]AccountSummaryRowResponse, len(summary.Rows)),
		Totals:   AmountTotals{Debit: fixed(summary.TotalDebit), Credit: fixed(summary.TotalCredit)},
	}
	for _, t := range summary.Types {
		response.Types = append(response.Types, string(t))
	}
	for i, row := range summary.Rows {
		net := ""
		if n, err := accounting.NetBalance(row.AccountType, row.DebitSum, row.CreditSum); err == nil {
			net = fixed(n)
		}
		response.Rows[i] = AccountSummaryRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.Name,
			AccountType: string(row.AccountType),
			Debit:       fixed(row.DebitSum),
			Credit:      fixed(row.CreditSum),
			Net:         net,
		}
	}
	return response
}

// ToAgingResponse converts an aging report to a DTO response
func ToAgingResponse(report *domain.AgingReport) AgingResponse {
	response := AgingResponse{
		Kind:    string(report.Kind),
		AsOf:    report.AsOf.Format(DateLayout),
		Rows:    make([]AgingRowResponse, len(report.Rows)),
		Buckets: make([]AgingBucketResponse, len(report.Totals)),
	}
	total := decimal.Zero
	for i, row := range report.Rows {
		response.Rows[i] = AgingRowResponse{
			DocumentID:     row.DocumentID,
			PartyName:      row.PartyName,
			DocumentNumber: row.DocumentNumber,
			DueDate:        row.DueDate.Format(DateLayout),
			Amount:         fixed(row.Amount),
			DaysOverdue:    row.DaysOverdue,
			Bucket:         string(row.Bucket),
		}
	}
	for i, b := range report.Totals {
		response.Buckets[i] = AgingBucketResponse{
			Bucket: string(b.Bucket),
			Amount: fixed(b.Amount),
			Count:  b.Count,
		}
		total = total.Add(b.Amount)
	}
	response.Total = fixed(total)
	return response
}

// ParseDate parses an optional wire date. Empty input gives nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DateRange converts the bounds into a domain range.
func (p ReportRangeParams) DateRange() (domain.DateRange, error) {
	start, err := ParseDate(p.FromDate)
	if err != nil {
		return domain.DateRange{}, err
	}
	end, err := ParseDate(p.ToDate)
	if err != nil {
		return domain.DateRange{}, err
	}
	return domain.DateRange{Start: start, End: end}, nil
}

// AccountTypes splits the types filter. Unknown names are returned as an error
// listing the first offender; an empty filter gives nil.
func (p AccountSummaryParams) AccountTypes() ([]domain.AccountType, error) {
	if strings.TrimSpace(p.Types) == "" {
		return nil, nil
	}
	var types []domain.AccountType
	for _, raw := range strings.Split(p.Types, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		t, ok := domain.ParseAccountType(raw)
		if !ok {
			return nil, fmt.Errorf("unknown account type '%s'", strings.TrimSpace(raw))
		}
		types = append(types, t)
	}
	return types, nil
}
