package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregatedAccountRow is an account with its summed debit and credit for a period.
type AggregatedAccountRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	DebitSum    decimal.Decimal `json:"debitSum"`
	CreditSum   decimal.Decimal `json:"creditSum"`
}

// AccountSummary is the per-account activity for a period, optionally
// restricted to some account types.
type AccountSummary struct {
	Range       DateRange              `json:"range"`
	Types       []AccountType          `json:"types,omitempty"`
	Rows        []AggregatedAccountRow `json:"rows"`
	TotalDebit  decimal.Decimal        `json:"totalDebit"`
	TotalCredit decimal.Decimal        `json:"totalCredit"`
	Diagnostics LineDiagnostics        `json:"diagnostics"`
}

// LineDiagnostics counts how lines were treated during aggregation.
type LineDiagnostics struct {
	Retained       int `json:"retained"`
	Unlinked       int `json:"unlinked"`
	UnknownAccount int `json:"unknownAccount"`
	OutOfRange     int `json:"outOfRange"`
	TypeFiltered   int `json:"typeFiltered"`
	// BothSides and NoSides count retained lines that break the one-side rule.
	BothSides int `json:"bothSides"`
	NoSides   int `json:"noSides"`
}

// Malformed is the number of retained lines that are not single sided.
func (d LineDiagnostics) Malformed() int {
	return d.BothSides + d.NoSides
}

// TrialBalanceRow is a single account line of the trial balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the full chart with totals and the balance check.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
	Diagnostics LineDiagnostics   `json:"diagnostics"`
}

// DayBookRow is one cash/bank line with the balance for its day so far.
type DayBookRow struct {
	Date        time.Time       `json:"date"`
	JournalID   string          `json:"journalID"`
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Particulars string          `json:"particulars"`
	VoucherType string          `json:"voucherType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// AgingBucket classifies how late an outstanding document is.
type AgingBucket string

const (
	Bucket0To30  AgingBucket = "0-30"
	Bucket31To60 AgingBucket = "31-60"
	Bucket61To90 AgingBucket = "61-90"
	BucketOver90 AgingBucket = ">90"
)

// AgingBuckets lists the buckets in report order.
var AgingBuckets = []AgingBucket{Bucket0To30, Bucket31To60, Bucket61To90, BucketOver90}

// AgingRow is an outstanding document placed in its bucket.
type AgingRow struct {
	DocumentID     string          `json:"documentID"`
	Kind           DocumentKind    `json:"kind"`
	PartyName      string          `json:"partyName"`
	DocumentNumber string          `json:"documentNumber"`
	DueDate        time.Time       `json:"dueDate"`
	Amount         decimal.Decimal `json:"amount"`
	DaysOverdue    int             `json:"daysOverdue"`
	Bucket         AgingBucket     `json:"bucket"`
}

// AgingBucketTotal is the sum of amounts and number of documents in a bucket.
type AgingBucketTotal struct {
	Bucket AgingBucket     `json:"bucket"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// AgingReport bundles classified rows with per-bucket totals.
type AgingReport struct {
	Kind   DocumentKind       `json:"kind"`
	AsOf   time.Time          `json:"asOf"`
	Rows   []AgingRow         `json:"rows"`
	Totals []AgingBucketTotal `json:"totals"`
}
