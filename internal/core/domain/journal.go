package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// Journal is a dated accounting entry grouping one or more lines.
// Once posted only its status may change, and only to VOID.
type Journal struct {
	JournalID   string        `json:"journalID"`
	OwnerID     string        `json:"ownerID"`
	JournalDate time.Time     `json:"journalDate"`
	Narration   string        `json:"narration"`
	Status      JournalStatus `json:"status"`
	AuditFields
}

// JournalLine is one debit or credit posting within a journal. Lines without
// an account are kept in storage but ignored by aggregation.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	JournalID string          `json:"journalID"`
	AccountID *string         `json:"accountID,omitempty"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes"`
}

// LinkedAccountID returns the account id and whether the line is linked.
func (l JournalLine) LinkedAccountID() (string, bool) {
	if l.AccountID == nil {
		return "", false
	}
	id := strings.TrimSpace(*l.AccountID)
	return id, id != ""
}

// HasSingleSide reports whether exactly one of debit and credit is non-zero.
func (l JournalLine) HasSingleSide() bool {
	return l.Debit.IsZero() != l.Credit.IsZero()
}

// JournalWithLines is a journal together with its lines in entry order.
type JournalWithLines struct {
	Journal
	Lines []JournalLine `json:"lines"`
}
