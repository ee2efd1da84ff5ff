package models

import (
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

// Journal is a row of the journals table.
type Journal struct {
	JournalID   string        `db:"journal_id"`
	OwnerID     string        `db:"owner_id"`
	JournalDate time.Time     `db:"journal_date"`
	Narration   string        `db:"narration"`
	Status      JournalStatus `db:"status"`
	AuditFields
}

// JournalLine is a row of the journal_lines table. AccountID is nullable.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	JournalID string          `db:"journal_id"`
	AccountID *string         `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Notes     string          `db:"notes"`
	Position  int             `db:"position"`
}
