package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind mirrors the kind column of outstanding_documents.
type DocumentKind string

const (
	Receivable DocumentKind = "RECEIVABLE"
	Payable    DocumentKind = "PAYABLE"
)

// OutstandingDocument is a row of the outstanding_documents table. Invoices
// store their advance and bills their paid amount in amount_settled.
type OutstandingDocument struct {
	DocumentID     string          `db:"document_id"`
	OwnerID        string          `db:"owner_id"`
	Kind           DocumentKind    `db:"kind"`
	PartyName      string          `db:"party_name"`
	DocumentNumber string          `db:"document_number"`
	DueDate        time.Time       `db:"due_date"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	AmountSettled  decimal.Decimal `db:"amount_settled"`
	Status         string          `db:"status"`
}
