package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes receivables (sales invoices) from payables (purchase bills).
type DocumentKind string

const (
	Receivable DocumentKind = "RECEIVABLE"
	Payable    DocumentKind = "PAYABLE"
)

// DocumentStatusPaid marks a document as fully settled.
const DocumentStatusPaid = "paid"

// OutstandingDocument is an invoice or purchase bill as seen by the aging report.
// AmountSettled is the invoice advance for receivables and the paid amount for payables.
type OutstandingDocument struct {
	DocumentID     string          `json:"documentID"`
	OwnerID        string          `json:"ownerID"`
	Kind           DocumentKind    `json:"kind"`
	PartyName      string          `json:"partyName"`
	DocumentNumber string          `json:"documentNumber"`
	DueDate        time.Time       `json:"dueDate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountSettled  decimal.Decimal `json:"amountSettled"`
	Status         string          `json:"status"`
}

// AmountDue is the unsettled remainder of the document.
func (d OutstandingDocument) AmountDue() decimal.Decimal {
	return d.TotalAmount.Sub(d.AmountSettled)
}

// IsPaid reports whether the document status marks it settled.
func (d OutstandingDocument) IsPaid() bool {
	return strings.EqualFold(strings.TrimSpace(d.Status), DocumentStatusPaid)
}
