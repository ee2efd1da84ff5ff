package dto

import (
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/SscSPs/bizbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateJournalLineRequest is one debit or credit line of a new journal.
type CreateJournalLineRequest struct {
	AccountID *string         `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Notes     string          `json:"notes" binding:"max=500"`
}

// CreateJournalRequest defines the data needed to record a journal.
// Post creates it directly in POSTED status.
type CreateJournalRequest struct {
	Date      string                     `json:"date" binding:"required,datetime=2006-01-02"`
	Narration string                     `json:"narration" binding:"max=500"`
	Post      bool                       `json:"post"`
	Lines     []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	FromDate  string  `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate    string  `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID string    `json:"journalID"`
	Date      string    `json:"date"`
	Narration string    `json:"narration"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string  `json:"lineID"`
	AccountID *string `json:"accountID"`
	Debit     string  `json:"debit"`
	Credit    string  `json:"credit"`
	Notes     string  `json:"notes"`
}

// GetJournalResponse is a journal with its lines.
type GetJournalResponse struct {
	Journal JournalResponse       `json:"journal"`
	Lines   []JournalLineResponse `json:"lines"`
}

// ListJournalsResponse is one page of journals, newest first.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID: j.JournalID,
		Date:      j.JournalDate.Format(DateLayout),
		Narration: j.Narration,
		Status:    string(j.Status),
		CreatedAt: j.CreatedAt,
		CreatedBy: j.CreatedBy,
	}
}

// ToJournalLineResponses converts lines keeping their order.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     accounting.Round(l.Debit).StringFixed(accounting.AmountPlaces),
			Credit:    accounting.Round(l.Credit).StringFixed(accounting.AmountPlaces),
			Notes:     l.Notes,
		}
	}
	return res
}

// ToGetJournalResponse converts a journal and its lines.
func ToGetJournalResponse(j *domain.JournalWithLines) GetJournalResponse {
	return GetJournalResponse{
		Journal: ToJournalResponse(&j.Journal),
		Lines:   ToJournalLineResponses(j.Lines),
	}
}

// ToListJournalsResponse converts a page of journals.
func ToListJournalsResponse(journals []domain.Journal, nextToken *string) ListJournalsResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return ListJournalsResponse{Journals: res, NextToken: nextToken}
}
