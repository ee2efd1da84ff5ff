package mapping

import (
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/SscSPs/bizbooks_backend/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		OwnerID:     d.OwnerID,
		JournalDate: d.JournalDate,
		Narration:   d.Narration,
		Status:      models.JournalStatus(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		OwnerID:     m.OwnerID,
		JournalDate: m.JournalDate,
		Narration:   m.Narration,
		Status:      domain.JournalStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainJournalSlice(ms []models.Journal) []domain.Journal {
	ds := make([]domain.Journal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournal(m)
	}
	return ds
}

// ToModelJournalLine converts a domain line; position keeps the entry order.
func ToModelJournalLine(d domain.JournalLine, position int) models.JournalLine {
	return models.JournalLine{
		LineID:    d.LineID,
		JournalID: d.JournalID,
		AccountID: d.AccountID,
		Debit:     d.Debit,
		Credit:    d.Credit,
		Notes:     d.Notes,
		Position:  position,
	}
}

func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		JournalID: m.JournalID,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Notes:     m.Notes,
	}
}

func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
