package mapping

import (
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/SscSPs/bizbooks_backend/internal/models"
)

// ToDomainOutstandingDocument converts a model OutstandingDocument to a domain OutstandingDocument
func ToDomainOutstandingDocument(m models.OutstandingDocument) domain.OutstandingDocument {
	return domain.OutstandingDocument{
		DocumentID:     m.DocumentID,
		OwnerID:        m.OwnerID,
		Kind:           domain.DocumentKind(m.Kind),
		PartyName:      m.PartyName,
		DocumentNumber: m.DocumentNumber,
		DueDate:        m.DueDate,
		TotalAmount:    m.TotalAmount,
		AmountSettled:  m.AmountSettled,
		Status:         m.Status,
	}
}

func ToDomainOutstandingDocumentSlice(ms []models.OutstandingDocument) []domain.OutstandingDocument {
	ds := make([]domain.OutstandingDocument, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOutstandingDocument(m)
	}
	return ds
}
