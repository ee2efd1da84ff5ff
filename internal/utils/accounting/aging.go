package accounting

import (
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DaysOverdue is the number of calendar days from due to today. Each date is
// read in its own location, so a DATE column and a local clock compare by day.
// Documents that are not yet due count as zero days late.
func DaysOverdue(dueDate, today time.Time) int {
	days := int(calendarDay(today).Sub(calendarDay(dueDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BucketFor maps a day count to its aging bucket. Lower bounds are inclusive
// of the previous bucket's edge: 30 is "0-30", 31 is "31-60".
func BucketFor(daysOverdue int) domain.AgingBucket {
	switch {
	case daysOverdue <= 30:
		return domain.Bucket0To30
	case daysOverdue <= 60:
		return domain.Bucket31To60
	case daysOverdue <= 90:
		return domain.Bucket61To90
	default:
		return domain.BucketOver90
	}
}

// ClassifyAging buckets every unsettled document with an amount still due.
// Rows keep the input order.
func ClassifyAging(docs []domain.OutstandingDocument, today time.Time) []domain.AgingRow {
	rows := make([]domain.AgingRow, 0, len(docs))
	for _, doc := range docs {
		if doc.IsPaid() {
			continue
		}
		due := doc.AmountDue()
		if !due.IsPositive() {
			continue
		}
		days := DaysOverdue(doc.DueDate, today)
		rows = append(rows, domain.AgingRow{
			DocumentID:     doc.DocumentID,
			Kind:           doc.Kind,
			PartyName:      doc.PartyName,
			DocumentNumber: doc.DocumentNumber,
			DueDate:        doc.DueDate,
			Amount:         Round(due),
			DaysOverdue:    days,
			Bucket:         BucketFor(days),
		})
	}
	return rows
}

// SummarizeAging totals classified rows per bucket. Every bucket is present,
// in report order, even when empty.
func SummarizeAging(rows []domain.AgingRow) []domain.AgingBucketTotal {
	index := make(map[domain.AgingBucket]int, len(domain.AgingBuckets))
	totals := make([]domain.AgingBucketTotal, len(domain.AgingBuckets))
	for i, b := range domain.AgingBuckets {
		index[b] = i
		totals[i] = domain.AgingBucketTotal{Bucket: b, Amount: decimal.Zero}
	}
	for _, row := range rows {
		i, ok := index[row.Bucket]
		if !ok {
			continue
		}
		totals[i].Amount = totals[i].Amount.Add(row.Amount)
		totals[i].Count++
	}
	for i := range totals {
		totals[i].Amount = Round(totals[i].Amount)
	}
	return totals
}
