package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysOverdue(t *testing.T) {
	today := day(2024, 2, 15)
	cases := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due today", today, 0},
		{"not yet due", day(2024, 3, 1), 0},
		{"one day", day(2024, 2, 14), 1},
		{"time of day is ignored", today.Add(-25 * time.Hour), 2},
		{"due later the same day", today.Add(20 * time.Hour), 0},
		{"across months", day(2024, 1, 1), 45},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysOverdue(tc.due, today))
		})
	}
}

func TestBucketFor_Boundaries(t *testing.T) {
	cases := map[int]domain.AgingBucket{
		0:   domain.Bucket0To30,
		30:  domain.Bucket0To30,
		31:  domain.Bucket31To60,
		60:  domain.Bucket31To60,
		61:  domain.Bucket61To90,
		90:  domain.Bucket61To90,
		91:  domain.BucketOver90,
		400: domain.BucketOver90,
	}
	for days, want := range cases {
		assert.Equal(t, want, BucketFor(days), "days=%d", days)
	}
}

func TestDaysOverdue_LocalClock(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)

	due := day(2024, 1, 1)
	cases := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"west of UTC morning", domain.DayOf(time.Date(2024, 1, 31, 9, 0, 0, 0, newYork)), 30},
		{"west of UTC late evening", domain.DayOf(time.Date(2024, 1, 31, 23, 30, 0, 0, newYork)), 30},
		{"east of UTC early morning", domain.DayOf(time.Date(2024, 2, 1, 0, 30, 0, 0, tokyo)), 31},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysOverdue(due, tc.today))
		})
	}
}

func TestClassifyAging_LocalClockKeepsBoundary(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)
	docs := []domain.OutstandingDocument{
		{DocumentID: "inv-30", DueDate: day(2024, 1, 1), TotalAmount: amt("100"), AmountSettled: decimal.Zero},
	}

	rows := ClassifyAging(docs, domain.DayOf(time.Date(2024, 1, 31, 9, 0, 0, 0, newYork)))

	require.Len(t, rows, 1)
	assert.Equal(t, 30, rows[0].DaysOverdue)
	assert.Equal(t, domain.Bucket0To30, rows[0].Bucket)
}

func TestClassifyAging(t *testing.T) {
	today := day(2024, 2, 15)
	docs := []domain.OutstandingDocument{
		{DocumentID: "inv-1", PartyName: "Acme", DueDate: day(2024, 1, 1), TotalAmount: amt("1000"), AmountSettled: amt("250"), Status: "open"},
		{DocumentID: "inv-2", DueDate: day(2024, 1, 16), TotalAmount: amt("80"), AmountSettled: decimal.Zero},
		{DocumentID: "paid", DueDate: day(2023, 1, 1), TotalAmount: amt("10"), AmountSettled: decimal.Zero, Status: " PAID "},
		{DocumentID: "settled", DueDate: day(2023, 1, 1), TotalAmount: amt("10"), AmountSettled: amt("10")},
		{DocumentID: "overpaid", DueDate: day(2023, 1, 1), TotalAmount: amt("10"), AmountSettled: amt("12")},
		{DocumentID: "future", DueDate: day(2024, 4, 1), TotalAmount: amt("5"), AmountSettled: decimal.Zero},
	}

	rows := ClassifyAging(docs, today)

	require.Len(t, rows, 3)
	assert.Equal(t, "inv-1", rows[0].DocumentID)
	assert.Equal(t, 45, rows[0].DaysOverdue)
	assert.Equal(t, domain.Bucket31To60, rows[0].Bucket)
	assert.Equal(t, "750.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, 30, rows[1].DaysOverdue)
	assert.Equal(t, domain.Bucket0To30, rows[1].Bucket)
	assert.Equal(t, "future", rows[2].DocumentID)
	assert.Equal(t, 0, rows[2].DaysOverdue)
}

func TestSummarizeAging(t *testing.T) {
	rows := []domain.AgingRow{
		{Bucket: domain.Bucket0To30, Amount: amt("10.10")},
		{Bucket: domain.BucketOver90, Amount: amt("5")},
		{Bucket: domain.Bucket0To30, Amount: amt("0.20")},
	}

	totals := SummarizeAging(rows)

	require.Len(t, totals, 4)
	assert.Equal(t, domain.AgingBuckets, []domain.AgingBucket{totals[0].Bucket, totals[1].Bucket, totals[2].Bucket, totals[3].Bucket})
	assert.Equal(t, "10.30", totals[0].Amount.StringFixed(2))
	assert.Equal(t, 2, totals[0].Count)
	assert.True(t, totals[1].Amount.IsZero())
	assert.Equal(t, 0, totals[2].Count)
	assert.Equal(t, 1, totals[3].Count)
}

func TestSummarizeAging_Empty(t *testing.T) {
	totals := SummarizeAging(nil)

	require.Len(t, totals, 4)
	for _, total := range totals {
		assert.True(t, total.Amount.IsZero())
	}
}
