package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// DateRange bounds a report period. Nil ends are open. Both ends are inclusive
// and compared by calendar day.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// IsBounded reports whether either end of the range is set.
func (r DateRange) IsBounded() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	day := DayOf(t)
	if r.Start != nil && day.Before(DayOf(*r.Start)) {
		return false
	}
	if r.End != nil && day.After(DayOf(*r.End)) {
		return false
	}
	return true
}

// DayOf truncates t to midnight of its calendar day, keeping its location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
