package accounting

import (
	"sort"
	"strconv"
	"strings"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
)

// compareCodes orders account codes naturally: purely numeric codes compare
// as numbers, anything else falls back to a case-insensitive string compare.
func compareCodes(a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// SortedChart returns a copy of accounts ordered by code. Accounts with equal
// codes keep their input order.
func SortedChart(accounts []domain.Account) []domain.Account {
	chart := make([]domain.Account, len(accounts))
	copy(chart, accounts)
	sort.SliceStable(chart, func(i, j int) bool {
		return compareCodes(chart[i].Code, chart[j].Code) < 0
	})
	return chart
}
