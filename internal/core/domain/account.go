package domain

import "strings"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
	// Cash and Bank are asset subtypes tracked separately for the day book.
	Cash AccountType = "CASH"
	Bank AccountType = "BANK"
)

// AccountTypes lists every supported account type in chart order.
var AccountTypes = []AccountType{Asset, Cash, Bank, Liability, Equity, Income, Expense}

// ParseAccountType normalises a user supplied type string. The boolean is false
// for unknown types.
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AccountTypes {
		if t == known {
			return t, true
		}
	}
	return t, false
}

// Is reports whether the account type matches other, ignoring case.
func (t AccountType) Is(other AccountType) bool {
	return strings.EqualFold(string(t), string(other))
}

// IsCashOrBank reports whether the type feeds the day book.
func (t AccountType) IsCashOrBank() bool {
	return t.Is(Cash) || t.Is(Bank)
}

// Account represents a chart-of-accounts entry owned by a single user.
// It is immutable once referenced by a posted line, except for IsActive.
type Account struct {
	AccountID   string      `json:"accountID"`
	OwnerID     string      `json:"ownerID"`
	Code        string      `json:"code"` // sort key within the chart
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
