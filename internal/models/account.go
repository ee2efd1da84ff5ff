package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
	Cash      AccountType = "CASH"
	Bank      AccountType = "BANK"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID   string      `db:"account_id"`
	OwnerID     string      `db:"owner_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}
