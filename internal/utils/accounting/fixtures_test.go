package accounting

import (
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func debitLine(id, journalID, accountID, amount string) domain.JournalLine {
	return domain.JournalLine{LineID: id, JournalID: journalID, AccountID: strPtr(accountID), Debit: amt(amount), Credit: decimal.Zero}
}

func creditLine(id, journalID, accountID, amount string) domain.JournalLine {
	return domain.JournalLine{LineID: id, JournalID: journalID, AccountID: strPtr(accountID), Debit: decimal.Zero, Credit: amt(amount)}
}

// scenarioChart is the small chart used by the sale/rent scenario.
func scenarioChart() []domain.Account {
	return []domain.Account{
		{AccountID: "rent", Code: "5100", Name: "Rent", AccountType: domain.Expense},
		{AccountID: "cash", Code: "1000", Name: "Cash", AccountType: domain.Cash},
		{AccountID: "sales", Code: "4000", Name: "Sales", AccountType: domain.Income},
		{AccountID: "bank", Code: "1100", Name: "Bank", AccountType: domain.Bank},
		{AccountID: "capital", Code: "3000", Name: "Capital", AccountType: domain.Equity},
	}
}

// scenarioLedger is a cash sale of 500 and rent of 200 paid from the bank, same day.
func scenarioLedger() ([]domain.Journal, []domain.JournalLine) {
	on := day(2024, 4, 10)
	journals := []domain.Journal{
		{JournalID: "j-sale", JournalDate: on, Narration: "Sale", Status: domain.Posted},
		{JournalID: "j-rent", JournalDate: on, Narration: "Rent", Status: domain.Posted},
	}
	lines := []domain.JournalLine{
		debitLine("l1", "j-sale", "cash", "500"),
		creditLine("l2", "j-sale", "sales", "500"),
		debitLine("l3", "j-rent", "rent", "200"),
		creditLine("l4", "j-rent", "bank", "200"),
	}
	return journals, lines
}
