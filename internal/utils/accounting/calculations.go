package accounting

import (
	"fmt"

	"github.com/SscSPs/bizbooks_backend/internal/apperrors"
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits every emitted amount carries.
const AmountPlaces int32 = 2

// BalanceTolerance is the largest debit/credit difference still reported as balanced.
var BalanceTolerance = decimal.RequireFromString("0.005")

// Round rounds an amount to AmountPlaces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// FormatAmount renders an amount with two decimals, or an empty string when
// it is exactly zero. Report cells use it so inactive accounts print blank.
func FormatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(AmountPlaces)
}

// IsBalanced reports whether debits and credits agree within BalanceTolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThan(BalanceTolerance)
}

// NetBalance returns the balance of an account on its normal side.
// DEBIT-normal: ASSET, CASH, BANK, EXPENSE -> debit - credit
// CREDIT-normal: LIABILITY, EQUITY, INCOME -> credit - debit
func NetBalance(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case accountType.Is(domain.Asset), accountType.Is(domain.Cash), accountType.Is(domain.Bank), accountType.Is(domain.Expense):
		return debit.Sub(credit), nil
	case accountType.Is(domain.Liability), accountType.Is(domain.Equity), accountType.Is(domain.Income):
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateJournalLines enforces the posting rules for a journal about to be posted.
// Report aggregation is deliberately more lenient and never calls this.
func ValidateJournalLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return apperrors.NewValidationError("journal must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, line := range lines {
		if _, ok := line.LinkedAccountID(); !ok {
			return apperrors.NewValidationError(fmt.Sprintf("line %d has no account", i+1))
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return apperrors.NewValidationError(fmt.Sprintf("line %d has a negative amount", i+1))
		}
		if !line.HasSingleSide() {
			return apperrors.NewValidationError(fmt.Sprintf("line %d must have exactly one of debit or credit", i+1))
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.Equal(credits) {
		return apperrors.NewValidationError(fmt.Sprintf("journal does not balance: debits %s, credits %s",
			debits.StringFixed(AmountPlaces), credits.StringFixed(AmountPlaces)))
	}
	return nil
}
