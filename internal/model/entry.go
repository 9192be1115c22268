package model

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when an entry omits its currency.
const DefaultCurrency = "USD"

// Entry is a single proposed debit or credit line within a transaction.
// Amounts are signed decimals; the debit/credit reading of a positive
// amount follows the account type's normal balance (see Contribution).
type Entry struct {
	AccountCode string
	AccountType AccountType
	Amount      decimal.Decimal
	Currency    string // ISO-4217 style; empty means DefaultCurrency
	Description string
	Reference   string
	Metadata    map[string]string
}

// Commodity returns the currency the entry balances in, defaulting to USD.
func (e Entry) Commodity() string {
	if e.Currency == "" {
		return DefaultCurrency
	}
	return e.Currency
}

// Contribution returns the entry's signed contribution to the per-currency
// balance sum: the raw amount for debit-normal types, the negated amount
// for credit-normal types. A balanced transaction sums to zero per currency.
func (e Entry) Contribution() decimal.Decimal {
	if e.AccountType.DebitNormal() {
		return e.Amount
	}
	return e.Amount.Neg()
}
