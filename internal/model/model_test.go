package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAccountType_Known(t *testing.T) {
	for _, at := range AccountTypes {
		assert.True(t, at.Known(), "%s", at)
	}
	assert.False(t, AccountType("bogus").Known())
	assert.False(t, AccountType("").Known())
}

func TestAccountType_DebitNormal(t *testing.T) {
	assert.True(t, AccountTypeAsset.DebitNormal())
	assert.True(t, AccountTypeExpense.DebitNormal())
	assert.False(t, AccountTypeLiability.DebitNormal())
	assert.False(t, AccountTypeEquity.DebitNormal())
	assert.False(t, AccountTypeRevenue.DebitNormal())
}

func TestEntry_Commodity(t *testing.T) {
	assert.Equal(t, "USD", Entry{}.Commodity())
	assert.Equal(t, "EUR", Entry{Currency: "EUR"}.Commodity())
}

func TestEntry_Contribution(t *testing.T) {
	asset := Entry{AccountType: AccountTypeAsset, Amount: dec("100.00")}
	assert.True(t, asset.Contribution().Equal(dec("100.00")))

	revenue := Entry{AccountType: AccountTypeRevenue, Amount: dec("100.00")}
	assert.True(t, revenue.Contribution().Equal(dec("-100.00")))

	negativeLiability := Entry{AccountType: AccountTypeLiability, Amount: dec("-40.00")}
	assert.True(t, negativeLiability.Contribution().Equal(dec("40.00")))
}

func TestIssue_Error(t *testing.T) {
	withIndex := Issue{Kind: KindZeroAmount, Message: "amount cannot be zero", EntryIndex: 0}
	assert.Equal(t, "zero_amount [entry 1]: amount cannot be zero", withIndex.Error())

	wholeTxn := Issue{Kind: KindInsufficientEntries, Message: "need 2", EntryIndex: -1}
	assert.Equal(t, "insufficient_entries: need 2", wholeTxn.Error())
}

func TestResult_HasKind(t *testing.T) {
	res := Result{
		Errors:   []Issue{{Kind: KindUnbalancedCommodity}},
		Warnings: []Issue{{Kind: KindMissingEquityConversion}},
	}
	assert.True(t, res.HasKind(KindUnbalancedCommodity))
	assert.True(t, res.HasKind(KindMissingEquityConversion))
	assert.False(t, res.HasKind(KindZeroAmount))
}

func TestTransaction_Lifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	txn := Transaction{ID: "txn-1", Status: StatusDraft}

	txn.MarkValidated(Result{Valid: true, Summary: Summary{ValidatedAt: now}})
	assert.Equal(t, StatusValidated, txn.Status)
	assert.Equal(t, now, txn.ValidatedAt)

	txn.MarkPosted(now.Add(time.Minute))
	assert.Equal(t, StatusPosted, txn.Status)

	txn.MarkReversed("txn-2")
	assert.Equal(t, StatusReversed, txn.Status)
	assert.Equal(t, "txn-2", txn.ReversedBy)
}

func TestTransaction_FailedValidation(t *testing.T) {
	txn := Transaction{ID: "txn-1", Status: StatusDraft}
	txn.MarkValidated(Result{Valid: false})
	assert.Equal(t, StatusFailed, txn.Status)
	assert.True(t, txn.ValidatedAt.IsZero())
}
