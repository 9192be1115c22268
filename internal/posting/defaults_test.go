package posting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postguard-dev/postguard/internal/model"
)

func TestNew_RegistersDefaultRules(t *testing.T) {
	engine := New()

	_, ok := engine.Rules().Get(RulePaymentFulfillment)
	assert.True(t, ok)
	_, ok = engine.Rules().Get(RuleAssetDebitBalance)
	assert.True(t, ok)
	assert.Equal(t, 2, engine.Rules().Len())
}

func TestNewWithOptions_SkipDefaultRules(t *testing.T) {
	engine := NewWithOptions(Options{SkipDefaultRules: true})
	assert.Equal(t, 0, engine.Rules().Len())
}

func TestPaymentFulfillment_MismatchFails(t *testing.T) {
	rule := paymentFulfillmentRule()
	entries := []model.Entry{
		entry("1100", model.AccountTypeAsset, "100.00", "USD"),
		entry("4000", model.AccountTypeRevenue, "80.00", "USD"),
		entry("2400", model.AccountTypeLiability, "15.00", "USD"),
	}

	outcome, err := rule.Validate(context.Background(), entries)
	require.NoError(t, err)
	assert.False(t, outcome.Valid)
	assert.Contains(t, outcome.Message, "100.00")
	assert.Contains(t, outcome.Message, "95.00")
}

func TestPaymentFulfillment_DeferredRevenueCounts(t *testing.T) {
	rule := paymentFulfillmentRule()
	entries := []model.Entry{
		entry("1100", model.AccountTypeAsset, "100.00", "USD"),
		entry("2400", model.AccountTypeLiability, "100.00", "USD"),
	}

	outcome, err := rule.Validate(context.Background(), entries)
	require.NoError(t, err)
	assert.True(t, outcome.Valid)
}

func TestPaymentFulfillment_NotAPaymentTransaction(t *testing.T) {
	rule := paymentFulfillmentRule()
	entries := []model.Entry{
		entry("5100", model.AccountTypeExpense, "40.00", "USD"),
		entry("2100", model.AccountTypeLiability, "40.00", "USD"),
	}

	outcome, err := rule.Validate(context.Background(), entries)
	require.NoError(t, err)
	assert.True(t, outcome.Valid)
}

func TestPaymentFulfillment_CurrenciesScopedSeparately(t *testing.T) {
	// USD is a matched payment; the EUR legs have no cash side and must
	// not bleed into the USD comparison.
	rule := paymentFulfillmentRule()
	entries := []model.Entry{
		entry("1100", model.AccountTypeAsset, "100.00", "USD"),
		entry("4000", model.AccountTypeRevenue, "100.00", "USD"),
		entry("1200", model.AccountTypeAsset, "85.00", "EUR"),
		entry("4001", model.AccountTypeRevenue, "85.00", "EUR"),
	}

	outcome, err := rule.Validate(context.Background(), entries)
	require.NoError(t, err)
	assert.True(t, outcome.Valid)
}

func TestAssetDebitBalance_NegativeAssetWarns(t *testing.T) {
	rule := assetDebitBalanceRule()
	entries := []model.Entry{
		entry("1100", model.AccountTypeAsset, "-25.00", "USD"),
		entry("4000", model.AccountTypeRevenue, "-25.00", "USD"),
	}

	outcome, err := rule.Validate(context.Background(), entries)
	require.NoError(t, err)
	assert.False(t, outcome.Valid)
	assert.Equal(t, model.SeverityWarning, rule.Severity)
}

func TestAssetDebitBalance_PositiveAssetsPass(t *testing.T) {
	rule := assetDebitBalanceRule()
	entries := []model.Entry{
		entry("1100", model.AccountTypeAsset, "25.00", "USD"),
		entry("4000", model.AccountTypeRevenue, "25.00", "USD"),
	}

	outcome, err := rule.Validate(context.Background(), entries)
	require.NoError(t, err)
	assert.True(t, outcome.Valid)
}
