package posting

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/postguard-dev/postguard/internal/model"
)

// Default rule IDs, registered by New().
const (
	RulePaymentFulfillment = "payment-fulfillment-balance"
	RuleAssetDebitBalance  = "asset-account-validation"
)

// DefaultRules returns the rules every engine starts with.
func DefaultRules() []model.Rule {
	return []model.Rule{
		paymentFulfillmentRule(),
		assetDebitBalanceRule(),
	}
}

// paymentFulfillmentRule checks that when cash and revenue accounts move
// together, the cash received matches the revenue recognized or deferred.
func paymentFulfillmentRule() model.Rule {
	return model.Rule{
		ID:          RulePaymentFulfillment,
		Name:        "Payment Fulfillment Balance",
		Description: "Payment received must equal revenue recognized or deferred",
		Severity:    model.SeverityError,
		Active:      true,
		Priority:    10,
		Validate: func(_ context.Context, entries []model.Entry) (model.RuleOutcome, error) {
			type side struct {
				cash, revenue         decimal.Decimal
				cashSeen, revenueSeen bool
			}
			byCurrency := make(map[string]*side)
			sideFor := func(currency string) *side {
				s, ok := byCurrency[currency]
				if !ok {
					s = &side{}
					byCurrency[currency] = s
				}
				return s
			}

			for _, e := range entries {
				s := sideFor(e.Commodity())
				switch {
				case e.AccountType == model.AccountTypeAsset && strings.HasPrefix(e.AccountCode, CashPrefix):
					s.cashSeen = true
					if e.Amount.IsPositive() {
						s.cash = s.cash.Add(e.Amount)
					}
				case e.AccountType == model.AccountTypeRevenue,
					e.AccountType == model.AccountTypeLiability && strings.HasPrefix(e.AccountCode, DeferredRevenuePrefix):
					s.revenueSeen = true
					if e.Amount.IsPositive() {
						s.revenue = s.revenue.Add(e.Amount)
					}
				}
			}

			tolerance := decimal.NewFromFloat(0.01)
			for _, s := range byCurrency {
				// Only a payment transaction when both sides move together.
				if !s.cashSeen || !s.revenueSeen {
					continue
				}
				if s.cash.Sub(s.revenue).Abs().GreaterThan(tolerance) {
					return model.Fail("payment amount (" + s.cash.StringFixed(2) +
						") must equal revenue recognized/deferred (" + s.revenue.StringFixed(2) + ")"), nil
				}
			}
			return model.Pass(), nil
		},
	}
}

// assetDebitBalanceRule warns when asset entries carry negative amounts,
// since asset accounts normally hold debit balances.
func assetDebitBalanceRule() model.Rule {
	return model.Rule{
		ID:          RuleAssetDebitBalance,
		Name:        "Asset Account Validation",
		Description: "Asset accounts should typically carry debit balances",
		Severity:    model.SeverityWarning,
		Active:      true,
		Priority:    20,
		Validate: func(_ context.Context, entries []model.Entry) (model.RuleOutcome, error) {
			for _, e := range entries {
				if e.AccountType == model.AccountTypeAsset && e.Amount.IsNegative() {
					return model.Fail("asset accounts should typically have debit balances"), nil
				}
			}
			return model.Pass(), nil
		},
	}
}
