package posting

import (
	"context"
	"strings"

	"github.com/postguard-dev/postguard/internal/model"
)

// Account code prefixes the revenue-cycle rules key on, following the
// standard chart-of-accounts numbering.
const (
	CashPrefix            = "1100" // cash and bank accounts
	DeferredRevenuePrefix = "2400" // deferred revenue liabilities
	DropoffExpensePrefix  = "6100" // marketing / customer acquisition costs
)

// Revenue-cycle rule IDs.
const (
	RuleFulfillmentObligation = "revenue-fulfillment-obligation"
	RuleCrossBorder           = "revenue-cross-border"
	RuleRevenueTiming         = "revenue-recognition-timing"
	RuleDropoffEvent          = "revenue-dropoff-event"
)

// RevenueCycleRules returns the optional revenue-cycle policy set. They are
// not registered by default; callers opt in via Engine.RegisterRules.
func RevenueCycleRules() []model.Rule {
	return []model.Rule{
		fulfillmentObligationRule(),
		crossBorderRule(),
		revenueTimingRule(),
		dropoffEventRule(),
	}
}

// fulfillmentObligationRule requires deferred-revenue entries to travel
// with a cash or revenue counter-entry.
func fulfillmentObligationRule() model.Rule {
	return model.Rule{
		ID:          RuleFulfillmentObligation,
		Name:        "Fulfillment Obligation",
		Description: "Deferred revenue entries must have corresponding cash or revenue entries",
		Severity:    model.SeverityError,
		Active:      true,
		Priority:    30,
		Validate: func(_ context.Context, entries []model.Entry) (model.RuleOutcome, error) {
			deferred := false
			for _, e := range entries {
				if e.AccountType == model.AccountTypeLiability && strings.HasPrefix(e.AccountCode, DeferredRevenuePrefix) {
					deferred = true
					break
				}
			}
			if !deferred {
				return model.Pass(), nil
			}

			for _, e := range entries {
				if e.AccountType == model.AccountTypeRevenue {
					return model.Pass(), nil
				}
				if e.AccountType == model.AccountTypeAsset && strings.HasPrefix(e.AccountCode, CashPrefix) {
					return model.Pass(), nil
				}
			}
			return model.Fail("fulfillment obligation entries must have corresponding cash or revenue entries"), nil
		},
	}
}

// crossBorderRule requires multi-currency transactions to carry a foreign
// exchange fee expense entry.
func crossBorderRule() model.Rule {
	return model.Rule{
		ID:          RuleCrossBorder,
		Name:        "Cross-Border Transaction",
		Description: "Multi-currency transactions must include foreign exchange fee entries",
		Severity:    model.SeverityError,
		Active:      true,
		Priority:    40,
		Validate: func(_ context.Context, entries []model.Entry) (model.RuleOutcome, error) {
			currencies := make(map[string]bool)
			for _, e := range entries {
				currencies[e.Commodity()] = true
			}
			if len(currencies) < 2 {
				return model.Pass(), nil
			}

			for _, e := range entries {
				if e.AccountType != model.AccountTypeExpense {
					continue
				}
				desc := strings.ToLower(e.Description)
				if strings.Contains(desc, "forex") ||
					strings.Contains(desc, "conversion") ||
					strings.Contains(desc, "exchange") {
					return model.Pass(), nil
				}
			}
			return model.Fail("multi-currency transactions should include foreign exchange fee entries"), nil
		},
	}
}

// revenueTimingRule warns when revenue is recognized without evidence the
// performance obligation was satisfied: either deferred revenue being
// drawn down or a fulfillment expense.
func revenueTimingRule() model.Rule {
	return model.Rule{
		ID:          RuleRevenueTiming,
		Name:        "Revenue Recognition Timing",
		Description: "Recognized revenue should be accompanied by fulfillment evidence",
		Severity:    model.SeverityWarning,
		Active:      true,
		Priority:    50,
		Validate: func(_ context.Context, entries []model.Entry) (model.RuleOutcome, error) {
			recognized := false
			for _, e := range entries {
				if e.AccountType == model.AccountTypeRevenue && e.Amount.IsPositive() {
					recognized = true
					break
				}
			}
			if !recognized {
				return model.Pass(), nil
			}

			for _, e := range entries {
				if e.AccountType == model.AccountTypeLiability &&
					strings.HasPrefix(e.AccountCode, DeferredRevenuePrefix) &&
					e.Amount.IsNegative() {
					return model.Pass(), nil
				}
				if e.AccountType == model.AccountTypeExpense &&
					strings.Contains(strings.ToLower(e.Description), "fulfillment") {
					return model.Pass(), nil
				}
			}
			return model.Fail("revenue recognition should be accompanied by evidence of performance obligation satisfaction"), nil
		},
	}
}

// dropoffEventRule warns when checkout drop-off tracking entries lack the
// description and metadata needed for later analysis.
func dropoffEventRule() model.Rule {
	return model.Rule{
		ID:          RuleDropoffEvent,
		Name:        "Dropoff Event",
		Description: "Drop-off tracking entries need detailed descriptions and stage metadata",
		Severity:    model.SeverityWarning,
		Active:      true,
		Priority:    60,
		Validate: func(_ context.Context, entries []model.Entry) (model.RuleOutcome, error) {
			var dropoffs []model.Entry
			for _, e := range entries {
				if e.AccountType != model.AccountTypeExpense {
					continue
				}
				desc := strings.ToLower(e.Description)
				if strings.HasPrefix(e.AccountCode, DropoffExpensePrefix) ||
					strings.Contains(desc, "dropoff") ||
					strings.Contains(desc, "abandon") {
					dropoffs = append(dropoffs, e)
				}
			}
			if len(dropoffs) == 0 {
				return model.Pass(), nil
			}

			for _, e := range dropoffs {
				if len(e.Description) <= 10 {
					return model.Fail("drop-off event entries should include detailed descriptions and metadata for analysis"), nil
				}
				if e.Metadata["stage"] == "" && e.Metadata["dropoff_type"] == "" {
					return model.Fail("drop-off event entries should include detailed descriptions and metadata for analysis"), nil
				}
			}
			return model.Pass(), nil
		},
	}
}
