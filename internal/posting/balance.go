package posting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/postguard-dev/postguard/internal/model"
)

// FXEquityPrefix is the conventional account code prefix for equity
// conversion accounts in multi-currency transactions.
const FXEquityPrefix = "3200"

// groupByCommodity buckets entries by currency, preserving first-seen
// currency order so issue ordering stays deterministic.
func groupByCommodity(entries []model.Entry) ([]string, map[string][]model.Entry) {
	groups := make(map[string][]model.Entry)
	var order []string
	for _, entry := range entries {
		c := entry.Commodity()
		if _, seen := groups[c]; !seen {
			order = append(order, c)
		}
		groups[c] = append(groups[c], entry)
	}
	return order, groups
}

// validateBalance enforces the core double-entry invariant: within each
// currency, the signed contributions must sum to zero within tolerance.
// Currencies are checked independently; a multi-currency transaction is
// never required to balance across currencies.
func validateBalance(entries []model.Entry, tolerance decimal.Decimal) []model.Issue {
	var issues []model.Issue

	order, groups := groupByCommodity(entries)
	for _, currency := range order {
		sum := decimal.Zero
		for _, entry := range groups[currency] {
			sum = sum.Add(entry.Contribution())
		}
		if sum.Abs().GreaterThan(tolerance) {
			issues = append(issues, model.Issue{
				Kind: model.KindUnbalancedCommodity,
				Message: fmt.Sprintf("double-entry violation for %s: debits and credits do not balance (difference: %s)",
					currency, sum.StringFixed(2)),
				EntryIndex: -1,
			})
		}
	}

	return issues
}

// validateFX runs the stricter per-commodity balance pass and the equity
// conversion heuristic. The strict pass intentionally overlaps with
// validateBalance at a tighter tolerance; the two tiers are reported under
// distinct kinds so callers can tell general imbalance from FX
// non-compliance.
func validateFX(entries []model.Entry, tolerance decimal.Decimal, equityPrefix string) (errors, warnings []model.Issue) {
	order, groups := groupByCommodity(entries)

	for _, currency := range order {
		sum := decimal.Zero
		for _, entry := range groups[currency] {
			sum = sum.Add(entry.Contribution())
		}
		if sum.Abs().GreaterThan(tolerance) {
			errors = append(errors, model.Issue{
				Kind: model.KindFXInvariantViolation,
				Message: fmt.Sprintf("FX invariant violation: %s amounts do not sum to zero (difference: %s)",
					currency, sum.StringFixed(4)),
				EntryIndex: -1,
			})
		}
	}

	if len(order) > 1 && !hasEquityConversion(entries, equityPrefix) {
		warnings = append(warnings, model.Issue{
			Kind:       model.KindMissingEquityConversion,
			Message:    "multi-currency transaction without equity conversion entry; consider adding one",
			EntryIndex: -1,
		})
	}

	return errors, warnings
}

// hasEquityConversion reports whether any entry looks like an FX equity
// conversion: an equity entry under the conversion code prefix, or one
// whose description mentions conversion, forex, or exchange.
func hasEquityConversion(entries []model.Entry, equityPrefix string) bool {
	for _, entry := range entries {
		if entry.AccountType != model.AccountTypeEquity {
			continue
		}
		if strings.HasPrefix(entry.AccountCode, equityPrefix) {
			return true
		}
		desc := strings.ToLower(entry.Description)
		if strings.Contains(desc, "conversion") ||
			strings.Contains(desc, "forex") ||
			strings.Contains(desc, "exchange") {
			return true
		}
	}
	return false
}
