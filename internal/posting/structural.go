package posting

import (
	"fmt"
	"strings"

	"github.com/postguard-dev/postguard/internal/model"
)

// validateStructure checks the basic shape of the entry list: at least two
// entries, non-blank account codes, non-zero amounts, known account types.
func validateStructure(entries []model.Entry) []model.Issue {
	var issues []model.Issue

	if len(entries) < 2 {
		issues = append(issues, model.Issue{
			Kind:       model.KindInsufficientEntries,
			Message:    fmt.Sprintf("double-entry requires at least 2 posting entries, got %d", len(entries)),
			EntryIndex: -1,
		})
	}

	for i, entry := range entries {
		if strings.TrimSpace(entry.AccountCode) == "" {
			issues = append(issues, model.Issue{
				Kind:       model.KindEmptyAccountCode,
				Message:    "account code is required",
				EntryIndex: i,
			})
		}

		if entry.Amount.IsZero() {
			issues = append(issues, model.Issue{
				Kind:       model.KindZeroAmount,
				Message:    "amount cannot be zero",
				EntryIndex: i,
			})
		}

		if !entry.AccountType.Known() {
			issues = append(issues, model.Issue{
				Kind:       model.KindAccountTypeMismatch,
				Message:    fmt.Sprintf("invalid account type %q", entry.AccountType),
				EntryIndex: i,
			})
		}
	}

	return issues
}
