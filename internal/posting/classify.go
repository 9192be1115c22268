package posting

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/postguard-dev/postguard/internal/model"
)

// Account codes are 3-4 digits with a nonzero leading digit, matching the
// standard chart-of-accounts numbering.
var accountCodePattern = regexp.MustCompile(`^[1-9]\d{2,3}$`)

// ClassifyCode derives the expected account type from a code's numeric
// range. Codes outside the five conventional ranges return false: they are
// treated as unclassified extension codes, not errors.
func ClassifyCode(code string) (model.AccountType, bool) {
	n, err := strconv.Atoi(code)
	if err != nil {
		return "", false
	}
	switch {
	case n >= 1000 && n <= 1999:
		return model.AccountTypeAsset, true
	case n >= 2000 && n <= 2999:
		return model.AccountTypeLiability, true
	case n >= 3000 && n <= 3999:
		return model.AccountTypeEquity, true
	case n >= 4000 && n <= 4999:
		return model.AccountTypeRevenue, true
	case n >= 5000 && n <= 5999:
		return model.AccountTypeExpense, true
	}
	return "", false
}

// validateAccountCodes enforces the code format and checks that each
// entry's declared type agrees with its code range.
func validateAccountCodes(entries []model.Entry) []model.Issue {
	var issues []model.Issue

	for i, entry := range entries {
		if !accountCodePattern.MatchString(entry.AccountCode) {
			issues = append(issues, model.Issue{
				Kind:       model.KindInvalidAccountCodeFormat,
				Message:    fmt.Sprintf("account code %q should be 3-4 digits starting with 1-9", entry.AccountCode),
				EntryIndex: i,
			})
			continue
		}

		expected, ok := ClassifyCode(entry.AccountCode)
		if !ok {
			continue // unclassified extension code
		}
		if expected != entry.AccountType {
			issues = append(issues, model.Issue{
				Kind: model.KindAccountTypeMismatch,
				Message: fmt.Sprintf("account %s should be type %q but got %q",
					entry.AccountCode, expected, entry.AccountType),
				EntryIndex: i,
			})
		}
	}

	return issues
}
