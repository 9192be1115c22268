package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// IssueKind identifies the class of a validation finding.
type IssueKind string

const (
	KindInsufficientEntries      IssueKind = "insufficient_entries"
	KindZeroAmount               IssueKind = "zero_amount"
	KindEmptyAccountCode         IssueKind = "empty_account_code"
	KindInvalidAccountCodeFormat IssueKind = "invalid_account_code_format"
	KindAccountTypeMismatch      IssueKind = "account_type_mismatch"
	KindUnbalancedCommodity      IssueKind = "unbalanced_commodity"
	KindFXInvariantViolation     IssueKind = "fx_invariant_violation"
	KindMissingEquityConversion  IssueKind = "missing_equity_conversion"
	KindBusinessRuleViolation    IssueKind = "business_rule_violation"
	KindRuleExecutionFailure     IssueKind = "rule_execution_failure"
	KindSystemError              IssueKind = "system_error"
)

// Issue describes a single validation finding. EntryIndex is zero-based
// and -1 when the finding applies to the transaction as a whole.
type Issue struct {
	Kind       IssueKind
	Message    string
	EntryIndex int
}

func (i Issue) Error() string {
	if i.EntryIndex >= 0 {
		return fmt.Sprintf("%s [entry %d]: %s", i.Kind, i.EntryIndex+1, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Summary carries informational totals computed during validation. The
// totals never influence validity; they exist for caller reporting.
type Summary struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	EntryCount   int
	ValidatedAt  time.Time
}

// Result is the aggregate outcome of one validation pass.
// Invariant: Valid == (len(Errors) == 0). Warnings never block posting.
type Result struct {
	Valid    bool
	Errors   []Issue
	Warnings []Issue
	Summary  Summary
}

// HasKind reports whether any error or warning carries the given kind.
func (r Result) HasKind(kind IssueKind) bool {
	for _, i := range r.Errors {
		if i.Kind == kind {
			return true
		}
	}
	for _, i := range r.Warnings {
		if i.Kind == kind {
			return true
		}
	}
	return false
}
