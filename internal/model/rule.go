package model

import "context"

// Severity controls whether a failed rule blocks posting.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// RuleOutcome is a single rule's verdict over a full entry list.
type RuleOutcome struct {
	Valid   bool
	Message string
}

// Pass is the outcome of a rule that has nothing to say.
func Pass() RuleOutcome {
	return RuleOutcome{Valid: true}
}

// Fail returns a failing outcome with the given message.
func Fail(message string) RuleOutcome {
	return RuleOutcome{Valid: false, Message: message}
}

// RuleFunc evaluates a business rule against the full entry list. Rules
// take a context so implementations may consult external state; the engine
// runs them sequentially in registration order.
type RuleFunc func(ctx context.Context, entries []Entry) (RuleOutcome, error)

// Rule is a named, toggleable unit of posting policy. Rules see the whole
// entry list, so cross-entry checks are possible.
type Rule struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
	Active      bool
	Priority    int // lower = higher priority; informational for now
	Validate    RuleFunc
}
