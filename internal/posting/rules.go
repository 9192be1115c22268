package posting

import (
	"context"
	"fmt"
	"sync"

	"github.com/postguard-dev/postguard/internal/model"
)

// Registry is an ordered, name-keyed collection of posting rules. Rules
// are evaluated in registration order; registering a rule with an existing
// ID replaces it in place without changing its position. Reads and writes
// are guarded so rules can be registered while validations are in flight,
// though the expected lifecycle is register-at-startup, read-mostly after.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]model.Rule)}
}

// Register adds a rule, or replaces the existing rule with the same ID.
func (r *Registry) Register(rule model.Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rule.ID]; !exists {
		r.order = append(r.order, rule.ID)
	}
	r.byID[rule.ID] = rule
}

// Get returns a rule by ID.
func (r *Registry) Get(id string) (model.Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// SetActive toggles a rule without removing it. Returns false if the rule
// is not registered.
func (r *Registry) SetActive(id string, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.byID[id]
	if !ok {
		return false
	}
	rule.Active = active
	r.byID[id] = rule
	return true
}

// All returns the registered rules in registration order.
func (r *Registry) All() []model.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]model.Rule, 0, len(r.order))
	for _, id := range r.order {
		rules = append(rules, r.byID[id])
	}
	return rules
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// runRules evaluates active rules sequentially in registration order. A
// rule that fails routes to errors or warnings per its severity. A rule
// that returns an error or panics becomes an error issue naming the rule;
// one broken rule never aborts the rest.
func runRules(ctx context.Context, rules []model.Rule, entries []model.Entry) (errors, warnings []model.Issue) {
	for _, rule := range rules {
		if !rule.Active {
			continue
		}

		outcome, err := evalRule(ctx, rule, entries)
		if err != nil {
			errors = append(errors, model.Issue{
				Kind:       model.KindRuleExecutionFailure,
				Message:    fmt.Sprintf("rule %q validation failed: %v", rule.Name, err),
				EntryIndex: -1,
			})
			continue
		}
		if outcome.Valid {
			continue
		}

		issue := model.Issue{
			Kind:       model.KindBusinessRuleViolation,
			Message:    fmt.Sprintf("rule %q: %s", rule.Name, outcome.Message),
			EntryIndex: -1,
		}
		if rule.Severity == model.SeverityWarning {
			warnings = append(warnings, issue)
		} else {
			errors = append(errors, issue)
		}
	}
	return errors, warnings
}

// evalRule invokes a single rule's validator, converting panics to errors.
func evalRule(ctx context.Context, rule model.Rule, entries []model.Entry) (outcome model.RuleOutcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	if rule.Validate == nil {
		return model.RuleOutcome{}, fmt.Errorf("rule has no validator")
	}
	return rule.Validate(ctx, entries)
}
