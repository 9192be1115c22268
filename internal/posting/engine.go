// Package posting implements the double-entry posting validation engine:
// given a proposed list of ledger entries, it checks structure, per-currency
// balance, account classification, FX conventions, and registered business
// rules, and reports every finding in a single pass.
package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/postguard-dev/postguard/internal/model"
)

// Default tolerances. The general balance check is intentionally looser
// than the FX compliance check; the two tiers are reported separately.
var (
	DefaultBalanceTolerance = decimal.NewFromFloat(0.01)
	DefaultFXTolerance      = decimal.NewFromFloat(0.001)
)

// Options configures an Engine.
type Options struct {
	BalanceTolerance decimal.Decimal // zero value means DefaultBalanceTolerance
	FXTolerance      decimal.Decimal // zero value means DefaultFXTolerance
	FXEquityPrefix   string          // empty means FXEquityPrefix
	SkipDefaultRules bool
}

// Engine validates proposed posting entries. Engines hold no per-call
// state; the only mutable state is the rule registry. Construct one engine
// per rule configuration and share it freely across goroutines.
type Engine struct {
	balanceTolerance decimal.Decimal
	fxTolerance      decimal.Decimal
	fxEquityPrefix   string
	rules            *Registry
	now              func() time.Time
}

// New creates an Engine with the default rules registered.
func New() *Engine {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an Engine from explicit options.
func NewWithOptions(opts Options) *Engine {
	e := &Engine{
		balanceTolerance: opts.BalanceTolerance,
		fxTolerance:      opts.FXTolerance,
		fxEquityPrefix:   opts.FXEquityPrefix,
		rules:            NewRegistry(),
		now:              time.Now,
	}
	if e.balanceTolerance.IsZero() {
		e.balanceTolerance = DefaultBalanceTolerance
	}
	if e.fxTolerance.IsZero() {
		e.fxTolerance = DefaultFXTolerance
	}
	if e.fxEquityPrefix == "" {
		e.fxEquityPrefix = FXEquityPrefix
	}
	if !opts.SkipDefaultRules {
		e.RegisterRules(DefaultRules())
	}
	return e
}

// RegisterRule adds or replaces a rule; it takes effect on the next
// Validate call.
func (e *Engine) RegisterRule(rule model.Rule) {
	e.rules.Register(rule)
}

// RegisterRules registers rules in order.
func (e *Engine) RegisterRules(rules []model.Rule) {
	for _, rule := range rules {
		e.rules.Register(rule)
	}
}

// Rules exposes the engine's registry.
func (e *Engine) Rules() *Registry {
	return e.rules
}

// Validate runs every check over the entries and aggregates all findings.
// All checks run even when an earlier one fails, so callers get the full
// picture in one pass. Validation failures are data, never a Go error;
// an internal fault surfaces as a single system_error issue.
func (e *Engine) Validate(ctx context.Context, entries []model.Entry) (result model.Result) {
	defer func() {
		if p := recover(); p != nil {
			result = model.Result{
				Valid: false,
				Errors: []model.Issue{{
					Kind:       model.KindSystemError,
					Message:    fmt.Sprintf("validation engine error: %v", p),
					EntryIndex: -1,
				}},
				Summary: model.Summary{
					EntryCount:  len(entries),
					ValidatedAt: e.now(),
				},
			}
		}
	}()

	var errors, warnings []model.Issue

	errors = append(errors, validateStructure(entries)...)
	errors = append(errors, validateBalance(entries, e.balanceTolerance)...)
	errors = append(errors, validateAccountCodes(entries)...)

	fxErrors, fxWarnings := validateFX(entries, e.fxTolerance, e.fxEquityPrefix)
	errors = append(errors, fxErrors...)
	warnings = append(warnings, fxWarnings...)

	ruleErrors, ruleWarnings := runRules(ctx, e.rules.All(), entries)
	errors = append(errors, ruleErrors...)
	warnings = append(warnings, ruleWarnings...)

	return model.Result{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
		Summary: model.Summary{
			TotalDebits:  totalDebits(entries),
			TotalCredits: totalCredits(entries),
			EntryCount:   len(entries),
			ValidatedAt:  e.now(),
		},
	}
}

// totalDebits sums positive amounts on debit-normal entries. Informational
// only; validity never depends on it.
func totalDebits(entries []model.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.AccountType.DebitNormal() && e.Amount.IsPositive() {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// totalCredits sums positive amounts on credit-normal entries.
func totalCredits(entries []model.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.AccountType.Known() && !e.AccountType.DebitNormal() && e.Amount.IsPositive() {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}
