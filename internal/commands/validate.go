package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/postguard-dev/postguard/internal/accounts"
	"github.com/postguard-dev/postguard/internal/auditlog"
	"github.com/postguard-dev/postguard/internal/config"
	"github.com/postguard-dev/postguard/internal/journal"
	"github.com/postguard-dev/postguard/internal/model"
	"github.com/postguard-dev/postguard/internal/posting"
)

func newValidateCommand() *cobra.Command {
	var configPath string
	var chartRoot string
	var logRoot string

	cmd := &cobra.Command{
		Use:   "validate <postings.csv>",
		Short: "Validate proposed posting entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening postings file: %w", err)
			}
			defer f.Close()

			entries, err := journal.ReadEntries(f)
			if err != nil {
				return fmt.Errorf("reading postings file: %w", err)
			}

			var chart *accounts.Service
			if chartRoot != "" {
				chart, err = accounts.Load(chartRoot)
				if err != nil {
					return err
				}
			}

			engine := EngineFromConfig(cfg)
			result := engine.Validate(cmd.Context(), entries)

			printResult(cmd, result, entries, chart)

			if logRoot != "" {
				logEntry := auditlog.Entry{
					Timestamp:  time.Now(),
					Source:     args[0],
					EntryCount: result.Summary.EntryCount,
					Valid:      result.Valid,
					Errors:     len(result.Errors),
					Warnings:   len(result.Warnings),
				}
				if err := auditlog.Append(logRoot, []auditlog.Entry{logEntry}); err != nil {
					return err
				}
			}

			if !result.Valid {
				return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "postguard.yaml", "path to postguard.yaml")
	cmd.Flags().StringVar(&chartRoot, "chart", "", "project root containing accounts/chart-of-accounts.csv")
	cmd.Flags().StringVar(&logRoot, "log", "", "project root to append logs/validation-log.csv under")

	return cmd
}

// loadConfig reads the config file, falling back to defaults when the
// default path does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// EngineFromConfig builds a validation engine from a loaded config.
func EngineFromConfig(cfg *config.Config) *posting.Engine {
	engine := posting.NewWithOptions(posting.Options{
		BalanceTolerance: decimal.NewFromFloat(cfg.Tolerances.Balance),
		FXTolerance:      decimal.NewFromFloat(cfg.Tolerances.FX),
		FXEquityPrefix:   cfg.FX.EquityPrefix,
	})
	if cfg.Rules.RevenueCycle {
		engine.RegisterRules(posting.RevenueCycleRules())
	}
	for _, id := range cfg.Rules.Disabled {
		engine.Rules().SetActive(id, false)
	}
	return engine
}

func printResult(cmd *cobra.Command, result model.Result, entries []model.Entry, chart *accounts.Service) {
	out := cmd.OutOrStdout()

	for _, issue := range result.Errors {
		fmt.Fprintf(out, "error: %s\n", issue.Error())
		printIssueAccount(cmd, issue, entries, chart)
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", issue.Error())
		printIssueAccount(cmd, issue, entries, chart)
	}

	status := "VALID"
	if !result.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(out, "%s: %d entries, debits %s, credits %s, %d error(s), %d warning(s)\n",
		status,
		result.Summary.EntryCount,
		result.Summary.TotalDebits.StringFixed(2),
		result.Summary.TotalCredits.StringFixed(2),
		len(result.Errors),
		len(result.Warnings))
}

// printIssueAccount names the chart account behind an entry-level issue.
func printIssueAccount(cmd *cobra.Command, issue model.Issue, entries []model.Entry, chart *accounts.Service) {
	if chart == nil || issue.EntryIndex < 0 || issue.EntryIndex >= len(entries) {
		return
	}
	if acct, ok := chart.Get(entries[issue.EntryIndex].AccountCode); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "  account %s: %s\n", acct.Code, acct.Name)
	}
}
