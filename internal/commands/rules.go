package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered posting rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			engine := EngineFromConfig(cfg)
			out := cmd.OutOrStdout()
			for _, rule := range engine.Rules().All() {
				state := "active"
				if !rule.Active {
					state = "disabled"
				}
				fmt.Fprintf(out, "%-32s %-7s %-8s %s\n", rule.ID, rule.Severity, state, rule.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "postguard.yaml", "path to postguard.yaml")

	return cmd
}
