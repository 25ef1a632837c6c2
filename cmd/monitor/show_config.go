package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/devops-monitor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		experimental, _ := cmd.Flags().GetBool("experimental")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var v interface{} = cfg
		if experimental {
			exp := config.DefaultExperimentalConfig().Apply(cfg)
			if err := exp.Validate(); err != nil {
				return err
			}
			v = exp
		}

		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configCmd.Flags().Bool("experimental", false, "Show the predictive monitor settings")
	rootCmd.AddCommand(configCmd)
}
