package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <company>",
	Short: "Report cached-data freshness for a company without spending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		return printJSON(env.Orchestrator.GetRawDataStatus(cmd.Context(), args[0]))
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check cache connectivity and per-source circuit state",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		return printJSON(env.Orchestrator.CheckHealth(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(healthCmd)
}
