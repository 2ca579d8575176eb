package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

var (
	planConsumer string
	planMaxCost  float64
	planSources  []string
)

var planCmd = &cobra.Command{
	Use:   "plan <company>",
	Short: "Build a collection plan without executing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		plan, err := env.Orchestrator.CreateCollectionPlan(
			args[0],
			model.ConsumerType(planConsumer),
			planMaxCost,
			toSourceTypes(planSources),
		)
		if err != nil {
			return err
		}

		return printJSON(plan)
	},
}

func init() {
	planCmd.Flags().StringVar(&planConsumer, "consumer", string(model.ConsumerProfile), "consumer type (profile, vendor_context, customer_intelligence, research, test)")
	planCmd.Flags().Float64Var(&planMaxCost, "max-cost", 0, "cost ceiling in USD (0 = consumer default)")
	planCmd.Flags().StringSliceVar(&planSources, "sources", nil, "explicit source list, overriding consumer defaults")
	rootCmd.AddCommand(planCmd)
}

func toSourceTypes(names []string) []model.SourceType {
	if len(names) == 0 {
		return nil
	}
	out := make([]model.SourceType, len(names))
	for i, n := range names {
		out[i] = model.SourceType(n)
	}
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
