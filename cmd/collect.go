package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

var (
	collectConsumer string
	collectMaxCost  float64
	collectSources  []string
)

var collectCmd = &cobra.Command{
	Use:   "collect <company>",
	Short: "Plan and execute a collection run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		data, err := env.Orchestrator.GetMultiSourceData(
			cmd.Context(),
			args[0],
			model.ConsumerType(collectConsumer),
			collectMaxCost,
			toSourceTypes(collectSources),
		)
		if err != nil {
			return err
		}

		return printJSON(data)
	},
}

func init() {
	collectCmd.Flags().StringVar(&collectConsumer, "consumer", string(model.ConsumerProfile), "consumer type")
	collectCmd.Flags().Float64Var(&collectMaxCost, "max-cost", 0, "cost ceiling in USD (0 = consumer default)")
	collectCmd.Flags().StringSliceVar(&collectSources, "sources", nil, "explicit source list, overriding consumer defaults")
	rootCmd.AddCommand(collectCmd)
}
