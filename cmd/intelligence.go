package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/pkg/narrative"
)

var (
	intelVendor    string
	intelNarrative bool
)

var intelligenceCmd = &cobra.Command{
	Use:   "intelligence <customer>",
	Short: "Build vendor-contextualized intelligence about a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		intel, err := env.Orchestrator.GetCustomerIntelligence(cmd.Context(), args[0], intelVendor)
		if err != nil {
			return err
		}

		if err := printJSON(intel); err != nil {
			return err
		}

		if intelNarrative {
			gen := narrative.NewGenerator(cfg.Anthropic.Key, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
			brief, err := gen.Generate(cmd.Context(), intel)
			if err != nil {
				// The collected data already printed; a missing narrative
				// is not worth failing the command.
				zap.L().Warn("narrative generation failed", zap.Error(err))
				return nil
			}
			fmt.Println("\n--- briefing ---")
			fmt.Println(brief)
		}

		return nil
	},
}

func init() {
	intelligenceCmd.Flags().StringVar(&intelVendor, "vendor", "", "vendor company name for contextualization")
	intelligenceCmd.Flags().BoolVar(&intelNarrative, "narrative", false, "generate a prose briefing from the collected data")
	rootCmd.AddCommand(intelligenceCmd)
}
