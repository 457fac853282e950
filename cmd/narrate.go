package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/narrative"
	"github.com/gridline-analytics/sitecast/pkg/anthropic"
)

var narrateProject string

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Generate a variance narrative for a project",
	Long:  "Builds a per-project variance narrative from the EVM timeseries and Monte Carlo summary and appends it to the narrative log. With an Anthropic key configured, the summary text is composed by the model; otherwise the rule-based text is used.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st := processedStore()
		evmRows, err := st.ReadEVMTimeseries()
		if err != nil {
			return err
		}
		summaries, err := st.ReadSummary()
		if err != nil {
			return err
		}

		var client anthropic.Client
		if cfg.Anthropic.Key != "" {
			client = anthropic.NewClient(cfg.Anthropic.Key, anthropic.WithRateLimit(cfg.Anthropic.RPS))
		} else {
			zap.L().Info("narrate: no API key configured, using rule-based narrative")
		}
		gen := narrative.NewGenerator(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)

		n, costEntry, err := gen.Generate(cmd.Context(), narrateProject, evmRows, summaries)
		if err != nil {
			return err
		}

		if err := narrative.AppendJSONL(st.Path(narrative.NarrativesFile), n); err != nil {
			return err
		}
		if err := narrative.AppendCostLog(st.Path(narrative.CostLogFile), costEntry); err != nil {
			return err
		}

		zap.L().Info("narrate: narrative appended",
			zap.String("project_id", narrateProject),
			zap.String("source", costEntry.Source),
			zap.String("out", st.Path(narrative.NarrativesFile)),
		)
		return nil
	},
}

func init() {
	narrateCmd.Flags().StringVar(&narrateProject, "project", "", "project ID (required)")
	_ = narrateCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(narrateCmd)
}
