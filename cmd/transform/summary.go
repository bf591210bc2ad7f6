package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/app"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/files"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
)

func newSummaryCmd(root *rootOptions) *cobra.Command {
	var (
		text   bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "summary <input.csv|input.xlsx>",
		Short: "Print the summary report of a funding file without writing files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := files.ValidateInput(args[0]); err != nil {
				return err
			}

			cfg, logger, err := root.setup(func(cfg *config.Config) {
				// nothing is persisted
				cfg.Storage = config.StorageConfig{}
				if cmd.Flags().Changed("strict") {
					cfg.Pipeline.Strict = strict
				}
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := app.NewApplication(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			result, err := a.Services.Transform.TransformFile(ctx, args[0])
			if err != nil {
				return err
			}

			if text {
				return summary.WriteText(cmd.OutOrStdout(), result.Report)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result.Report)
		},
	}

	cmd.Flags().BoolVar(&text, "text", false, "print the plain-text report instead of JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when an expected column is absent")

	return cmd
}
