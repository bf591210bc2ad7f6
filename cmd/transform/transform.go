package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/app"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/files"
)

type transformFlags struct {
	outputDir  string
	strict     bool
	bom        bool
	records    bool
	breakdowns []string
	storage    storageFlags
}

func newTransformCmd(root *rootOptions) *cobra.Command {
	flags := &transformFlags{}

	cmd := &cobra.Command{
		Use:   "transform <input|dir>...",
		Short: "Clean funding files and write the augmented tables and summaries",
		Long: "Each argument is a CSV or XLSX file, or a directory whose CSV and XLSX\n" +
			"files are transformed in name order. Every input gets its own run.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup(func(cfg *config.Config) {
				flags.apply(cmd, cfg)
			})
			if err != nil {
				return err
			}

			inputs, err := files.FindInputs(args...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := app.NewApplication(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(ctx); err != nil {
					logger.Warn("cleanup failed", slog.String("error", err.Error()))
				}
			}()

			out := cmd.OutOrStdout()
			for _, input := range inputs {
				result, written, err := a.TransformFile(ctx, input.Path)
				if err != nil {
					return fmt.Errorf("%s: %w", input.Name, err)
				}

				fmt.Fprintf(out, "run %s: %s, %d rows\n", result.RunID, input.Name, len(result.Records))
				for _, path := range written {
					fmt.Fprintln(out, path)
				}
				if a.Sink != nil {
					fmt.Fprintf(out, "persisted to %s\n", a.Sink.Driver())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for output files (default from config)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when an expected column is absent")
	cmd.Flags().BoolVar(&flags.bom, "bom", false, "prefix CSV output with a UTF-8 byte order mark")
	cmd.Flags().BoolVar(&flags.records, "records", true, "also write the records as JSON")
	cmd.Flags().StringSliceVar(&flags.breakdowns, "breakdown", nil, "write a per-category breakdown (investment_type, industry, city, year)")
	flags.storage.register(cmd)

	return cmd
}

func (f *transformFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output-dir") {
		cfg.Pipeline.OutputDir = f.outputDir
	}
	if cmd.Flags().Changed("strict") {
		cfg.Pipeline.Strict = f.strict
	}
	if cmd.Flags().Changed("bom") {
		cfg.Pipeline.WriteBOM = f.bom
	}
	if cmd.Flags().Changed("records") {
		cfg.Pipeline.WriteRecords = f.records
	}
	if cmd.Flags().Changed("breakdown") {
		cfg.Pipeline.Breakdowns = f.breakdowns
	}
	f.storage.apply(cmd, cfg)
}
