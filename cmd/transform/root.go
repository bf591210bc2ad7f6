package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/infrastructure"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts"
)

// rootOptions are the persistent flags
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "funding",
		Short:        "Clean and summarize startup funding data",
		Version:      contracts.Version,
		SilenceUsage: true,
	}
	cmd.SetVersionTemplate(contracts.GetFullVersionString() + "\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newTransformCmd(opts),
		newSummaryCmd(opts),
		newVocabCmd(),
		newServeCmd(opts),
	)

	return cmd
}

// setup loads configuration, lets override apply flag values and
// initializes the logger
func (o *rootOptions) setup(override func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

// storageFlags override the storage section
type storageFlags struct {
	driver string
	dsn    string
}

func (f *storageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "storage-driver", "", "persist runs with this driver (sqlite, postgres)")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "storage data source name")
}

func (f *storageFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("storage-driver") {
		cfg.Storage.Driver = f.driver
	}
	if cmd.Flags().Changed("dsn") {
		cfg.Storage.DSN = f.dsn
	}
}
