package main

import (
	"github.com/spf13/cobra"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/app"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		port        int
		noRateLimit bool
		storage     storageFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transformation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup(func(cfg *config.Config) {
				if cmd.Flags().Changed("port") {
					cfg.Server.Port = port
				}
				if noRateLimit {
					cfg.Server.RateLimit.Enabled = false
				}
				storage.apply(cmd, cfg)
			})
			if err != nil {
				return err
			}

			a, err := app.NewApplication(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	cmd.Flags().BoolVar(&noRateLimit, "no-rate-limit", false, "disable the request rate limiter")
	storage.register(cmd)

	return cmd
}
