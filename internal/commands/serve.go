package commands

import (
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transactions/internal/api"
	"github.com/insightdelivered/statement-transactions/internal/buildinfo"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pl, err := newPipeline(cfg, logger)
			if err != nil {
				return err
			}

			app := api.NewApp(&api.Handler{
				Pipeline:      pl,
				Logger:        logger,
				IncludeHeader: cfg.Header,
				Version:       buildinfo.Version,
			})

			logger.Info("listening", "addr", cfg.Addr)
			return app.Listen(cfg.Addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().Bool("header", false, "Include run metadata rows in generated CSV")

	return cmd
}
