package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transactions/internal/buildinfo"
	"github.com/insightdelivered/statement-transactions/internal/config"
	"github.com/insightdelivered/statement-transactions/internal/extractor"
	"github.com/insightdelivered/statement-transactions/internal/parser"
	"github.com/insightdelivered/statement-transactions/internal/pipeline"
)

const appName = "statement-transactions"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Reconstruct transactions from PDF card statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every segmentation decision")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// loadConfig builds the config from the command's flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Build(cfgFile, cmd.Flags())
}

func newLogger(cmd *cobra.Command, cfg *config.Config, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
		Level:           level,
	}), nil
}

// newPipeline wires the PDF extractor and parser configured by cfg.
func newPipeline(cfg *config.Config, logger *log.Logger) (*pipeline.Pipeline, error) {
	p, err := parser.New(cfg.ParserOptions())
	if err != nil {
		return nil, err
	}
	return pipeline.New(extractor.NewPDFExtractor(logger), p, logger, cfg.Extension), nil
}
