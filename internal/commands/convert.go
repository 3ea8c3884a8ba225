package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transactions/internal/pipeline"
	"github.com/insightdelivered/statement-transactions/internal/writer"
)

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input-dir> [output-file]",
		Short: "Convert every statement in a directory into one CSV",
		Long: `Reads every statement PDF in <input-dir>, reconstructs its transactions and
writes them, sorted by date, to [output-file] inside <input-dir>
(default transactions.csv).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 2 {
				cfg.Output = args[1]
			}

			logger, err := newLogger(cmd, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pl, err := newPipeline(cfg, logger)
			if err != nil {
				return err
			}

			inputDir := args[0]
			res, err := pl.RunDir(inputDir)
			if err != nil {
				return err
			}

			outPath := filepath.Join(inputDir, filepath.Base(cfg.Output))
			w := &writer.CSVWriter{
				IncludeHeader: cfg.Header,
				Metadata:      writer.Metadata{RunID: res.RunID, Sources: res.Sources},
			}
			if err := w.WriteToFile(outPath, res.Transactions); err != nil {
				return fmt.Errorf("CSV write failed: %w", err)
			}

			printSummary(cmd, res, outPath)
			return nil
		},
	}

	cmd.Flags().Bool("header", false, "Write run metadata rows above the table")
	cmd.Flags().String("extension", "", "Statement file extension (default .pdf)")
	cmd.Flags().String("legal-marker", "", "Text that starts the legal notice at the bottom of a page")

	return cmd
}

func printSummary(cmd *cobra.Command, res *pipeline.Result, outPath string) {
	out := cmd.OutOrStdout()
	s := pipeline.Summarize(res.Transactions)

	fmt.Fprintf(out, "Processed %d file(s), %d page(s)\n", len(res.Sources), res.Pages)
	if len(res.Failures) > 0 {
		fmt.Fprintf(out, "  Skipped %d file(s) that could not be read\n", len(res.Failures))
	}
	fmt.Fprintf(out, "  Found %d transaction(s)\n", s.Count)
	fmt.Fprintf(out, "  Total credits: %s\n", s.TotalCredits.StringFixed(2))
	fmt.Fprintf(out, "  Total debits: %s\n", s.TotalDebits.StringFixed(2))
	if s.Count == 0 {
		fmt.Fprintln(out, "  Warning: No transactions found. The statement layout may not match the expected columns.")
	}
	fmt.Fprintf(out, "  Output: %s\n", outPath)
}
