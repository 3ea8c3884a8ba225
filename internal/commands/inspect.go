package commands

import (
	"fmt"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-transactions/internal/extractor"
	"github.com/insightdelivered/statement-transactions/internal/parser"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <statement.pdf>",
		Short: "Show the extracted pages and how each line was segmented",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := parser.New(cfg.ParserOptions())
			if err != nil {
				return err
			}

			pages, err := extractor.NewPDFExtractor(logger).ExtractPages(args[0])
			if err != nil {
				return fmt.Errorf("PDF extraction failed: %w", err)
			}

			out := cmd.OutOrStdout()
			printer := pp.New()
			printer.SetOutput(out)
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				printer.SetColoringEnabled(false)
			}

			showPages, _ := cmd.Flags().GetBool("pages")
			if showPages {
				for i, page := range pages {
					fmt.Fprintf(out, "--- page %d ---\n%s\n", i+1, page)
				}
			}

			st := p.Parse(pages)
			printer.Println(st.DebugLines)
			printer.Println(p.Finalize(st.Transactions))
			return nil
		},
	}

	cmd.Flags().Bool("pages", false, "Print the raw text of every page first")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}
