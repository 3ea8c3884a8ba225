package parser

import (
	"sort"

	"github.com/insightdelivered/statement-transactions/internal/models"
)

// Parser reconstructs transactions from the page text of a statement.
type Parser struct {
	filter *NoiseFilter
}

// Options configures the noise filter used by a Parser.
type Options struct {
	LegalMarker     string
	ExcludePatterns []string
}

// DefaultOptions returns the marker and exclusion list for card statements.
func DefaultOptions() Options {
	patterns := make([]string, len(DefaultExcludePatterns))
	copy(patterns, DefaultExcludePatterns)
	return Options{
		LegalMarker:     DefaultLegalMarker,
		ExcludePatterns: patterns,
	}
}

// New builds a Parser from opts.
func New(opts Options) (*Parser, error) {
	filter, err := NewNoiseFilter(opts.LegalMarker, opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	return &Parser{filter: filter}, nil
}

// Parse segments every page independently, in page order. Pages never share
// an open transaction.
func (p *Parser) Parse(pages []string) *models.Statement {
	st := &models.Statement{Pages: len(pages)}
	for i, page := range pages {
		seg := newSegmenter(p.filter, i+1, p.filter.Lines(page))
		st.Transactions = append(st.Transactions, seg.run()...)
		st.DebugLines = append(st.DebugLines, seg.debug...)
	}
	return st
}

// Finalize cleans the combined rows of a run: rows whose joined description
// is boilerplate are dropped, stray amount tokens are removed from
// descriptions, whitespace is collapsed and rows are sorted by the raw date
// string. The sort is lexicographic on MM/DD/YYYY, so 01/05/2024 sorts
// before 12/31/2023.
func (p *Parser) Finalize(txns []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txns))
	for _, txn := range txns {
		if p.filter.Excluded(txn.Description) {
			continue
		}
		txn.Description = collapseSpaces(stripAmounts(collapseSpaces(txn.Description)))
		out = append(out, txn)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
