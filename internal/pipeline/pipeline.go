package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/insightdelivered/statement-transactions/internal/extractor"
	"github.com/insightdelivered/statement-transactions/internal/models"
	"github.com/insightdelivered/statement-transactions/internal/parser"
)

// ErrInputDir is returned when the input directory is missing or unreadable.
var ErrInputDir = errors.New("input directory not readable")

// Document is a statement whose pages have already been extracted.
type Document struct {
	Name  string
	Pages []string
}

// FileFailure records an input that was skipped.
type FileFailure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Result is the outcome of one run over a set of statements.
type Result struct {
	RunID        string
	Sources      []string
	Pages        int
	Transactions []models.Transaction
	DebugLines   []models.DebugLine
	Failures     []FileFailure
}

// Pipeline drives the parser over every page of every input file.
type Pipeline struct {
	extractor extractor.Extractor
	parser    *parser.Parser
	logger    *log.Logger
	extension string
}

// New returns a Pipeline reading files with ext (e.g. ".pdf") through ex.
func New(ex extractor.Extractor, p *parser.Parser, logger *log.Logger, ext string) *Pipeline {
	return &Pipeline{
		extractor: ex,
		parser:    p,
		logger:    logger,
		extension: strings.ToLower(ext),
	}
}

// RunDir processes every statement file in dir, in name order. Only a
// missing or unreadable directory is an error; a file that cannot be
// extracted is logged, recorded in Result.Failures and skipped.
func (p *Pipeline) RunDir(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputDir, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != p.extension {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	p.logger.Info("found statement files", "dir", dir, "count", len(paths))

	return p.RunFiles(paths), nil
}

// RunFiles extracts and parses each path in order.
func (p *Pipeline) RunFiles(paths []string) *Result {
	res := newResult()
	for _, path := range paths {
		p.logger.Info("processing file", "file", path)

		pages, err := p.extractor.ExtractPages(path)
		if err != nil {
			p.logger.Warn("failed to process file", "file", path, "error", err)
			res.Failures = append(res.Failures, FileFailure{Path: path, Err: err})
			continue
		}
		p.collect(res, Document{Name: path, Pages: pages})
	}
	return p.finish(res)
}

// RunDocuments parses already extracted documents in order.
func (p *Pipeline) RunDocuments(docs []Document) *Result {
	res := newResult()
	for _, doc := range docs {
		p.collect(res, doc)
	}
	return p.finish(res)
}

func newResult() *Result {
	return &Result{RunID: uuid.NewString()}
}

func (p *Pipeline) collect(res *Result, doc Document) {
	st := p.parser.Parse(doc.Pages)
	st.Source = doc.Name
	p.logger.Info("parsed statement", "file", doc.Name, "pages", st.Pages, "transactions", len(st.Transactions))
	for _, d := range st.DebugLines {
		p.logger.Debug("line", "file", doc.Name, "page", d.Page, "line", d.LineNum, "result", d.Result, "text", d.Text)
	}

	res.Sources = append(res.Sources, st.Source)
	res.Pages += st.Pages
	res.Transactions = append(res.Transactions, st.Transactions...)
	res.DebugLines = append(res.DebugLines, st.DebugLines...)
}

func (p *Pipeline) finish(res *Result) *Result {
	res.Transactions = p.parser.Finalize(res.Transactions)
	if res.Transactions == nil {
		res.Transactions = []models.Transaction{}
	}
	return res
}
