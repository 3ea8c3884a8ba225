package api

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-transactions/internal/models"
	"github.com/insightdelivered/statement-transactions/internal/pipeline"
	"github.com/insightdelivered/statement-transactions/internal/writer"
)

// PageBreak separates pages in the extractedText form value.
const PageBreak = "\n---PAGE_BREAK---\n"

// maxUploadBytes bounds a convert request body.
const maxUploadBytes = 32 << 20

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	RequestID    string               `json:"requestId,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	CSV          string               `json:"csv,omitempty"`
	Summary      *pipeline.Summary    `json:"summary,omitempty"`
	Count        int                  `json:"count"`
	Failures     []Failure            `json:"failures,omitempty"`
	DebugLines   []models.DebugLine   `json:"debugLines,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Failure names an uploaded file that could not be read.
type Failure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Handler serves the conversion API.
type Handler struct {
	Pipeline      *pipeline.Pipeline
	Logger        *log.Logger
	IncludeHeader bool
	Version       string
}

// NewApp returns a fiber app with the API routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             maxUploadBytes,
		DisableStartupMessage: true,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Use(cors)
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

func cors(c *fiber.Ctx) error {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type")
	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Next()
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

// HandleConvert accepts either PDF uploads in the "file" field or
// pre-extracted page text in "extractedText", and answers with the
// reconstructed transactions and the CSV table.
func (h *Handler) HandleConvert(c *fiber.Ctx) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("internal server error: %v", rec))
		}
	}()

	var res *pipeline.Result
	names := map[string]string{}

	if text := c.FormValue("extractedText"); strings.TrimSpace(text) != "" {
		res = h.Pipeline.RunDocuments([]pipeline.Document{{Name: "extractedText", Pages: splitPages(text)}})
	} else {
		form, formErr := c.MultipartForm()
		if formErr != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", formErr))
		}
		files := form.File["file"]
		if len(files) == 0 {
			return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
		}

		tmpDir, tmpErr := os.MkdirTemp("", "statements-*")
		if tmpErr != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to create temp dir")
		}
		defer os.RemoveAll(tmpDir)

		var paths []string
		for i, fh := range files {
			if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
				return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("only PDF files are supported: %q", fh.Filename))
			}
			path := filepath.Join(tmpDir, fmt.Sprintf("%03d.pdf", i))
			if saveErr := c.SaveFile(fh, path); saveErr != nil {
				return writeError(c, fiber.StatusInternalServerError, "failed to save uploaded file")
			}
			names[path] = fh.Filename
			paths = append(paths, path)
		}
		res = h.Pipeline.RunFiles(paths)

		if len(res.Failures) == len(paths) {
			resp := ConvertResponse{
				Error:        "no readable text could be extracted from the uploaded files",
				RequestID:    res.RunID,
				Transactions: []models.Transaction{},
				Failures:     failures(res, names),
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
		}
	}

	sources := make([]string, len(res.Sources))
	for i, src := range res.Sources {
		sources[i] = displayName(names, src)
	}

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{
		IncludeHeader: h.IncludeHeader,
		Metadata:      writer.Metadata{RunID: res.RunID, Sources: sources},
	}
	if err := w.Write(&csvBuf, res.Transactions); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	summary := pipeline.Summarize(res.Transactions)
	h.Logger.Info("converted statements", "request", res.RunID, "files", len(sources), "transactions", summary.Count)

	resp := ConvertResponse{
		Success:      true,
		RequestID:    res.RunID,
		Transactions: res.Transactions,
		CSV:          csvBuf.String(),
		Summary:      &summary,
		Count:        len(res.Transactions),
		Failures:     failures(res, names),
		Version:      h.Version,
	}
	if c.FormValue("debug") == "true" {
		resp.DebugLines = res.DebugLines
	}
	return c.JSON(resp)
}

// splitPages keeps blank pages so page numbers match the uploaded text.
func splitPages(text string) []string {
	pages := strings.Split(text, PageBreak)
	for i, page := range pages {
		pages[i] = strings.TrimSpace(page)
	}
	return pages
}

func failures(res *pipeline.Result, names map[string]string) []Failure {
	var out []Failure
	for _, f := range res.Failures {
		out = append(out, Failure{File: displayName(names, f.Path), Error: f.Err.Error()})
	}
	return out
}

func displayName(names map[string]string, path string) string {
	if name, ok := names[path]; ok {
		return name
	}
	return path
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
