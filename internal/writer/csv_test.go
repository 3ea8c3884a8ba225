package writer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-transactions/internal/models"
)

var sampleTxns = []models.Transaction{
	{Date: "01/02/2023", Description: "COFFEE SHOP", Credits: "$4.50", Balance: "$1,200.00"},
	{Date: "01/05/2023", Description: "PAYROLL DEPOSIT"},
	{Date: "01/06/2023", Description: "RENT", Debits: "($1,500.00)", Balance: "$2,500.00"},
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, sampleTxns))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Description,Credits,Debits,Balance", lines[0])
	assert.Equal(t, `01/02/2023,COFFEE SHOP,$4.50,,"$1,200.00"`, lines[1])
	assert.Equal(t, "01/05/2023,PAYROLL DEPOSIT,,,", lines[2])
	assert.Equal(t, `01/06/2023,RENT,,"($1,500.00)","$2,500.00"`, lines[3])
}

func TestCSVWriter_WriteWithMetadata(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{
		IncludeHeader: true,
		Metadata:      Metadata{RunID: "run-1", Sources: []string{"jan.pdf", "feb.pdf"}},
	}
	require.NoError(t, w.Write(&buf, sampleTxns[:1]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "# Run,run-1", lines[0])
	assert.Equal(t, "# Source,jan.pdf", lines[1])
	assert.Equal(t, "# Source,feb.pdf", lines[2])
	assert.Equal(t, "Date,Description,Credits,Debits,Balance", lines[3])
}

func TestCSVWriter_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	require.NoError(t, w.Write(&buf, nil))
	assert.Equal(t, "Date,Description,Credits,Debits,Balance\n", buf.String())
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	w := &CSVWriter{}
	require.NoError(t, w.WriteToFile(path, sampleTxns))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Date,Description,Credits,Debits,Balance\n"))
}

func TestCSVWriter_WriteToFileBadPath(t *testing.T) {
	w := &CSVWriter{}
	err := w.WriteToFile(filepath.Join(t.TempDir(), "missing", "out.csv"), sampleTxns)
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCSVWriter_WriteMetadataError(t *testing.T) {
	w := &CSVWriter{
		IncludeHeader: true,
		Metadata:      Metadata{RunID: "run-1", Sources: []string{strings.Repeat("s", 8192)}},
	}
	err := w.Write(failingWriter{}, sampleTxns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata")
}
