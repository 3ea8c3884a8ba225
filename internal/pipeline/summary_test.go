package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/insightdelivered/statement-transactions/internal/models"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Transaction{
		{Date: "01/02/2023", Credits: "$4.50", Balance: "$1,200.00"},
		{Date: "01/03/2023", Debits: "($1,500.25)"},
		{Date: "01/04/2023", Credits: "$10.00", Debits: "($0.75)"},
		{Date: "01/05/2023", Credits: "$1.2.3.45"},
	})

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, "14.5", s.TotalCredits.String())
	assert.Equal(t, "1501", s.TotalDebits.String())
	assert.Equal(t, 1, s.Unparsed)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.TotalCredits.IsZero())
	assert.True(t, s.TotalDebits.IsZero())
}
