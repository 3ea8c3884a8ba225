package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-transactions/internal/models"
	"github.com/insightdelivered/statement-transactions/internal/parser"
)

// Summary totals the amount columns of a run. Amounts that do not parse
// are counted in Unparsed and otherwise ignored.
type Summary struct {
	Count        int             `json:"count"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	Unparsed     int             `json:"unparsed,omitempty"`
}

// Summarize adds up credits and debits. Debits are reported as a positive
// total even though the statement prints them in parentheses.
func Summarize(txns []models.Transaction) Summary {
	s := Summary{Count: len(txns), TotalCredits: decimal.Zero, TotalDebits: decimal.Zero}
	for _, txn := range txns {
		if txn.Credits != "" {
			if d, err := parser.ParseAmount(txn.Credits); err == nil {
				s.TotalCredits = s.TotalCredits.Add(d)
			} else {
				s.Unparsed++
			}
		}
		if txn.Debits != "" {
			if d, err := parser.ParseAmount(txn.Debits); err == nil {
				s.TotalDebits = s.TotalDebits.Add(d.Abs())
			} else {
				s.Unparsed++
			}
		}
	}
	return s
}
