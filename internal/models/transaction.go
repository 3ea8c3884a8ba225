package models

// Transaction is one reconstructed statement row. Amount fields keep the
// token exactly as printed on the statement, e.g. "$1,200.00" or "($5.00)",
// and are empty when the row had no value in that column.
type Transaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Credits     string `json:"credits"`
	Debits      string `json:"debits"`
	Balance     string `json:"balance"`
}

// Line results recorded in a DebugLine.
const (
	LineHeader       = "header"
	LineTransaction  = "transaction"
	LineLookahead    = "lookahead"
	LineContinuation = "continuation"
	LineAmounts      = "amounts"
	LineIdle         = "idle"
)

// DebugLine captures what the segmenter did with each input line.
type DebugLine struct {
	Page    int    `json:"page"`
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	HasDate bool   `json:"hasDate"`
	Amounts int    `json:"amounts,omitempty"`
	Result  string `json:"result"`
}

// Statement holds everything reconstructed from one input file.
type Statement struct {
	Source       string
	Pages        int
	Transactions []Transaction
	DebugLines   []DebugLine
}
