package parser

import "strings"

// pending is the transaction being accumulated while the segmenter is open.
// Amount slots are empty until a token is assigned.
type pending struct {
	date    string
	parts   []string
	credits string
	debits  string
	balance string
}

// assignAmounts classifies the tokens of one line, rightmost first. The
// rightmost column of a statement row is the running balance, so the first
// token seen claims the balance slot if it is still empty. Remaining tokens
// go to debits when parenthesised and to credits otherwise, overwriting any
// value an earlier line put there.
func (p *pending) assignAmounts(tokens []string) {
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		switch {
		case p.balance == "":
			p.balance = tok
		case strings.Contains(tok, "("):
			p.debits = tok
		default:
			p.credits = tok
		}
	}
}

// emittable reports whether the record carries enough to become a row.
func (p *pending) emittable() bool {
	return p.date != "" && (len(p.parts) > 0 || p.credits != "" || p.debits != "")
}
