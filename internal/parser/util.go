package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// MM/DD/YYYY at the very start of a line; the rest is the description.
	datePrefixPattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s*(.*)$`)

	// $1,234.56, 25.99 or ($5.00). Parentheses mark a debit. The token
	// (group 1) must stand alone: 1.800.555.1234 or 1.2345 are not amounts.
	// RE2 has no lookbehind, so the preceding character is matched outside
	// the group.
	amountPattern = regexp.MustCompile(`(?:^|[^\w.])(\(?[$£€]?\d[\d,]*\.\d{2}\b\)?)`)
)

// headerWords are the column titles of the transaction table. Any line
// containing one of them is treated as a header and skipped.
var headerWords = []string{"Date", "Description", "Credits", "Debits", "Balance"}

// splitDatePrefix returns the leading date token and the remainder of the
// line. ok is false when the line does not start with a date.
func splitDatePrefix(line string) (date, rest string, ok bool) {
	m := datePrefixPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

func isHeaderLine(line string) bool {
	for _, w := range headerWords {
		if strings.Contains(line, w) {
			return true
		}
	}
	return false
}

// findAmounts returns the amount tokens on a line, left to right.
func findAmounts(line string) []string {
	var tokens []string
	for _, m := range amountPattern.FindAllStringSubmatchIndex(line, -1) {
		tokens = append(tokens, line[m[2]:m[3]])
	}
	return tokens
}

// stripAmounts removes every amount token from s and trims the result.
func stripAmounts(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range amountPattern.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(s[last:m[2]])
		last = m[3]
	}
	b.WriteString(s[last:])
	return strings.TrimSpace(b.String())
}

// collapseSpaces squeezes whitespace runs into single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseAmount converts an amount token like "$1,234.56" or "($5.00)" into a
// signed decimal. Parenthesised amounts are negative.
func ParseAmount(token string) (decimal.Decimal, error) {
	s := strings.TrimSpace(token)
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Trim(s, "()")
	s = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "", "\u00A0", "").Replace(s)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
