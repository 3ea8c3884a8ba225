package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultLegalMarker starts the legal boilerplate at the bottom of a page.
const DefaultLegalMarker = "Important Notice"

// DefaultExcludePatterns match rows that are never transactions: balance
// summaries, legal notices and bank disclosures.
var DefaultExcludePatterns = []string{
	`Beginning Balance`,
	`Ending Balance`,
	`Important Notice`,
	`Member FDIC`,
	`Direct inquiries`,
	`Accounts offered by`,
}

// NoiseFilter strips statement boilerplate before and after segmentation.
type NoiseFilter struct {
	legalMarker string
	exclude     *regexp.Regexp
}

// NewNoiseFilter compiles the exclusion patterns into one case-insensitive
// alternation. An empty marker disables page truncation.
func NewNoiseFilter(legalMarker string, patterns []string) (*NoiseFilter, error) {
	f := &NoiseFilter{legalMarker: legalMarker}
	if len(patterns) == 0 {
		return f, nil
	}

	re, err := regexp.Compile(`(?i)` + strings.Join(patterns, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	f.exclude = re
	return f, nil
}

// Truncate drops everything from the legal marker to the end of text.
func (f *NoiseFilter) Truncate(text string) string {
	if f.legalMarker == "" {
		return text
	}
	if idx := strings.Index(text, f.legalMarker); idx >= 0 {
		return text[:idx]
	}
	return text
}

// Excluded reports whether s matches one of the exclusion patterns.
func (f *NoiseFilter) Excluded(s string) bool {
	return f.exclude != nil && f.exclude.MatchString(s)
}

// lineBreaks maps every line separator extracted text may carry onto "\n".
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\f", "\n",
	"\v", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// Lines truncates the page, splits it into trimmed non-empty lines and
// drops every excluded line.
func (f *NoiseFilter) Lines(page string) []string {
	var lines []string
	for _, line := range strings.Split(lineBreaks.Replace(f.Truncate(page)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || f.Excluded(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
