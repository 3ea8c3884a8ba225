package parser

import (
	"strings"

	"github.com/insightdelivered/statement-transactions/internal/models"
)

type segmentState int

const (
	stateIdle segmentState = iota
	stateOpen
)

// segmenter walks the filtered lines of one page and cuts them into
// transactions. A line starting with MM/DD/YYYY opens a new transaction;
// every other line extends the open one.
type segmenter struct {
	filter *NoiseFilter
	page   int
	lines  []string
	cursor int

	state   segmentState
	current *pending

	transactions []models.Transaction
	debug        []models.DebugLine
}

func newSegmenter(filter *NoiseFilter, page int, lines []string) *segmenter {
	return &segmenter{filter: filter, page: page, lines: lines}
}

// run consumes every line and returns the transactions emitted for the page.
func (s *segmenter) run() []models.Transaction {
	for s.cursor < len(s.lines) {
		line := s.lines[s.cursor]

		if isHeaderLine(line) {
			s.trace(line, false, 0, models.LineHeader)
			s.cursor++
			continue
		}

		if date, rest, ok := splitDatePrefix(line); ok {
			s.open(date, rest, line)
			s.cursor++
			continue
		}

		s.continuation(line)
		s.cursor++
	}

	s.close()
	return s.transactions
}

// open finishes the current transaction and starts a new one. Amounts on
// the date line itself are left in the description; only the line right
// after it is searched for amounts.
func (s *segmenter) open(date, rest, line string) {
	s.close()

	s.current = &pending{date: date}
	s.state = stateOpen
	if rest = s.cut(rest); rest != "" {
		s.current.parts = append(s.current.parts, rest)
	}
	s.trace(line, true, 0, models.LineTransaction)

	next := s.cursor + 1
	if next >= len(s.lines) {
		return
	}
	nextLine := s.lines[next]
	amounts := findAmounts(nextLine)
	if len(amounts) == 0 {
		return
	}

	if desc := stripAmounts(nextLine); desc != "" {
		s.current.parts = append(s.current.parts, desc)
	}
	s.current.assignAmounts(amounts)
	s.cursor = next
	s.trace(nextLine, false, len(amounts), models.LineLookahead)
}

func (s *segmenter) continuation(line string) {
	if s.state == stateIdle {
		s.trace(line, false, 0, models.LineIdle)
		return
	}

	amounts := findAmounts(line)
	if len(amounts) == 0 {
		s.current.parts = append(s.current.parts, line)
		s.trace(line, false, 0, models.LineContinuation)
		return
	}

	if desc := s.cut(stripAmounts(line)); desc != "" {
		s.current.parts = append(s.current.parts, desc)
	}
	s.current.assignAmounts(amounts)
	s.trace(line, false, len(amounts), models.LineAmounts)
}

// close emits the open transaction if it qualifies and returns to idle.
func (s *segmenter) close() {
	if s.state != stateOpen {
		return
	}
	p := s.current
	s.current = nil
	s.state = stateIdle

	if !p.emittable() {
		return
	}
	desc := strings.TrimSpace(strings.Join(p.parts, " "))
	if s.filter.Excluded(desc) {
		return
	}
	s.transactions = append(s.transactions, models.Transaction{
		Date:        p.date,
		Description: desc,
		Credits:     p.credits,
		Debits:      p.debits,
		Balance:     p.balance,
	})
}

// cut trims a description fragment at the legal marker.
func (s *segmenter) cut(fragment string) string {
	return strings.TrimSpace(s.filter.Truncate(fragment))
}

func (s *segmenter) trace(line string, hasDate bool, amounts int, result string) {
	s.debug = append(s.debug, models.DebugLine{
		Page:    s.page,
		LineNum: s.cursor + 1,
		Text:    line,
		HasDate: hasDate,
		Amounts: amounts,
		Result:  result,
	})
}
