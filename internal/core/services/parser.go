package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

// Ensure Parser implements the interface.
var _ driving.Parser = (*Parser)(nil)

// Parser turns free-form text into question/answer pairs.
//
// Two layouts are recognised, checked in order on each trimmed line:
//
//	Capital of France?Paris        single line: exactly one '?', not at the end
//	What is 2+2?                   two lines: a line ending in '?'
//	Answer: 4                      followed by the answer, label optional
//
// Blank lines are separators. Anything else is skipped and counted.
type Parser struct {
	labels []string
}

// NewParser creates a parser that strips the given answer labels.
// With no labels the defaults are used.
func NewParser(labels ...string) *Parser {
	if len(labels) == 0 {
		labels = domain.DefaultAnswerLabels()
	}
	clean := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			clean = append(clean, l)
		}
	}
	return &Parser{labels: clean}
}

// Labels returns the answer labels this parser strips.
func (p *Parser) Labels() []string {
	return append([]string(nil), p.labels...)
}

// Parse extracts questions in source order.
func (p *Parser) Parse(text string) domain.ParseResult {
	lines := splitLines(text)
	result := domain.ParseResult{Questions: domain.QuestionSet{}}

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			i++

		case strings.Count(line, "?") == 1 && !strings.HasSuffix(line, "?"):
			question, answer, _ := strings.Cut(line, "?")
			result.Questions = append(result.Questions, domain.Question{
				Text:   strings.TrimSpace(question) + "?",
				Answer: strings.TrimSpace(answer),
			})
			i++

		case strings.HasSuffix(line, "?") && i+1 < len(lines):
			result.Questions = append(result.Questions, domain.Question{
				Text:   line,
				Answer: p.stripLabel(strings.TrimSpace(lines[i+1])),
			})
			i += 2

		default:
			result.Skipped++
			i++
		}
	}

	return result
}

// stripLabel removes the first matching answer label, ignoring case.
func (p *Parser) stripLabel(answer string) string {
	for _, label := range p.labels {
		if rest, ok := cutPrefixFold(answer, label); ok {
			return strings.TrimSpace(rest)
		}
	}
	return answer
}

// cutPrefixFold is strings.CutPrefix with Unicode case folding.
// It compares rune by rune so labels in any script fold correctly.
func cutPrefixFold(s, prefix string) (string, bool) {
	n := utf8.RuneCountInString(prefix)
	end := 0
	for i := 0; i < n; i++ {
		if end >= len(s) {
			return s, false
		}
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	if !strings.EqualFold(s[:end], prefix) {
		return s, false
	}
	return s[end:], true
}

// splitLines splits on \n, \r\n and lone \r. A final line terminator does
// not start another line, so a trailing question has no following line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
