package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/normalisers"
)

// Name identifies this normaliser in results.
const Name = "html"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise extracts the visible text of an HTML document.
// The character set is taken from the BOM or meta tags, defaulting to UTF-8.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r, err := charset.NewReader(bytes.NewReader(raw.Content), "text/html")
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}

	lines, err := extractLines(r)
	if err != nil {
		return nil, err
	}

	return &driven.NormaliseResult{
		Text:       normalisers.CompactLines(lines),
		Normaliser: Name,
	}, nil
}

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Head:     true,
	atom.Svg:      true,
	atom.Template: true,
}

// block elements start and end a line.
var block = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Dt: true, atom.Dd: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.Blockquote: true, atom.Pre: true, atom.Table: true, atom.Section: true,
	atom.Article: true, atom.Header: true, atom.Footer: true, atom.Ul: true, atom.Ol: true,
}

func extractLines(r io.Reader) ([]string, error) {
	z := html.NewTokenizer(r)

	var (
		lines []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		lines = append(lines, strings.Join(strings.Fields(cur.String()), " "))
		cur.Reset()
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize html: %w", err)
			}
			if cur.Len() > 0 {
				flush()
			}
			return lines, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if skipped[tok.DataAtom] {
				if tok.Type == html.StartTagToken {
					depth++
				}
				continue
			}
			if block[tok.DataAtom] && depth == 0 {
				flush()
			}

		case html.EndTagToken:
			tok := z.Token()
			if skipped[tok.DataAtom] {
				if depth > 0 {
					depth--
				}
				continue
			}
			if block[tok.DataAtom] && depth == 0 {
				flush()
			}

		case html.TextToken:
			if depth == 0 {
				cur.Write(z.Text())
			}
		}
	}
}
