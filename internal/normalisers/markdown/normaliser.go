// Package markdown normalises Markdown decks using goldmark.
package markdown

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/normalisers"
)

// Name identifies this normaliser in results.
const Name = "markdown"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct {
	fallback string
	md       goldmark.Markdown
}

// New creates a Markdown normaliser.
func New(fallback string) *Normaliser {
	return &Normaliser{
		fallback: fallback,
		md:       goldmark.New(),
	}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise renders the document as plain text. Formatting marks are
// dropped, block boundaries and soft line breaks become newlines so that
// two-line questions written as one paragraph survive.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	decoded, err := normalisers.DecodeText(raw.Content, n.fallback)
	if err != nil {
		return nil, err
	}
	source := []byte(decoded)

	doc := n.md.Parser().Parse(text.NewReader(source))
	lines := renderLines(doc, source)

	return &driven.NormaliseResult{
		Text:       normalisers.JoinLines(lines),
		Normaliser: Name,
	}, nil
}

// renderLines walks the AST and collects text, one output line per line break.
func renderLines(doc ast.Node, source []byte) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
	}

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := node.(type) {
		case *ast.Text:
			if entering {
				cur.Write(n.Segment.Value(source))
				if n.SoftLineBreak() || n.HardLineBreak() {
					flush()
				}
			}
		case *ast.String:
			if entering {
				cur.Write(n.Value)
			}
		case *ast.AutoLink:
			if entering {
				cur.Write(n.Label(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			if entering {
				segments := node.Lines()
				for i := 0; i < segments.Len(); i++ {
					seg := segments.At(i)
					cur.Write(seg.Value(source))
					flush()
				}
			}
			return ast.WalkSkipChildren, nil
		default:
			if node.Type() == ast.TypeBlock && !entering {
				flush()
			}
		}
		return ast.WalkContinue, nil
	})

	if cur.Len() > 0 {
		flush()
	}
	return lines
}
