// Package plaintext normalises plain text decks.
package plaintext

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/normalisers"
)

// Name identifies this normaliser in results.
const Name = "plaintext"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct {
	fallback string
}

// New creates a plain text normaliser. Content that is not UTF-8 is
// decoded with the fallback encoding.
func New(fallback string) *Normaliser {
	if fallback == "" {
		fallback = normalisers.DefaultFallbackEncoding
	}
	return &Normaliser{fallback: fallback}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/csv"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise decodes the content. Lines are left untouched; the parser trims them.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := normalisers.DecodeText(raw.Content, n.fallback)
	if err != nil {
		return nil, err
	}

	return &driven.NormaliseResult{
		Text:       text,
		Normaliser: Name,
	}, nil
}
