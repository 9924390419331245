package driven

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// Normaliser transforms imported documents into plain text lines.
// Each normaliser handles specific MIME types (e.g., PDF, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts text from a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Text is the extracted content, one logical line per line.
	Text string

	// Normaliser names the normaliser that produced the text.
	Normaliser string
}
