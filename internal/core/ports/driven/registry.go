package driven

import (
	"context"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// NormaliserRegistry turns imported files of any supported format into text.
type NormaliserRegistry interface {
	// Normalise runs the highest-priority normaliser for the document's MIME type.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Supports reports whether some normaliser accepts the MIME type.
	Supports(mime string) bool

	// SupportedMIMETypes lists every accepted MIME type, sorted.
	SupportedMIMETypes() []string
}
