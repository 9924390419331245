package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

type stubNormaliser struct {
	name     string
	mimes    []string
	priority int
}

func (s *stubNormaliser) SupportedMIMETypes() []string {
	return s.mimes
}

func (s *stubNormaliser) Priority() int {
	return s.priority
}

func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Text: string(raw.Content), Normaliser: s.name}, nil
}

func TestRegistry_SelectsHighestPriority(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{name: "fallback", mimes: []string{"text/plain", "text/html"}, priority: 5},
		&stubNormaliser{name: "html", mimes: []string{"text/html"}, priority: 50},
	)
	ctx := context.Background()

	result, err := r.Normalise(ctx, &domain.RawDocument{MIMEType: "text/html"})
	require.NoError(t, err)
	assert.Equal(t, "html", result.Normaliser)

	result, err = r.Normalise(ctx, &domain.RawDocument{MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", result.Normaliser)
}

func TestRegistry_EmptyMIMEIsPlainText(t *testing.T) {
	r := NewRegistry(&stubNormaliser{name: "plain", mimes: []string{"text/plain"}, priority: 5})

	result, err := r.Normalise(context.Background(), &domain.RawDocument{Content: []byte("Q?A")})

	require.NoError(t, err)
	assert.Equal(t, "Q?A", result.Text)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "application/pdf"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_SupportedMIMETypes(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubNormaliser{mimes: []string{"text/plain", "text/csv"}, priority: 5})
	r.Register(&stubNormaliser{mimes: []string{"text/plain", "application/pdf"}, priority: 50})

	assert.Equal(t, []string{"application/pdf", "text/csv", "text/plain"}, r.SupportedMIMETypes())
}

func TestRegistry_Supports(t *testing.T) {
	r := NewRegistry(&stubNormaliser{mimes: []string{"text/plain"}, priority: 5})

	assert.True(t, r.Supports("text/plain"))
	assert.False(t, r.Supports("application/pdf"))
}
