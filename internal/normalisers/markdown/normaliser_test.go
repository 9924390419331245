package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

func normalise(t *testing.T, src string) string {
	t.Helper()
	result, err := New("").Normalise(context.Background(), &domain.RawDocument{
		URI:      "deck.md",
		MIMEType: "text/markdown",
		Content:  []byte(src),
	})
	require.NoError(t, err)
	assert.Equal(t, Name, result.Normaliser)
	return result.Text
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Contains(t, New("").SupportedMIMETypes(), "text/markdown")
	assert.Equal(t, 50, New("").Priority())
}

func TestNormalise_SoftBreakKeepsLines(t *testing.T) {
	text := normalise(t, "What is 2+2?\nAnswer: 4\n")

	assert.Equal(t, "What is 2+2?\nAnswer: 4", text)
}

func TestNormalise_StripsInlineFormatting(t *testing.T) {
	text := normalise(t, "Capital of **France**?Paris")

	assert.Equal(t, "Capital of France?Paris", text)
}

func TestNormalise_BlocksBecomeLines(t *testing.T) {
	src := "# Biology\n\nQ1?\nA1\n\n- Q2?A2\n- Q3?A3\n\n```\ncode? here\n```\n"

	lines := strings.Split(normalise(t, src), "\n")

	assert.Contains(t, lines, "Biology")
	assert.Contains(t, lines, "Q1?")
	assert.Contains(t, lines, "A1")
	assert.Contains(t, lines, "Q2?A2")
	assert.Contains(t, lines, "Q3?A3")
	assert.Contains(t, lines, "code? here")
	assert.NotContains(t, lines, "# Biology")
}

func TestNormalise_Empty(t *testing.T) {
	assert.Equal(t, "", normalise(t, ""))
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New("").Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
