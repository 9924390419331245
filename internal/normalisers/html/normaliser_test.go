package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

func normalise(t *testing.T, src []byte) string {
	t.Helper()
	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		URI:      "deck.html",
		MIMEType: "text/html",
		Content:  src,
	})
	require.NoError(t, err)
	assert.Equal(t, Name, result.Normaliser)
	return result.Text
}

func TestSupportedMIMETypes(t *testing.T) {
	n := New()
	assert.Contains(t, n.SupportedMIMETypes(), "text/html")
	assert.Equal(t, 50, n.Priority())
}

func TestNormalise_BlocksBecomeLines(t *testing.T) {
	src := `<html><head><title>Deck</title><style>p{color:red}</style></head>
<body>
<h1>Biology</h1>
<p>What is a cell?</p><p>Answer: the unit of life</p>
<ul><li>Capital of <b>France</b>?Paris</li></ul>
<script>var x = "Q?A";</script>
</body></html>`

	text := normalise(t, []byte(src))

	assert.Equal(t, "Biology\nWhat is a cell?\nAnswer: the unit of life\nCapital of France?Paris", text)
}

func TestNormalise_BrSplitsLines(t *testing.T) {
	text := normalise(t, []byte("<p>Q1?<br>A1<br/>Q2?A2</p>"))

	assert.Equal(t, "Q1?\nA1\nQ2?A2", text)
}

func TestNormalise_DecodesEntities(t *testing.T) {
	text := normalise(t, []byte("<p>Is 1 &lt; 2?Yes &amp; always</p>"))

	assert.Equal(t, "Is 1 < 2?Yes & always", text)
}

func TestNormalise_MetaCharset(t *testing.T) {
	// "Да" in windows-1251
	src := append([]byte(`<html><head><meta charset="windows-1251"></head><body><p>Q?`), 0xC4, 0xE0)
	src = append(src, []byte("</p></body></html>")...)

	text := normalise(t, src)

	assert.Equal(t, "Q?Да", text)
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
