package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeText(t *testing.T) {
	cp1251, err := charmap.Windows1251.NewEncoder().String("Ответ: да")
	require.NoError(t, err)
	koi8, err := charmap.KOI8R.NewEncoder().String("Ответ")
	require.NoError(t, err)
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("Q?A")
	require.NoError(t, err)

	tests := []struct {
		name     string
		content  []byte
		fallback string
		expected string
	}{
		{"utf8", []byte("Q?A"), "", "Q?A"},
		{"utf8 bom", []byte("\ufeffQ?A"), "", "Q?A"},
		{"windows-1251 default", []byte(cp1251), "", "Ответ: да"},
		{"koi8-r", []byte(koi8), "koi8-r", "Ответ"},
		{"utf16 with bom", []byte(utf16), "", "Q?A"},
		{"empty", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.content, tt.fallback)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeText_UnknownEncoding(t *testing.T) {
	_, err := DecodeText([]byte{0xff}, "klingon")

	assert.Error(t, err)
}

func TestValidEncoding(t *testing.T) {
	assert.True(t, ValidEncoding("windows-1251"))
	assert.True(t, ValidEncoding("utf-8"))
	assert.False(t, ValidEncoding("klingon"))
}

func TestJoinLines(t *testing.T) {
	lines := []string{"", "  Q1? ", "A1", "", "", "Q2?A2", ""}

	assert.Equal(t, "Q1?\nA1\n\nQ2?A2", JoinLines(lines))
	assert.Equal(t, "", JoinLines(nil))
}

func TestCompactLines(t *testing.T) {
	lines := []string{"", "  Q1? ", "A1", "", "Q2?A2"}

	assert.Equal(t, "Q1?\nA1\nQ2?A2", CompactLines(lines))
}
