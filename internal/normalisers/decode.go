package normalisers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultFallbackEncoding decodes text that is not valid UTF-8.
const DefaultFallbackEncoding = "windows-1251"

// DecodeText converts imported bytes to a UTF-8 string.
//
// Valid UTF-8 is returned as is with any byte order mark removed.
// UTF-16 with a byte order mark is decoded accordingly. Anything else is
// decoded with the fallback encoding, named as in the WHATWG encoding list.
func DecodeText(content []byte, fallback string) (string, error) {
	if utf8.Valid(content) {
		return strings.TrimPrefix(string(content), "\ufeff"), nil
	}

	if fallback == "" {
		fallback = DefaultFallbackEncoding
	}
	enc, err := htmlindex.Get(fallback)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", fallback, err)
	}

	decoder := unicode.BOMOverride(enc.NewDecoder())
	out, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", fallback, err)
	}
	return string(out), nil
}

// ValidEncoding reports whether name is a known encoding label.
func ValidEncoding(name string) bool {
	_, err := htmlindex.Get(name)
	return err == nil
}

// JoinLines trims every line, collapses runs of blank lines to one and
// trims the result. Extracted text keeps its line structure for parsing.
func JoinLines(lines []string) string {
	var b strings.Builder
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = true
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
			if blank {
				b.WriteByte('\n')
			}
		}
		blank = false
		b.WriteString(line)
	}
	return b.String()
}

// CompactLines trims every line and drops blank ones. Used for formats
// whose layout produces blank lines that carry no meaning.
func CompactLines(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
