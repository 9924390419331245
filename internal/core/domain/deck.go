package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Deck is a source file imported into the library.
type Deck struct {
	// Key is the file identity used to namespace progress.
	Key string `json:"key"`

	// Name is the original file name including extension.
	Name string `json:"name"`

	// Path is where the library stores its copy.
	Path string `json:"path"`

	// Format is the detected document format (txt, md, html, docx, pdf).
	Format string `json:"format"`

	// SizeBytes is the stored file size.
	SizeBytes int64 `json:"size_bytes"`

	// ImportedAt is when the file was copied into the library.
	ImportedAt time.Time `json:"imported_at"`
}

// LoadedDeck is a deck together with its parsed questions.
type LoadedDeck struct {
	Deck      Deck
	Questions QuestionSet
	Skipped   int
}

// FileKey derives a file identity from a path: the base name with its
// final extension removed. "notes/biology.txt" becomes "biology".
func FileKey(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FormatFromPath returns the lower-cased extension without the dot,
// defaulting to "txt" for files without one.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "txt"
	}
	return ext
}

// MIMETypeForFormat maps a deck format to the MIME type used to select a normaliser.
func MIMETypeForFormat(format string) string {
	switch format {
	case "md", "markdown":
		return "text/markdown"
	case "html", "htm":
		return "text/html"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pdf":
		return "application/pdf"
	default:
		return "text/plain"
	}
}
