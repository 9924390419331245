package domain

// RawDocument represents opaque bytes read from an imported file.
// It is the library's output before normalisation into plain text.
type RawDocument struct {
	// URI is the original location (file path).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// ChangeType represents the type of library change.
type ChangeType int

const (
	// ChangeCreated indicates a new deck file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified deck file.
	ChangeUpdated

	// ChangeDeleted indicates a removed deck file.
	ChangeDeleted
)

// String returns a short label for the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// LibraryChange represents a change event observed in the deck library.
type LibraryChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Key is the file key of the affected deck.
	Key string

	// Path is the file that changed.
	Path string
}
