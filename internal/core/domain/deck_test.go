package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileKey(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"biology.txt", "biology"},
		{"/home/user/notes/history.final.md", "history.final"},
		{"no_extension", "no_extension"},
		{"dir/Вопросы.docx", "Вопросы"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileKey(tt.path))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "txt", FormatFromPath("a.txt"))
	assert.Equal(t, "md", FormatFromPath("a.MD"))
	assert.Equal(t, "txt", FormatFromPath("README"))
	assert.Equal(t, "docx", FormatFromPath("/x/y.docx"))
}

func TestMIMETypeForFormat(t *testing.T) {
	assert.Equal(t, "text/plain", MIMETypeForFormat("txt"))
	assert.Equal(t, "text/markdown", MIMETypeForFormat("md"))
	assert.Equal(t, "text/html", MIMETypeForFormat("htm"))
	assert.Equal(t, "application/pdf", MIMETypeForFormat("pdf"))
	assert.Contains(t, MIMETypeForFormat("docx"), "wordprocessingml")
	assert.Equal(t, "text/plain", MIMETypeForFormat("csv"))
}

func TestStudyState(t *testing.T) {
	assert.True(t, StateAnswerHidden.IsBrowsing())
	assert.True(t, StateAnswerShown.IsBrowsing())
	assert.False(t, StateComplete.IsBrowsing())
	assert.Equal(t, "complete", StateComplete.String())
	assert.Equal(t, "Unknown", StudyState("bogus").Description())
}

func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "created", ChangeCreated.String())
	assert.Equal(t, "updated", ChangeUpdated.String())
	assert.Equal(t, "deleted", ChangeDeleted.String())
	assert.Equal(t, "unknown", ChangeType(42).String())
}
