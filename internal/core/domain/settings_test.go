package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageBackend_IsValid(t *testing.T) {
	for _, b := range AllStorageBackends() {
		assert.True(t, b.IsValid(), b.String())
		assert.NotEqual(t, unknownDescription, b.Description())
	}
	assert.False(t, StorageBackend("postgres").IsValid())
	assert.Equal(t, unknownDescription, StorageBackend("postgres").Description())
}

func TestStorageBackend_IsDurable(t *testing.T) {
	assert.True(t, StorageSQLite.IsDurable())
	assert.True(t, StorageRedis.IsDurable())
	assert.True(t, StorageTOML.IsDurable())
	assert.False(t, StorageMemory.IsDurable())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.False(t, s.Study.RandomOrder)
	assert.True(t, s.Study.HideAnswers)
	assert.Equal(t, StorageSQLite, s.Storage.Backend)
	assert.Contains(t, s.Parser.AnswerLabels, "Ответ:")
	assert.Equal(t, "windows-1251", s.Library.FallbackEncoding)
	assert.Contains(t, SupportedLanguages(), s.Language)
}

func TestDefaultAnswerLabels_ReturnsCopy(t *testing.T) {
	a := DefaultAnswerLabels()
	a[0] = "changed"

	assert.Equal(t, "Ответ:", DefaultAnswerLabels()[0])
}
