package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

var errStoreDown = errors.New("store unavailable")

// mockProgressStore wraps a map and can fail individual operations.
type mockProgressStore struct {
	records  map[string][]string
	failGet  bool
	failPut  bool
	failRem  bool
	putCalls int
	remCalls int
	lastPut  []string
}

func newMockProgressStore() *mockProgressStore {
	return &mockProgressStore{records: make(map[string][]string)}
}

func (m *mockProgressStore) Get(_ context.Context, key string) ([]string, error) {
	if m.failGet {
		return nil, errStoreDown
	}
	return append([]string{}, m.records[key]...), nil
}

func (m *mockProgressStore) Put(_ context.Context, key string, tokens []string) error {
	m.putCalls++
	m.lastPut = tokens
	if m.failPut {
		return errStoreDown
	}
	m.records[key] = append([]string(nil), tokens...)
	return nil
}

func (m *mockProgressStore) Remove(_ context.Context, key string) error {
	m.remCalls++
	if m.failRem {
		return errStoreDown
	}
	delete(m.records, key)
	return nil
}

// reverseShuffler reverses the slice so random mode is observable.
type reverseShuffler struct {
	calls int
}

func (r *reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	r.calls++
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

// mockRegistry passes plain text through and fails for configured MIME types.
type mockRegistry struct {
	unsupported map[string]bool
}

func (m *mockRegistry) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if m.unsupported[raw.MIMEType] {
		return nil, domain.ErrUnsupportedFormat
	}
	return &driven.NormaliseResult{
		Text:       strings.TrimPrefix(string(raw.Content), "\ufeff"),
		Normaliser: "mock",
	}, nil
}

func (m *mockRegistry) Supports(mime string) bool {
	return mime == "text/plain" || mime == "text/markdown"
}

func (m *mockRegistry) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/plain"}
}

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		{Text: "Q0?", Answer: "A0"},
		{Text: "Q1?", Answer: "A1"},
		{Text: "Q2?", Answer: "A2"},
		{Text: "Q3?", Answer: "A3"},
	}
}

func indicesOf(items []domain.IndexedQuestion) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.Index
	}
	return out
}
