package domain

import (
	"fmt"
	"sort"
	"strconv"
)

// StudiedSet is the set of question indices marked as studied for one file.
// Order carries no meaning.
type StudiedSet map[int]struct{}

// NewStudiedSet creates a set holding the given indices.
func NewStudiedSet(indices ...int) StudiedSet {
	s := make(StudiedSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether index i is in the set.
func (s StudiedSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Add inserts index i. It reports whether the set changed.
func (s StudiedSet) Add(i int) bool {
	if _, ok := s[i]; ok {
		return false
	}
	s[i] = struct{}{}
	return true
}

// Len returns the number of studied indices.
func (s StudiedSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s StudiedSet) Clone() StudiedSet {
	out := make(StudiedSet, len(s))
	for i := range s {
		out[i] = struct{}{}
	}
	return out
}

// Indices returns the studied indices in ascending order.
func (s StudiedSet) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// CountWithin returns how many indices fall inside [0, total).
func (s StudiedSet) CountWithin(total int) int {
	n := 0
	for i := range s {
		if i >= 0 && i < total {
			n++
		}
	}
	return n
}

// Tokens serialises the set to decimal string tokens for key-value storage.
func (s StudiedSet) Tokens() []string {
	indices := s.Indices()
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = strconv.Itoa(idx)
	}
	return out
}

// ParseStudiedTokens rebuilds a set from stored tokens.
// Tokens that are not non-negative integers are ignored and counted.
func ParseStudiedTokens(tokens []string) (StudiedSet, int) {
	s := make(StudiedSet, len(tokens))
	invalid := 0
	for _, tok := range tokens {
		i, err := strconv.Atoi(tok)
		if err != nil || i < 0 {
			invalid++
			continue
		}
		s[i] = struct{}{}
	}
	return s, invalid
}

// ProgressSummary is the studied/total count shown to the user.
type ProgressSummary struct {
	Studied int `json:"studied"`
	Total   int `json:"total"`
}

// Remaining returns how many questions are left.
func (p ProgressSummary) Remaining() int {
	return p.Total - p.Studied
}

// Complete reports whether nothing is left to study.
func (p ProgressSummary) Complete() bool {
	return p.Studied >= p.Total
}

// Percent returns studied/total as a percentage in [0, 100].
func (p ProgressSummary) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Studied) * 100 / float64(p.Total)
}

// String returns "studied / total".
func (p ProgressSummary) String() string {
	return fmt.Sprintf("%d / %d", p.Studied, p.Total)
}

// MarkOutcome tells the caller what happened after marking a question studied.
type MarkOutcome string

const (
	// OutcomeAdvanced means questions remain and the cursor moved on.
	OutcomeAdvanced MarkOutcome = "advanced"

	// OutcomeCompleted means the marked question was the last one.
	OutcomeCompleted MarkOutcome = "completed"
)
