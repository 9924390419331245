package domain

// Question is an immutable question/answer pair.
// Equality is structural: two questions with the same text and answer
// are indistinguishable.
type Question struct {
	// Text is the question as shown to the user, ending in '?'.
	Text string `json:"text"`

	// Answer is the answer revealed on demand.
	Answer string `json:"answer"`
}

// QuestionSet is the ordered sequence of questions parsed from one source.
// Indices 0..N-1 are stable for a given input text; persisted progress
// refers to these indices.
type QuestionSet []Question

// Len returns the number of questions.
func (s QuestionSet) Len() int {
	return len(s)
}

// At returns the question at index i and whether i is in range.
func (s QuestionSet) At(i int) (Question, bool) {
	if i < 0 || i >= len(s) {
		return Question{}, false
	}
	return s[i], true
}

// IndexOf returns the index of the first question structurally equal to q,
// or -1 if none matches. Duplicate questions always resolve to the first copy.
func (s QuestionSet) IndexOf(q Question) int {
	for i := range s {
		if s[i] == q {
			return i
		}
	}
	return -1
}

// Indexed returns every question paired with its index, in order.
func (s QuestionSet) Indexed() []IndexedQuestion {
	out := make([]IndexedQuestion, len(s))
	for i := range s {
		out[i] = IndexedQuestion{Index: i, Question: s[i]}
	}
	return out
}

// IndexedQuestion carries a question together with its position in the
// full QuestionSet, so filtering and shuffling never lose track of it.
type IndexedQuestion struct {
	// Index is the position in the full QuestionSet.
	Index int `json:"index"`

	Question
}

// ParseResult is the outcome of parsing raw text.
type ParseResult struct {
	// Questions are the recognised questions in source order.
	Questions QuestionSet

	// Skipped counts non-blank lines that matched no format.
	Skipped int
}
