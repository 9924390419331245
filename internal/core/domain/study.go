package domain

// StudyState is the state of an active study session.
type StudyState string

// Study session states. BROWSING covers both answer states.
const (
	// StateAnswerHidden shows the current question with its answer hidden.
	StateAnswerHidden StudyState = "answer_hidden"

	// StateAnswerShown shows the current question and its answer.
	StateAnswerShown StudyState = "answer_shown"

	// StateComplete means every question has been studied.
	StateComplete StudyState = "complete"
)

// IsBrowsing reports whether a current question is on screen.
func (s StudyState) IsBrowsing() bool {
	return s == StateAnswerHidden || s == StateAnswerShown
}

// String returns the string representation.
func (s StudyState) String() string {
	return string(s)
}

// Description returns a human-readable label for the state.
func (s StudyState) Description() string {
	switch s {
	case StateAnswerHidden:
		return "Answer hidden"
	case StateAnswerShown:
		return "Answer shown"
	case StateComplete:
		return "All questions studied"
	default:
		return unknownDescription
	}
}
