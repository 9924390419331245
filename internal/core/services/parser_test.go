package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.QuestionSet
		skipped  int
	}{
		{
			name:     "single line",
			input:    "Capital of France?Paris",
			expected: domain.QuestionSet{{Text: "Capital of France?", Answer: "Paris"}},
		},
		{
			name:     "single line with spaces",
			input:    "  Capital of France ?  Paris  ",
			expected: domain.QuestionSet{{Text: "Capital of France?", Answer: "Paris"}},
		},
		{
			name:     "two lines with russian label",
			input:    "What is 2+2?\nОтвет: 4",
			expected: domain.QuestionSet{{Text: "What is 2+2?", Answer: "4"}},
		},
		{
			name:     "two lines with lowercase label",
			input:    "What is 2+2?\nответ: 4",
			expected: domain.QuestionSet{{Text: "What is 2+2?", Answer: "4"}},
		},
		{
			name:     "two lines with english label",
			input:    "What is 2+2?\nANSWER:4",
			expected: domain.QuestionSet{{Text: "What is 2+2?", Answer: "4"}},
		},
		{
			name:     "two lines without label",
			input:    "Capital of Japan?\nTokyo",
			expected: domain.QuestionSet{{Text: "Capital of Japan?", Answer: "Tokyo"}},
		},
		{
			name:     "dangling question dropped",
			input:    "Unanswered question?",
			expected: domain.QuestionSet{},
		},
		{
			name:     "dangling question before final newline dropped",
			input:    "Unanswered question?\n",
			expected: domain.QuestionSet{},
		},
		{
			name:     "two lines with final newline",
			input:    "Q?\nA\n",
			expected: domain.QuestionSet{{Text: "Q?", Answer: "A"}},
		},
		{
			name:     "dangling question after card with crlf endings",
			input:    "Capital of Japan?\r\nTokyo\r\nUnanswered question?\r\n",
			expected: domain.QuestionSet{{Text: "Capital of Japan?", Answer: "Tokyo"}},
		},
		{
			name:  "blank lines tolerated",
			input: "Q1?\nA1\n\nQ2?\nA2",
			expected: domain.QuestionSet{
				{Text: "Q1?", Answer: "A1"},
				{Text: "Q2?", Answer: "A2"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: domain.QuestionSet{},
		},
		{
			name:     "only blank lines",
			input:    "\n\n   \n",
			expected: domain.QuestionSet{},
		},
		{
			name:     "multiple question marks not single line",
			input:    "Why? Really? Yes",
			expected: domain.QuestionSet{},
			skipped:  1,
		},
		{
			name:     "multiple question marks ending in question mark is two line",
			input:    "Why? Really?\nBecause",
			expected: domain.QuestionSet{{Text: "Why? Really?", Answer: "Because"}},
		},
		{
			name:  "unrecognised lines skipped",
			input: "Chapter 1\nQ?A\nnotes",
			expected: domain.QuestionSet{
				{Text: "Q?", Answer: "A"},
			},
			skipped: 2,
		},
		{
			name:  "answer line is consumed even if it looks like a question",
			input: "First?\nSecond?\nThird?\nAnswer",
			expected: domain.QuestionSet{
				{Text: "First?", Answer: "Second?"},
				{Text: "Third?", Answer: "Answer"},
			},
		},
		{
			name:  "windows line endings",
			input: "Q1?\r\nA1\r\nQ2?A2\r\n",
			expected: domain.QuestionSet{
				{Text: "Q1?", Answer: "A1"},
				{Text: "Q2?", Answer: "A2"},
			},
		},
		{
			name:  "old mac line endings",
			input: "Q1?\rA1",
			expected: domain.QuestionSet{
				{Text: "Q1?", Answer: "A1"},
			},
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse(tt.input)
			assert.Equal(t, tt.expected, result.Questions)
			assert.Equal(t, tt.skipped, result.Skipped)
		})
	}
}

func TestParser_Parse_Deterministic(t *testing.T) {
	input := "Q1?\nA1\nQ2?A2\nnoise\nQ3?\nОтвет: A3"
	parser := NewParser()

	first := parser.Parse(input)
	second := parser.Parse(input)

	require.Len(t, first.Questions, 3)
	assert.Equal(t, first, second)
}

func TestParser_CustomLabels(t *testing.T) {
	parser := NewParser("Жауап:", "  ", "A:")

	result := parser.Parse("Q?\nжауап: yes\nQ2?\na: no")

	assert.Equal(t, []string{"Жауап:", "A:"}, parser.Labels())
	assert.Equal(t, domain.QuestionSet{
		{Text: "Q?", Answer: "yes"},
		{Text: "Q2?", Answer: "no"},
	}, result.Questions)
}

func TestParser_LabelNotStrippedInSingleLine(t *testing.T) {
	result := NewParser().Parse("Q?Ответ: x")

	assert.Equal(t, "Ответ: x", result.Questions[0].Answer)
}

func TestCutPrefixFold(t *testing.T) {
	rest, ok := cutPrefixFold("ОТВЕТ: 4", "Ответ:")
	assert.True(t, ok)
	assert.Equal(t, " 4", rest)

	_, ok = cutPrefixFold("От", "Ответ:")
	assert.False(t, ok)

	_, ok = cutPrefixFold("Reply: 4", "Answer:")
	assert.False(t, ok)
}
