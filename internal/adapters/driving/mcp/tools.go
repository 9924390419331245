package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

// QuestionOutput is one question with its stable index.
type QuestionOutput struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

// ParseTextInput is the input schema for the parse_text tool.
type ParseTextInput struct {
	Text string `json:"text" jsonschema:"question/answer text; one 'Question?Answer' per line or a question line ending in '?' followed by its answer line"`
}

// ParseTextOutput is the output schema for the parse_text tool.
type ParseTextOutput struct {
	Questions []QuestionOutput `json:"questions"`
	Count     int              `json:"count"`
	Skipped   int              `json:"skipped"`
}

// ListDecksInput is the input schema for the list_decks tool.
type ListDecksInput struct{}

// DeckOutput is a deck together with its progress.
type DeckOutput struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Format  string `json:"format"`
	Studied int    `json:"studied"`
	Total   int    `json:"total"`
}

// ListDecksOutput is the output schema for the list_decks tool.
type ListDecksOutput struct {
	Decks []DeckOutput `json:"decks"`
	Count int          `json:"count"`
}

// RemainingInput is the input schema for the remaining_questions tool.
type RemainingInput struct {
	Deck   string `json:"deck" jsonschema:"deck key as shown by list_decks"`
	Random bool   `json:"random,omitempty" jsonschema:"shuffle the remaining questions"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of questions to return (default all)"`
}

// RemainingOutput is the output schema for the remaining_questions tool.
type RemainingOutput struct {
	Questions []QuestionOutput `json:"questions"`
	Remaining int              `json:"remaining"`
	Studied   int              `json:"studied"`
	Total     int              `json:"total"`
	Warning   string           `json:"warning,omitempty"`
}

// MarkStudiedInput is the input schema for the mark_studied tool.
// Either Index or Question (with Answer) identifies the question.
type MarkStudiedInput struct {
	Deck     string `json:"deck" jsonschema:"deck key"`
	Index    *int   `json:"index,omitempty" jsonschema:"question index as returned by remaining_questions"`
	Question string `json:"question,omitempty" jsonschema:"question text, used instead of index; duplicates resolve to the first copy"`
	Answer   string `json:"answer,omitempty" jsonschema:"answer text of the question given in question"`
}

// ProgressOutput is the output schema for tools that report progress.
type ProgressOutput struct {
	Deck     string  `json:"deck"`
	Studied  int     `json:"studied"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
	Complete bool    `json:"complete"`
	Warning  string  `json:"warning,omitempty"`
}

// DeckInput is the input schema for tools that take only a deck key.
type DeckInput struct {
	Deck string `json:"deck" jsonschema:"deck key"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_text",
		Description: "Parse question/answer text into flashcards without storing it",
	}, s.handleParseText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_decks",
		Description: "List decks in the library with studied/total counts",
	}, s.handleListDecks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remaining_questions",
		Description: "Return the questions of a deck that have not been studied yet",
	}, s.handleRemaining)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "mark_studied",
		Description: "Mark one question of a deck as studied, by index or by question and answer text",
	}, s.handleMarkStudied)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reset_progress",
		Description: "Forget which questions of a deck were studied",
	}, s.handleResetProgress)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "progress_summary",
		Description: "Report studied/total counts for a deck",
	}, s.handleProgressSummary)
}

func (s *Server) handleParseText(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseTextInput,
) (*mcp.CallToolResult, ParseTextOutput, error) {
	result := s.ports.Parser.Parse(input.Text)

	return nil, ParseTextOutput{
		Questions: toQuestionOutputs(result.Questions.Indexed()),
		Count:     result.Questions.Len(),
		Skipped:   result.Skipped,
	}, nil
}

func (s *Server) handleListDecks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDecksInput,
) (*mcp.CallToolResult, ListDecksOutput, error) {
	if s.ports.Decks == nil {
		return nil, ListDecksOutput{}, ErrMissingDeckService
	}

	decks, err := s.ports.Decks.List(ctx)
	if err != nil {
		return nil, ListDecksOutput{}, err
	}

	output := ListDecksOutput{Decks: make([]DeckOutput, 0, len(decks))}
	for i := range decks {
		out := DeckOutput{
			Key:    decks[i].Key,
			Name:   decks[i].Name,
			Format: decks[i].Format,
		}
		if summary, err := s.summary(ctx, decks[i].Key); err == nil || domain.IsWarning(err) {
			out.Studied = summary.Studied
			out.Total = summary.Total
		}
		output.Decks = append(output.Decks, out)
	}
	output.Count = len(output.Decks)

	return nil, output, nil
}

func (s *Server) handleRemaining(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemainingInput,
) (*mcp.CallToolResult, RemainingOutput, error) {
	loaded, err := s.load(ctx, input.Deck)
	if err != nil {
		return nil, RemainingOutput{}, err
	}

	remaining, err := s.ports.Progress.GetRemaining(ctx, loaded.Questions, input.Deck, input.Random)
	if err != nil && !domain.IsWarning(err) {
		return nil, RemainingOutput{}, err
	}

	output := RemainingOutput{
		Remaining: len(remaining),
		Total:     loaded.Questions.Len(),
		Studied:   loaded.Questions.Len() - len(remaining),
		Warning:   warningText(err),
	}
	if input.Limit > 0 && len(remaining) > input.Limit {
		remaining = remaining[:input.Limit]
	}
	output.Questions = toQuestionOutputs(remaining)

	return nil, output, nil
}

func (s *Server) handleMarkStudied(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MarkStudiedInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	loaded, err := s.load(ctx, input.Deck)
	if err != nil {
		return nil, ProgressOutput{}, err
	}

	if input.Question != "" {
		return s.markByContent(ctx, loaded.Questions, input)
	}
	if input.Index == nil {
		return nil, ProgressOutput{}, fmt.Errorf("%w: index or question is required", domain.ErrInvalidInput)
	}

	studied, err := s.ports.Progress.MarkStudied(ctx, loaded.Questions, input.Deck, *input.Index)
	if err != nil && !domain.IsWarning(err) {
		return nil, ProgressOutput{}, err
	}

	summary := domain.ProgressSummary{
		Studied: studied.CountWithin(loaded.Questions.Len()),
		Total:   loaded.Questions.Len(),
	}
	return nil, progressOutput(input.Deck, summary, err), nil
}

// markByContent marks the first question matching text and answer.
func (s *Server) markByContent(
	ctx context.Context,
	set domain.QuestionSet,
	input MarkStudiedInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	question := domain.Question{Text: input.Question, Answer: input.Answer}
	_, markErr := s.ports.Progress.MarkCurrentStudied(ctx, set, input.Deck, question)
	if markErr != nil && !domain.IsWarning(markErr) {
		return nil, ProgressOutput{}, markErr
	}

	summary, err := s.ports.Progress.Summary(ctx, set, input.Deck)
	if err != nil && !domain.IsWarning(err) {
		return nil, ProgressOutput{}, err
	}
	if markErr != nil {
		err = markErr
	}
	return nil, progressOutput(input.Deck, summary, err), nil
}

func (s *Server) handleResetProgress(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeckInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	loaded, err := s.load(ctx, input.Deck)
	if err != nil {
		return nil, ProgressOutput{}, err
	}

	err = s.ports.Progress.ResetProgress(ctx, input.Deck)
	if err != nil && !domain.IsWarning(err) {
		return nil, ProgressOutput{}, err
	}

	summary := domain.ProgressSummary{Total: loaded.Questions.Len()}
	return nil, progressOutput(input.Deck, summary, err), nil
}

func (s *Server) handleProgressSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeckInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	summary, err := s.summary(ctx, input.Deck)
	if err != nil && !domain.IsWarning(err) {
		return nil, ProgressOutput{}, err
	}
	return nil, progressOutput(input.Deck, summary, err), nil
}

// load checks the deck and progress ports and parses the deck.
func (s *Server) load(ctx context.Context, key string) (*domain.LoadedDeck, error) {
	if s.ports.Decks == nil {
		return nil, ErrMissingDeckService
	}
	if s.ports.Progress == nil {
		return nil, ErrMissingProgressService
	}
	return s.ports.Decks.Load(ctx, key)
}

func (s *Server) summary(ctx context.Context, key string) (domain.ProgressSummary, error) {
	loaded, err := s.load(ctx, key)
	if err != nil {
		return domain.ProgressSummary{}, err
	}
	return s.ports.Progress.Summary(ctx, loaded.Questions, key)
}

func toQuestionOutputs(questions []domain.IndexedQuestion) []QuestionOutput {
	out := make([]QuestionOutput, len(questions))
	for i, q := range questions {
		out[i] = QuestionOutput{Index: q.Index, Text: q.Text, Answer: q.Answer}
	}
	return out
}

func progressOutput(deck string, summary domain.ProgressSummary, warning error) ProgressOutput {
	return ProgressOutput{
		Deck:     deck,
		Studied:  summary.Studied,
		Total:    summary.Total,
		Percent:  summary.Percent(),
		Complete: summary.Complete(),
		Warning:  warningText(warning),
	}
}

func warningText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
