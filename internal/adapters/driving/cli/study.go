package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

var (
	studyRandom      bool
	studyShowAnswers bool
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var studyCmd = &cobra.Command{
	Use:   "study [deck]",
	Short: "Study a deck in the terminal",
	Long: `Shows the unstudied questions of a deck one at a time.

Commands (type and press Enter):
  <Enter>  reveal the answer, or go to the next question
  n / p    next / previous question
  m        mark the current question as studied
  r        toggle random order (restarts from the first question)
  h        toggle hidden answers
  x        reset progress for this deck
  q        quit

Use 'quickprogress tui' for a full-screen version.`,
	Args: cobra.ExactArgs(1),
	RunE: runStudy,
}

func init() {
	studyCmd.Flags().BoolVarP(&studyRandom, "random", "r", false, "shuffle the remaining questions")
	studyCmd.Flags().BoolVar(&studyShowAnswers, "show-answers", false, "show answers without revealing")
	rootCmd.AddCommand(studyCmd)
}

func runStudy(cmd *cobra.Command, args []string) error {
	if studyService == nil {
		return errors.New("study service not configured")
	}
	if !stdinIsTerminal() {
		return errors.New("study needs an interactive terminal; use 'deck show' to print questions")
	}

	session, err := studyService.Open(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to open deck: %w", err)
	}

	if cmd.Flags().Changed("random") {
		session.ToggleRandom(studyRandom)
	}
	if cmd.Flags().Changed("show-answers") {
		session.SetHideAnswers(!studyShowAnswers)
	}

	return studyLoop(cmd, session, bufio.NewReader(cmd.InOrStdin()))
}

// studyLoop drives a session from line commands until quit or end of input.
func studyLoop(cmd *cobra.Command, session driving.StudySession, reader *bufio.Reader) error {
	showWarning(cmd, session)
	renderStudy(cmd, session)

	for {
		cmd.Print("> ")
		line, readErr := reader.ReadString('\n')
		input := strings.ToLower(strings.TrimSpace(line))

		if readErr != nil && input == "" {
			cmd.Println()
			return nil
		}

		switch input {
		case "q", "quit":
			return nil
		case "":
			if session.State() == domain.StateAnswerHidden {
				session.Reveal()
			} else if !session.Next() {
				cmd.Println("Last question. Mark it with 'm' or go back with 'p'.")
				continue
			}
		case "n":
			if !session.Next() {
				cmd.Println("Already at the last question.")
				continue
			}
		case "p":
			if !session.Prev() {
				cmd.Println("Already at the first question.")
				continue
			}
		case "m":
			outcome, err := session.MarkStudied(cmd.Context())
			if errors.Is(err, domain.ErrSessionComplete) {
				cmd.Println("Nothing left to mark. Reset with 'x' or quit with 'q'.")
				continue
			}
			if err != nil && !domain.IsWarning(err) {
				return fmt.Errorf("failed to mark question: %w", err)
			}
			showWarning(cmd, session)
			if outcome == domain.OutcomeCompleted {
				cmd.Println("All questions studied!")
			}
		case "r":
			session.ToggleRandom(!session.RandomOrder())
			cmd.Printf("Random order: %s\n", onOff(session.RandomOrder()))
		case "h":
			session.SetHideAnswers(!session.HideAnswers())
			cmd.Printf("Hide answers: %s\n", onOff(session.HideAnswers()))
		case "x":
			if err := session.Reset(cmd.Context()); err != nil && !domain.IsWarning(err) {
				return fmt.Errorf("failed to reset progress: %w", err)
			}
			showWarning(cmd, session)
			cmd.Println("Progress reset.")
		default:
			cmd.Println("Unknown command. Use Enter, n, p, m, r, h, x, or q.")
			continue
		}

		renderStudy(cmd, session)

		if readErr != nil {
			return nil
		}
	}
}

func renderStudy(cmd *cobra.Command, session driving.StudySession) {
	cmd.Println()
	q, ok := session.Current()
	if !ok {
		cmd.Printf("%s studied. Press x to start over or q to quit.\n", session.Summary().String())
		return
	}

	current, remaining := session.Position()
	cmd.Printf("[%d/%d]  studied %s\n", current, remaining, session.Summary().String())
	cmd.Printf("Q: %s\n", q.Text)
	if session.State() == domain.StateAnswerShown {
		cmd.Printf("A: %s\n", q.Answer)
	} else {
		cmd.Println("A: (press Enter to reveal)")
	}
}

func showWarning(cmd *cobra.Command, session driving.StudySession) {
	if w := session.Warning(); w != nil {
		cmd.Printf("Warning: %v\n", w)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
