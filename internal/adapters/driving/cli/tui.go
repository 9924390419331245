package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quickprogress/internal/adapters/driving/tui"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for quickprogress.

The TUI lists your decks with their progress and walks through the
remaining questions one card at a time.

Controls:
  ↑/k, ↓/j - Navigate decks
  Enter    - Open deck
  Space    - Show answer
  ←/→      - Previous / next question
  m        - Mark studied
  r / h    - Toggle random order / hidden answers
  x        - Reset progress
  Esc      - Back
  ?        - Help`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI from the configured services.
func newTUIApp() (*tui.App, error) {
	ports := &tui.Ports{
		Decks:    deckService,
		Study:    studyService,
		Progress: progressService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithVersion(version), nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	if !stdinIsTerminal() {
		return errors.New("tui requires an interactive terminal")
	}

	app, err := newTUIApp()
	if err != nil {
		return err
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	// Log lines would corrupt the alt screen.
	logger.SetQuiet(true)
	defer logger.SetQuiet(false)

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
