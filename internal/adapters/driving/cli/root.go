// Package cli provides the cobra command tree for quickprogress.
//
// Services are injected with SetServices before Execute. Every command checks
// that the services it needs are configured and fails with a clear error
// otherwise, which keeps commands testable with hand-written mocks.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
	"github.com/custodia-labs/quickprogress/internal/logger"
)

// version is set at build time via ldflags or SetVersion.
var version = "dev"

var verbose bool

// Services configured by SetServices.
var (
	parserService   driving.Parser
	deckService     driving.DeckService
	progressService driving.ProgressService
	studyService    driving.StudyService
	settingsService driving.SettingsService
)

// Services groups the driving ports used by commands.
type Services struct {
	Parser   driving.Parser
	Decks    driving.DeckService
	Progress driving.ProgressService
	Study    driving.StudyService
	Settings driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "quickprogress",
	Short: "Study flashcards from plain text and track your progress",
	Long: `quickprogress turns plain question/answer text into flashcards and
remembers which questions you have already studied.

Two layouts are recognised, one question per entry:

  Capital of France?Paris          single line, answer after the '?'

  What is 2+2?                     question line ending in '?'
  Answer: 4                        answer on the next line, label optional

Import files into the library with 'deck import', then study them with
'study' or the interactive 'tui'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// SetServices injects the driving ports used by commands.
func SetServices(s Services) {
	parserService = s.Parser
	deckService = s.Decks
	progressService = s.Progress
	studyService = s.Study
	settingsService = s.Settings
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
