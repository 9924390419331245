package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset study progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show [deck]",
	Short: "Show studied/total counts for one deck or all decks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset [deck]",
	Short: "Forget which questions of a deck were studied",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressReset,
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
	rootCmd.AddCommand(progressCmd)
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	if deckService == nil || progressService == nil {
		return errors.New("progress service not configured")
	}

	var keys []string
	if len(args) == 1 {
		keys = args
	} else {
		decks, err := deckService.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list decks: %w", err)
		}
		for i := range decks {
			keys = append(keys, decks[i].Key)
		}
	}

	if len(keys) == 0 {
		cmd.Println("No decks in the library.")
		return nil
	}

	for _, key := range keys {
		loaded, err := deckService.Load(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("failed to load deck %s: %w", key, err)
		}

		summary, err := progressService.Summary(cmd.Context(), loaded.Questions, key)
		if err != nil && !domain.IsWarning(err) {
			return fmt.Errorf("failed to read progress for %s: %w", key, err)
		}

		cmd.Printf("  %-24s %8s  %5.1f%%\n", key, summary.String(), summary.Percent())
		if err != nil {
			cmd.Printf("    Warning: %v\n", err)
		}
	}
	return nil
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}

	if err := progressService.ResetProgress(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}

	cmd.Printf("Progress for %s reset.\n", args[0])
	return nil
}
