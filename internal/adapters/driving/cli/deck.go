package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage the deck library",
	Long:  `Import, list, inspect, or delete question files in the library.`,
}

var deckImportCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import files into the library",
	Long: `Copies each file into the library under its base name. Importing a file
whose name matches an existing deck replaces it; progress is kept.

Supported formats: txt, csv, md, html, docx, pdf.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDeckImport,
}

var deckAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a deck from text on stdin",
	Long: `Reads question/answer text from standard input and stores it as a deck.

Example:
  printf 'Capital of France?Paris\n' | quickprogress deck add geography`,
	Args: cobra.ExactArgs(1),
	RunE: runDeckAdd,
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks",
	Args:  cobra.NoArgs,
	RunE:  runDeckList,
}

var deckShowCmd = &cobra.Command{
	Use:   "show [deck]",
	Short: "Show the questions parsed from a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckShow,
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete [deck]",
	Short: "Delete a deck and its progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckDelete,
}

var (
	deckListJSON bool
	deckShowJSON bool
)

func init() {
	deckListCmd.Flags().BoolVar(&deckListJSON, "json", false, "output decks as JSON")
	deckShowCmd.Flags().BoolVar(&deckShowJSON, "json", false, "output questions as JSON")

	deckCmd.AddCommand(deckImportCmd)
	deckCmd.AddCommand(deckAddCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckDeleteCmd)
	rootCmd.AddCommand(deckCmd)
}

func runDeckImport(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	var failed int
	for _, path := range args {
		deck, err := deckService.Import(cmd.Context(), path)
		if err != nil {
			failed++
			cmd.PrintErrf("  %s: %v\n", path, err)
			continue
		}
		cmd.Printf("Imported %s as deck %q (%s, %d bytes)\n", path, deck.Key, deck.Format, deck.SizeBytes)
	}

	if failed > 0 {
		return fmt.Errorf("failed to import %d of %d files", failed, len(args))
	}
	return nil
}

func runDeckAdd(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	text, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	deck, err := deckService.ImportText(cmd.Context(), args[0], string(text))
	if err != nil {
		return fmt.Errorf("failed to add deck: %w", err)
	}

	cmd.Printf("Added deck %q\n", deck.Key)
	return nil
}

func runDeckList(cmd *cobra.Command, _ []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	decks, err := deckService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	if deckListJSON {
		return printJSON(cmd, decks)
	}

	if len(decks) == 0 {
		cmd.Println("No decks in the library. Import one with 'quickprogress deck import <file>'.")
		return nil
	}

	cmd.Println("Decks:")
	cmd.Println()
	for i := range decks {
		cmd.Printf("  %s\n", decks[i].Key)
		cmd.Printf("    File:     %s\n", decks[i].Name)
		cmd.Printf("    Imported: %s\n", decks[i].ImportedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Println()
	cmd.Printf("Total: %d decks\n", len(decks))
	return nil
}

func runDeckShow(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	loaded, err := deckService.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load deck: %w", err)
	}

	if deckShowJSON {
		return printJSON(cmd, loaded.Questions.Indexed())
	}

	cmd.Printf("Deck: %s (%s)\n\n", loaded.Deck.Key, loaded.Deck.Name)
	printQuestions(cmd, loaded.Questions)
	cmd.Println()
	cmd.Printf("Questions: %d", loaded.Questions.Len())
	if loaded.Skipped > 0 {
		cmd.Printf("  (skipped %d unrecognised lines)", loaded.Skipped)
	}
	cmd.Println()
	return nil
}

func runDeckDelete(cmd *cobra.Command, args []string) error {
	if deckService == nil {
		return errors.New("deck service not configured")
	}

	err := deckService.Delete(cmd.Context(), args[0])
	if err != nil && !domain.IsWarning(err) {
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	cmd.Printf("Deck %s deleted.\n", args[0])
	if err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func printQuestions(cmd *cobra.Command, set domain.QuestionSet) {
	for i, q := range set {
		cmd.Printf("  [%d] %s\n", i+1, q.Text)
		cmd.Printf("      %s\n", q.Answer)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
