package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse plain text into questions without importing it",
	Long: `Parses a UTF-8 text file (or standard input when no file or "-" is given)
and prints the questions found. Nothing is stored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output questions as JSON")
	rootCmd.AddCommand(parseCmd)
}

// parseOutput is the JSON shape of the parse command.
type parseOutput struct {
	Questions []domain.IndexedQuestion `json:"questions"`
	Skipped   int                      `json:"skipped"`
}

func runParse(cmd *cobra.Command, args []string) error {
	if parserService == nil {
		return errors.New("parser not configured")
	}

	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result := parserService.Parse(string(data))

	if parseJSON {
		return printJSON(cmd, parseOutput{Questions: result.Questions.Indexed(), Skipped: result.Skipped})
	}

	if result.Questions.Len() == 0 {
		cmd.Println("No questions found.")
	} else {
		printQuestions(cmd, result.Questions)
		cmd.Println()
		cmd.Printf("Questions: %d\n", result.Questions.Len())
	}
	if result.Skipped > 0 {
		cmd.Printf("Skipped %d unrecognised lines.\n", result.Skipped)
	}
	return nil
}
