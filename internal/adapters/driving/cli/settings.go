package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quickprogress/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure study defaults, parsing, and progress storage.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by its config key.

Keys:
  study.random_order         true | false
  study.hide_answers         true | false
  parser.answer_labels       comma separated, e.g. "Ответ:,Answer:"
  library.fallback_encoding  e.g. windows-1251, koi8-r
  storage.backend            sqlite | toml | redis | memory
  storage.redis_url          redis://host:port/db
  ui.language                en | ru | kk

Storage changes apply the next time quickprogress starts.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure study and storage settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Study]")
	cmd.Printf("  Random order: %s\n", onOff(settings.Study.RandomOrder))
	cmd.Printf("  Hide answers: %s\n", onOff(settings.Study.HideAnswers))
	cmd.Println()

	cmd.Println("[Parser]")
	cmd.Printf("  Answer labels: %s\n", strings.Join(settings.Parser.AnswerLabels, ", "))
	cmd.Println()

	cmd.Println("[Library]")
	cmd.Printf("  Fallback encoding: %s\n", settings.Library.FallbackEncoding)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.Backend == domain.StorageRedis {
		cmd.Printf("  Redis URL: %s\n", maskURLPassword(settings.Storage.RedisURL))
	}
	if !settings.Storage.Backend.IsDurable() {
		cmd.Println("  Progress is lost when quickprogress exits.")
	}
	cmd.Println()

	cmd.Println("[Interface]")
	cmd.Printf("  Language: %s\n", settings.Language)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'quickprogress settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (known keys: %s)", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("quickprogress Settings Wizard")
	cmd.Println("=============================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Study Defaults")
	cmd.Println("----------------------")
	settings.Study.RandomOrder = askYesNo(cmd, reader, "Shuffle questions by default?", settings.Study.RandomOrder)
	settings.Study.HideAnswers = askYesNo(cmd, reader, "Hide answers until revealed?", settings.Study.HideAnswers)
	cmd.Println()

	cmd.Println("Step 2: Progress Storage")
	cmd.Println("------------------------")
	backends := domain.AllStorageBackends()
	defaultChoice := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Storage.Backend {
			defaultChoice = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultChoice)
	settings.Storage.Backend = backends[parseChoice(readLine(reader), len(backends), defaultChoice)-1]

	if settings.Storage.Backend == domain.StorageRedis {
		cmd.Printf("Redis URL [%s]: ", maskURLPassword(settings.Storage.RedisURL))
		if input := readLine(reader); input != "" {
			settings.Storage.RedisURL = input
		}
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved. Storage changes apply the next time quickprogress starts.")
	return nil
}

// Helper functions.

func askYesNo(cmd *cobra.Command, reader *bufio.Reader, question string, current bool) bool {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	cmd.Printf("%s [%s]: ", question, hint)
	switch strings.ToLower(readLine(reader)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return current
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// maskURLPassword hides the password of a connection URL.
func maskURLPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
