package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quickprogress/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
	"github.com/custodia-labs/quickprogress/internal/core/services"
	"github.com/custodia-labs/quickprogress/internal/normalisers"
	"github.com/custodia-labs/quickprogress/internal/normalisers/plaintext"
)

// testStack is a full in-memory service stack.
type testStack struct {
	Services
	progressStore driven.ProgressStore
}

func newTestStack() *testStack {
	return newTestStackWith(memory.NewProgressStore())
}

func newTestStackWith(progressStore driven.ProgressStore) *testStack {
	parser := services.NewParser()
	tracker := services.NewProgressTracker(progressStore, nil)
	settings := services.NewSettingsService(memory.NewConfigStore())
	decks := services.NewDeckService(
		memory.NewDeckStore(),
		normalisers.NewRegistry(plaintext.New("windows-1251")),
		parser,
		tracker,
		nil,
	)

	return &testStack{
		Services: Services{
			Parser:   parser,
			Decks:    decks,
			Progress: tracker,
			Study:    services.NewStudyService(decks, tracker, settings, nil),
			Settings: settings,
		},
		progressStore: progressStore,
	}
}

// withServices installs s for the duration of the test.
func withServices(t *testing.T, s Services) {
	t.Helper()
	prev := Services{
		Parser:   parserService,
		Decks:    deckService,
		Progress: progressService,
		Study:    studyService,
		Settings: settingsService,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(prev) })
}

// withStack installs a fresh in-memory stack and returns it.
func withStack(t *testing.T) *testStack {
	t.Helper()
	stack := newTestStack()
	withServices(t, stack.Services)
	return stack
}

// failingStore is a progress store whose writes always fail.
type failingStore struct {
	*memory.ProgressStore
}

func newFailingStore() *failingStore {
	return &failingStore{ProgressStore: memory.NewProgressStore()}
}

func (s *failingStore) Put(context.Context, string, []string) error {
	return errors.New("disk full")
}

func (s *failingStore) Remove(context.Context, string) error {
	return errors.New("disk full")
}

// withTerminal overrides terminal detection for the duration of the test.
func withTerminal(t *testing.T, isTerminal bool) {
	t.Helper()
	prev := stdinIsTerminal
	stdinIsTerminal = func() bool { return isTerminal }
	t.Cleanup(func() { stdinIsTerminal = prev })
}

// executeCommand runs the root command with args and returns combined output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default so package-level
// flag variables do not leak between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// writeDeckFile writes content to name inside a temp dir and returns the path.
func writeDeckFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const biologyText = `What is DNA?Genetic material
What is a cell?
Answer: The basic unit of life
Which organelle makes energy?Mitochondria
`
