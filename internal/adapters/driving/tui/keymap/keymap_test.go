package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"select", km.Select, []string{"enter"}},
		{"import", km.Import, []string{"a"}},
		{"delete", km.Delete, []string{"d"}},
		{"refresh", km.Refresh, []string{"ctrl+r"}},
		{"reveal", km.Reveal, []string{" ", "enter"}},
		{"prev", km.Prev, []string{"left"}},
		{"next", km.Next, []string{"right"}},
		{"mark", km.Mark, []string{"m"}},
		{"random", km.Random, []string{"r"}},
		{"hide", km.Hide, []string{"h"}},
		{"reset", km.Reset, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_StudyBindingsDoNotCollide(t *testing.T) {
	km := DefaultKeyMap()
	study := km.StudyHelp()

	seen := map[string]string{}
	for _, b := range study {
		for _, k := range b.Keys() {
			prev, dup := seen[k]
			assert.False(t, dup, "key %q bound to %s and %s", k, prev, b.Help().Desc)
			seen[k] = b.Help().Desc
		}
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Len(t, km.DecksHelp(), 4)
	assert.Len(t, km.StudyHelp(), 8)
	assert.Len(t, km.CompleteHelp(), 2)
	assert.Len(t, km.FullHelp(), 5)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("m", km.Mark))
	assert.True(t, Matches(" ", km.Reveal))
	assert.True(t, Matches("right", km.Next))
	assert.False(t, Matches("M", km.Mark))
	assert.False(t, Matches("", km.Mark))
}
