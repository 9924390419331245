// Package driving declares what the CLI, TUI and MCP adapters may ask of the
// core: parse text, manage decks, open study sessions, track progress and
// edit settings. The services package implements every port.
package driving
