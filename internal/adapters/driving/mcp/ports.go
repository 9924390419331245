package mcp

import (
	"github.com/custodia-labs/quickprogress/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Parser turns text into questions.
	Parser driving.Parser

	// Decks reads the deck library.
	Decks driving.DeckService

	// Progress reads and writes studied sets.
	Progress driving.ProgressService
}

// Validate ensures all required ports are set.
// Decks and Progress are optional; the tools that need them report an error instead.
func (p *Ports) Validate() error {
	if p.Parser == nil {
		return ErrMissingParser
	}
	return nil
}
