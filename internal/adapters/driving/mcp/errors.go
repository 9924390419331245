// Package mcp provides an MCP (Model Context Protocol) server adapter for quickprogress.
// It lets AI assistants parse flashcard text, browse decks, and record study progress.
package mcp

import "errors"

var (
	// ErrMissingParser is returned when the parser is not provided.
	ErrMissingParser = errors.New("mcp: parser is required")

	// ErrMissingDeckService is returned by deck tools when no deck service is configured.
	ErrMissingDeckService = errors.New("mcp: deck service not configured")

	// ErrMissingProgressService is returned by progress tools when no progress service is configured.
	ErrMissingProgressService = errors.New("mcp: progress service not configured")
)
