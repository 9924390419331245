package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for quickprogress resources.
	uriScheme = "quickprogress://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "decks",
		Name:        "decks",
		Description: "List of all decks in the library",
		MIMEType:    "application/json",
	}, s.handleDecksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "decks/{key}",
		Name:        "deck-questions",
		Description: "Questions of a deck in two-line text form",
		MIMEType:    "text/plain",
	}, s.handleDeckResource)
}

// handleDecksResource returns a list of all decks.
func (s *Server) handleDecksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Decks == nil {
		return textResult(req.Params.URI, "application/json", "[]"), nil
	}

	decks, err := s.ports.Decks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}

	type deckInfo struct {
		Key    string `json:"key"`
		Name   string `json:"name"`
		Format string `json:"format"`
		URI    string `json:"uri"`
	}

	infos := make([]deckInfo, len(decks))
	for i := range decks {
		infos[i] = deckInfo{
			Key:    decks[i].Key,
			Name:   decks[i].Name,
			Format: decks[i].Format,
			URI:    uriScheme + "decks/" + decks[i].Key,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling decks: %w", err)
	}

	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleDeckResource returns the parsed questions of one deck.
func (s *Server) handleDeckResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Decks == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	key := extractDeckKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	loaded, err := s.ports.Decks.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	var b strings.Builder
	for i, q := range loaded.Questions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(q.Text)
		b.WriteString("\n")
		b.WriteString(q.Answer)
		b.WriteString("\n")
	}

	return textResult(req.Params.URI, "text/plain", b.String()), nil
}

// extractDeckKey extracts the key from a URI like quickprogress://decks/{key}.
func extractDeckKey(uri string) string {
	const prefix = uriScheme + "decks/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	key := strings.TrimPrefix(uri, prefix)
	if strings.Contains(key, "/") {
		return ""
	}
	return key
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}
