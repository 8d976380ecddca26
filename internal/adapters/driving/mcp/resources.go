package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for inkmark resources.
	uriScheme = "inkmark://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{ownerId}/highlights",
		Name:        "document-highlights",
		Description: "Every highlight of a document, ordered by page and age",
		MIMEType:    "application/json",
	}, s.handleHighlightsResource)
}

// handleHighlightsResource returns every highlight of one document.
func (s *Server) handleHighlightsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract ownerId from URI: inkmark://documents/{ownerId}/highlights
	ownerID := extractOwnerID(req.Params.URI)
	if ownerID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	highlights, err := s.ports.Highlight.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing highlights: %w", err)
	}

	infos := make([]HighlightOutput, len(highlights))
	for i := range highlights {
		infos[i] = toOutput(&highlights[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling highlights: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractOwnerID extracts the owner ID from a URI like
// inkmark://documents/{ownerId}/highlights.
func extractOwnerID(uri string) string {
	const prefix = uriScheme + "documents/"
	const suffix = "/highlights"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
