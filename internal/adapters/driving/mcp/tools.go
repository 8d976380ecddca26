package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/geometry"
)

// RectInput is a rectangle in page-relative [0,1] coordinates.
type RectInput struct {
	X      float64 `json:"x" jsonschema:"left edge as a fraction of page width"`
	Y      float64 `json:"y" jsonschema:"top edge as a fraction of page height"`
	Width  float64 `json:"width" jsonschema:"width as a fraction of page width"`
	Height float64 `json:"height" jsonschema:"height as a fraction of page height"`
}

// HighlightOutput is the wire form of a highlight.
type HighlightOutput struct {
	ID        string                  `json:"id"`
	OwnerID   string                  `json:"owner_id"`
	Page      int                     `json:"page"`
	Content   string                  `json:"content"`
	Color     string                  `json:"color"`
	Note      *string                 `json:"note,omitempty"`
	Rects     []domain.NormalizedRect `json:"rects"`
	Zoom      *float64                `json:"zoom,omitempty"`
	CreatedAt string                  `json:"created_at"`
}

// AddInput is the input schema for the highlight_add tool.
type AddInput struct {
	OwnerID string      `json:"owner_id" jsonschema:"document the highlight belongs to"`
	Page    int         `json:"page" jsonschema:"1-based page number"`
	Content string      `json:"content" jsonschema:"the highlighted text"`
	Rects   []RectInput `json:"rects" jsonschema:"raw layout fragments of the selection; they are merged per line before storing"`
	Color   string      `json:"color,omitempty" jsonschema:"yellow, red or blue (default yellow)"`
	Note    *string     `json:"note,omitempty" jsonschema:"optional note"`
	Zoom    *float64    `json:"zoom,omitempty" jsonschema:"optional zoom level the selection was made at"`
}

// ListInput is the input schema for the highlight_list tool.
type ListInput struct {
	OwnerID string `json:"owner_id" jsonschema:"document to list highlights for"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based page number; omit for every page"`
}

// ListOutput is the output schema for the highlight_list tool.
type ListOutput struct {
	Highlights []HighlightOutput `json:"highlights"`
	Count      int               `json:"count"`
}

// PickInput is the input schema for the highlight_pick tool.
type PickInput struct {
	OwnerID string  `json:"owner_id" jsonschema:"document to search"`
	Page    int     `json:"page" jsonschema:"1-based page number"`
	X       float64 `json:"x" jsonschema:"point x as a fraction of page width"`
	Y       float64 `json:"y" jsonschema:"point y as a fraction of page height"`
}

// PickOutput is the output schema for the highlight_pick tool.
type PickOutput struct {
	Found     bool             `json:"found"`
	Highlight *HighlightOutput `json:"highlight,omitempty"`
}

// SetColorInput is the input schema for the highlight_set_color tool.
type SetColorInput struct {
	OwnerID string `json:"owner_id" jsonschema:"document the highlight belongs to"`
	ID      string `json:"id" jsonschema:"highlight id"`
	Color   string `json:"color" jsonschema:"yellow, red or blue"`
}

// SetNoteInput is the input schema for the highlight_set_note tool.
type SetNoteInput struct {
	OwnerID string  `json:"owner_id" jsonschema:"document the highlight belongs to"`
	ID      string  `json:"id" jsonschema:"highlight id"`
	Note    *string `json:"note,omitempty" jsonschema:"new note; omit to clear"`
}

// RemoveInput is the input schema for the highlight_remove tool.
type RemoveInput struct {
	OwnerID string `json:"owner_id" jsonschema:"document the highlight belongs to"`
	ID      string `json:"id" jsonschema:"highlight id"`
}

// UpdateOutput is returned by tools that modify a highlight in place.
type UpdateOutput struct {
	Highlight HighlightOutput `json:"highlight"`
}

// RemoveOutput is the output schema for the highlight_remove tool.
type RemoveOutput struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_add",
		Description: "Highlight text on a page. Overlapping highlights are merged into the oldest one.",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_list",
		Description: "List the highlights of a document, optionally for one page",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_pick",
		Description: "Find the topmost highlight under a point on a page",
	}, s.handlePick)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_set_color",
		Description: "Change the colour of a highlight",
	}, s.handleSetColor)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_set_note",
		Description: "Set or clear the note attached to a highlight",
	}, s.handleSetNote)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_remove",
		Description: "Delete a highlight",
	}, s.handleRemove)
}

func (s *Server) handleAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddInput,
) (*mcp.CallToolResult, HighlightOutput, error) {
	color := domain.DefaultHighlightColor
	if input.Color != "" {
		c, err := domain.ParseHighlightColor(input.Color)
		if err != nil {
			return nil, HighlightOutput{}, err
		}
		color = c
	}

	raw := make([]domain.NormalizedRect, len(input.Rects))
	for i, r := range input.Rects {
		raw[i] = domain.NormalizedRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}
	rects := s.normalizer().Normalize(raw)
	if len(rects) == 0 {
		return nil, HighlightOutput{}, fmt.Errorf("nothing to highlight: %w", domain.ErrEmptySelection)
	}

	h, err := s.ports.Highlight.Add(ctx, domain.Highlight{
		OwnerID: input.OwnerID,
		Content: input.Content,
		Color:   color,
		Note:    input.Note,
		ContextRange: domain.ContextRange{
			Page:  input.Page,
			Rects: rects,
			Zoom:  input.Zoom,
		},
	})
	if err != nil {
		return nil, HighlightOutput{}, err
	}
	return nil, toOutput(h), nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	var (
		highlights []domain.Highlight
		err        error
	)
	if input.Page > 0 {
		highlights, err = s.ports.Highlight.List(ctx, input.OwnerID, input.Page)
	} else {
		highlights, err = s.ports.Highlight.ListAll(ctx, input.OwnerID)
	}
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Highlights: make([]HighlightOutput, len(highlights)),
		Count:      len(highlights),
	}
	for i := range highlights {
		output.Highlights[i] = toOutput(&highlights[i])
	}
	return nil, output, nil
}

func (s *Server) handlePick(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PickInput,
) (*mcp.CallToolResult, PickOutput, error) {
	h, err := s.ports.Highlight.PickAt(ctx, input.OwnerID, input.Page, input.X, input.Y)
	if err != nil {
		return nil, PickOutput{}, err
	}
	if h == nil {
		return nil, PickOutput{}, nil
	}
	out := toOutput(h)
	return nil, PickOutput{Found: true, Highlight: &out}, nil
}

func (s *Server) handleSetColor(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetColorInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	color, err := domain.ParseHighlightColor(input.Color)
	if err != nil {
		return nil, UpdateOutput{}, err
	}
	if err := s.ports.Highlight.SetColor(ctx, input.OwnerID, input.ID, color); err != nil {
		return nil, UpdateOutput{}, err
	}
	return s.updated(ctx, input.OwnerID, input.ID)
}

func (s *Server) handleSetNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetNoteInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	if err := s.ports.Highlight.SetNote(ctx, input.OwnerID, input.ID, input.Note); err != nil {
		return nil, UpdateOutput{}, err
	}
	return s.updated(ctx, input.OwnerID, input.ID)
}

func (s *Server) handleRemove(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveInput,
) (*mcp.CallToolResult, RemoveOutput, error) {
	if err := s.ports.Highlight.Remove(ctx, input.OwnerID, input.ID); err != nil {
		return nil, RemoveOutput{}, err
	}
	return nil, RemoveOutput{ID: input.ID, Removed: true}, nil
}

// updated re-reads a highlight after a mutation.
func (s *Server) updated(ctx context.Context, ownerID, id string) (*mcp.CallToolResult, UpdateOutput, error) {
	h, err := s.ports.Highlight.Get(ctx, ownerID, id)
	if err != nil {
		return nil, UpdateOutput{}, err
	}
	return nil, UpdateOutput{Highlight: toOutput(h)}, nil
}

// normalizer builds a normalizer from the configured thresholds.
func (s *Server) normalizer() *geometry.Normalizer {
	if s.ports.Settings == nil {
		return geometry.DefaultNormalizer()
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return geometry.DefaultNormalizer()
	}
	return geometry.NewNormalizer(settings)
}

func toOutput(h *domain.Highlight) HighlightOutput {
	rects := h.ContextRange.Rects
	if rects == nil {
		rects = []domain.NormalizedRect{}
	}
	return HighlightOutput{
		ID:        h.ID,
		OwnerID:   h.OwnerID,
		Page:      h.Page(),
		Content:   h.Content,
		Color:     h.Color.String(),
		Note:      h.Note,
		Rects:     rects,
		Zoom:      h.ContextRange.Zoom,
		CreatedAt: h.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
