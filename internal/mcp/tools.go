package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/scrummycpro/the-quarries/internal/core"
)

// RecordService is the saturn record surface exposed as tools.
// Implementations: core.RecordService
type RecordService interface {
	Log(ctx context.Context, prompt, response string) (*core.Record, error)
	Search(ctx context.Context, keyword string) (*core.SearchOutcome, error)
	Export(ctx context.Context, id int64) (*core.Export, error)
}

// NoteService is the read-only note surface exposed as tools.
// Implementations: core.NoteService
type NoteService interface {
	List(ctx context.Context) ([]core.Note, error)
	Get(ctx context.Context, id int64) (*core.Note, error)
}

// ToolHandler handles MCP tool calls
type ToolHandler struct {
	records RecordService
	notes   NoteService
}

// NewToolHandler creates a new tool handler
func NewToolHandler(records RecordService, notes NoteService) *ToolHandler {
	return &ToolHandler{records: records, notes: notes}
}

// Handle dispatches a tool call to the appropriate handler
func (h *ToolHandler) Handle(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "saturn_search":
		return h.handleSearch(ctx, args)
	case "saturn_export":
		return h.handleExport(ctx, args)
	case "saturn_log":
		return h.handleLog(ctx, args)
	case "notes_list":
		return h.handleNotesList(ctx)
	case "note_get":
		return h.handleNoteGet(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

const (
	maxContentSize = 1 << 20  // 1MB
	maxQuerySize   = 10 << 10 // 10KB
)

func (h *ToolHandler) handleSearch(ctx context.Context, args map[string]any) (any, error) {
	keyword, _ := args["keyword"].(string)
	if len(keyword) > maxQuerySize {
		return nil, fmt.Errorf("keyword exceeds maximum size of 10KB")
	}

	outcome, err := h.records.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"keyword":   keyword,
		"performed": outcome.Performed,
		"results":   outcome.Records,
		"count":     len(outcome.Records),
	}, nil
}

func (h *ToolHandler) handleExport(ctx context.Context, args map[string]any) (any, error) {
	id, err := idArg(args)
	if err != nil {
		return nil, err
	}

	export, err := h.records.Export(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"filename": export.Filename,
		"body":     export.Body,
	}, nil
}

func (h *ToolHandler) handleLog(ctx context.Context, args map[string]any) (any, error) {
	prompt, _ := args["prompt"].(string)
	response, _ := args["response"].(string)

	if prompt == "" || response == "" {
		return nil, fmt.Errorf("prompt and response are required")
	}
	if len(prompt)+len(response) > maxContentSize {
		return nil, fmt.Errorf("content exceeds maximum size of 1MB")
	}

	rec, err := h.records.Log(ctx, prompt, response)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":      rec.ID,
		"message": fmt.Sprintf("Logged record %d", rec.ID),
	}, nil
}

func (h *ToolHandler) handleNotesList(ctx context.Context) (any, error) {
	notes, err := h.notes.List(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"notes": notes,
		"count": len(notes),
	}, nil
}

func (h *ToolHandler) handleNoteGet(ctx context.Context, args map[string]any) (any, error) {
	id, err := idArg(args)
	if err != nil {
		return nil, err
	}
	return h.notes.Get(ctx, id)
}

// idArg reads "id" as either a JSON number or a numeric string.
func idArg(args map[string]any) (int64, error) {
	switch v := args["id"].(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("id must be an integer")
		}
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("id must be an integer")
		}
		return id, nil
	case nil:
		return 0, fmt.Errorf("id is required")
	default:
		return 0, fmt.Errorf("id must be an integer")
	}
}

// toolDefinitions returns the MCP tool definitions
func toolDefinitions() []Tool {
	idSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "integer",
				"description": "Numeric id",
			},
		},
		"required": []string{"id"},
	}

	return []Tool{
		{
			Name:        "saturn_search",
			Description: "Search logged prompt/response records for a keyword",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"keyword": map[string]any{
						"type":        "string",
						"description": "Substring matched against timestamp, prompt and response",
					},
				},
				"required": []string{"keyword"},
			},
		},
		{
			Name:        "saturn_export",
			Description: "Render a logged record as a text document",
			InputSchema: idSchema,
		},
		{
			Name:        "saturn_log",
			Description: "Log a prompt/response exchange",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{
						"type":        "string",
						"description": "The prompt text",
					},
					"response": map[string]any{
						"type":        "string",
						"description": "The response text",
					},
				},
				"required": []string{"prompt", "response"},
			},
		},
		{
			Name:        "notes_list",
			Description: "List all notes",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "note_get",
			Description: "Get a note and its attachments by id",
			InputSchema: idSchema,
		},
	}
}
