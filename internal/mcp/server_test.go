package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrummycpro/the-quarries/internal/core"
)

type mockRecords struct {
	logged []core.Record
}

func (m *mockRecords) Log(ctx context.Context, prompt, response string) (*core.Record, error) {
	rec := core.Record{ID: int64(len(m.logged) + 1), Prompt: prompt, Response: response}
	m.logged = append(m.logged, rec)
	return &rec, nil
}

func (m *mockRecords) Search(ctx context.Context, keyword string) (*core.SearchOutcome, error) {
	if keyword == "" {
		return &core.SearchOutcome{}, nil
	}
	out := &core.SearchOutcome{Keyword: keyword, Performed: true, Records: []core.Record{}}
	for _, r := range m.logged {
		if strings.Contains(r.Prompt, keyword) {
			out.Records = append(out.Records, r)
		}
	}
	return out, nil
}

func (m *mockRecords) Export(ctx context.Context, id int64) (*core.Export, error) {
	for _, r := range m.logged {
		if r.ID == id {
			return &core.Export{Filename: r.Prompt + ".txt", Body: core.FormatExport(r)}, nil
		}
	}
	return nil, core.ErrNotFound
}

type mockNotes struct {
	notes []core.Note
}

func (m *mockNotes) List(ctx context.Context) ([]core.Note, error) {
	return m.notes, nil
}

func (m *mockNotes) Get(ctx context.Context, id int64) (*core.Note, error) {
	for _, n := range m.notes {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, core.ErrNotFound
}

// session drives a Server with a scripted list of requests and returns the
// decoded responses in order.
func session(t *testing.T, srv *Server, requests ...map[string]any) []Response {
	t.Helper()

	var in bytes.Buffer
	for _, r := range requests {
		if _, ok := r["id"]; !ok && !strings.HasPrefix(r["method"].(string), "notifications/") {
			r["id"] = uuid.NewString()
		}
		r["jsonrpc"] = "2.0"
		line, err := json.Marshal(r)
		require.NoError(t, err)
		in.Write(line)
		in.WriteByte('\n')
	}

	var out bytes.Buffer
	require.NoError(t, srv.Serve(context.Background(), &in, &out))

	var responses []Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func callTool(name string, args map[string]any) map[string]any {
	return map[string]any{
		"method": "tools/call",
		"params": map[string]any{"name": name, "arguments": args},
	}
}

func toolResult(t *testing.T, resp Response) (string, bool) {
	t.Helper()
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result CallToolResult
	require.NoError(t, json.Unmarshal(raw, &result))
	require.Len(t, result.Content, 1)
	return result.Content[0].Text, result.IsError
}

func newTestServer() (*Server, *mockRecords, *mockNotes) {
	records := &mockRecords{}
	notes := &mockNotes{}
	return NewServer(records, notes, nil, "test"), records, notes
}

func TestServer_Initialize(t *testing.T) {
	srv, _, _ := newTestServer()

	responses := session(t, srv,
		map[string]any{"method": "initialize", "id": 1},
		map[string]any{"method": "notifications/initialized"},
		map[string]any{"method": "tools/list", "id": 2},
	)
	require.Len(t, responses, 2, "notifications get no response")

	assert.EqualValues(t, 1, responses[0].ID)
	raw, _ := json.Marshal(responses[0].Result)
	var init InitializeResult
	require.NoError(t, json.Unmarshal(raw, &init))
	assert.Equal(t, "ashlar", init.ServerInfo.Name)
	assert.Equal(t, protocolVersion, init.ProtocolVersion)

	raw, _ = json.Marshal(responses[1].Result)
	var list ListToolsResult
	require.NoError(t, json.Unmarshal(raw, &list))
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"saturn_search", "saturn_export", "saturn_log", "notes_list", "note_get"}, names)
}

func TestServer_ProtocolErrors(t *testing.T) {
	srv, _, _ := newTestServer()

	in := strings.NewReader("not json\n\n{\"jsonrpc\":\"2.0\",\"id\":7,\"method\":\"resources/list\"}\n")
	var out bytes.Buffer
	require.NoError(t, srv.Serve(context.Background(), in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var parseErr, notFound Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &parseErr))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &notFound))
	assert.Equal(t, codeParseError, parseErr.Error.Code)
	assert.Equal(t, codeMethodNotFound, notFound.Error.Code)
}

func TestServer_LogSearchExport(t *testing.T) {
	srv, records, _ := newTestServer()

	responses := session(t, srv,
		callTool("saturn_log", map[string]any{"prompt": "psalm 23", "response": "The LORD is my shepherd"}),
		callTool("saturn_search", map[string]any{"keyword": "psalm"}),
		callTool("saturn_search", map[string]any{"keyword": ""}),
		callTool("saturn_export", map[string]any{"id": 1}),
		callTool("saturn_export", map[string]any{"id": "99"}),
	)
	require.Len(t, responses, 5)
	require.Len(t, records.logged, 1)

	text, isErr := toolResult(t, responses[1])
	assert.False(t, isErr)
	var search map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &search))
	assert.Equal(t, true, search["performed"])
	assert.EqualValues(t, 1, search["count"])

	text, _ = toolResult(t, responses[2])
	require.NoError(t, json.Unmarshal([]byte(text), &search))
	assert.Equal(t, false, search["performed"])

	text, isErr = toolResult(t, responses[3])
	assert.False(t, isErr)
	var export map[string]string
	require.NoError(t, json.Unmarshal([]byte(text), &export))
	assert.Equal(t, "psalm 23.txt", export["filename"])
	assert.True(t, strings.HasPrefix(export["body"], "Timestamp: "))

	text, isErr = toolResult(t, responses[4])
	assert.True(t, isErr)
	assert.Contains(t, text, "not found")
}

func TestServer_Notes(t *testing.T) {
	srv, _, notes := newTestServer()
	notes.notes = []core.Note{{ID: 4, Title: "Shopping", Content: "milk", Attachments: []string{"uploads/list.txt"}}}

	responses := session(t, srv,
		callTool("notes_list", map[string]any{}),
		callTool("note_get", map[string]any{"id": 4}),
		callTool("note_get", map[string]any{}),
		callTool("note_get", map[string]any{"id": 1.5}),
	)
	require.Len(t, responses, 4)

	text, _ := toolResult(t, responses[0])
	assert.Contains(t, text, `"count":1`)

	text, isErr := toolResult(t, responses[1])
	assert.False(t, isErr)
	var note core.Note
	require.NoError(t, json.Unmarshal([]byte(text), &note))
	assert.Equal(t, []string{"uploads/list.txt"}, note.Attachments)

	text, isErr = toolResult(t, responses[2])
	assert.True(t, isErr)
	assert.Contains(t, text, "id is required")

	_, isErr = toolResult(t, responses[3])
	assert.True(t, isErr)
}

func TestToolHandler_Validation(t *testing.T) {
	h := NewToolHandler(&mockRecords{}, &mockNotes{})
	ctx := context.Background()

	_, err := h.Handle(ctx, "saturn_log", map[string]any{"prompt": "p"})
	assert.ErrorContains(t, err, "prompt and response are required")

	_, err = h.Handle(ctx, "saturn_search", map[string]any{"keyword": strings.Repeat("k", maxQuerySize+1)})
	assert.Error(t, err)

	_, err = h.Handle(ctx, "recall_search", nil)
	assert.ErrorContains(t, err, "unknown tool")
}
