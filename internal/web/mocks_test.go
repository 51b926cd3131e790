package web

import (
	"context"
	"errors"

	"github.com/scrummycpro/the-quarries/internal/attachments"
	"github.com/scrummycpro/the-quarries/internal/core"
	"github.com/scrummycpro/the-quarries/internal/sefaria"
)

var errMockStorage = errors.New("database is locked")

// MockNoteService implements NoteService for testing
type MockNoteService struct {
	CreateFunc func(ctx context.Context, title, content string, uploads []attachments.Upload) (*core.Note, error)
	GetFunc    func(ctx context.Context, id int64) (*core.Note, error)
	ListFunc   func(ctx context.Context) ([]core.Note, error)
	UpdateFunc func(ctx context.Context, id int64, title, content string, uploads []attachments.Upload) (*core.Note, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *MockNoteService) Create(ctx context.Context, title, content string, uploads []attachments.Upload) (*core.Note, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, title, content, uploads)
	}
	return &core.Note{ID: 1, Title: title, Content: content, Attachments: []string{}}, nil
}

func (m *MockNoteService) Get(ctx context.Context, id int64) (*core.Note, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, core.ErrNotFound
}

func (m *MockNoteService) List(ctx context.Context) ([]core.Note, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []core.Note{}, nil
}

func (m *MockNoteService) Update(ctx context.Context, id int64, title, content string, uploads []attachments.Upload) (*core.Note, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, title, content, uploads)
	}
	return nil, core.ErrNotFound
}

func (m *MockNoteService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return core.ErrNotFound
}

// MockRecordService implements RecordService for testing
type MockRecordService struct {
	LogFunc    func(ctx context.Context, prompt, response string) (*core.Record, error)
	GetFunc    func(ctx context.Context, id int64) (*core.Record, error)
	SearchFunc func(ctx context.Context, keyword string) (*core.SearchOutcome, error)
	ExportFunc func(ctx context.Context, id int64) (*core.Export, error)
}

func (m *MockRecordService) Log(ctx context.Context, prompt, response string) (*core.Record, error) {
	if m.LogFunc != nil {
		return m.LogFunc(ctx, prompt, response)
	}
	return &core.Record{ID: 1, Prompt: prompt, Response: response}, nil
}

func (m *MockRecordService) Get(ctx context.Context, id int64) (*core.Record, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, core.ErrNotFound
}

func (m *MockRecordService) Search(ctx context.Context, keyword string) (*core.SearchOutcome, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, keyword)
	}
	if keyword == "" {
		return &core.SearchOutcome{}, nil
	}
	return &core.SearchOutcome{Keyword: keyword, Performed: true, Records: []core.Record{}}, nil
}

func (m *MockRecordService) Export(ctx context.Context, id int64) (*core.Export, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, id)
	}
	return nil, core.ErrNotFound
}

// MockAccountService implements AccountService for testing
type MockAccountService struct {
	RegisterFunc     func(ctx context.Context, username, password string) (*core.User, error)
	AuthenticateFunc func(ctx context.Context, username, password string) (*core.User, error)
}

func (m *MockAccountService) Register(ctx context.Context, username, password string) (*core.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, password)
	}
	return &core.User{ID: 1, Username: username}, nil
}

func (m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*core.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return nil, core.ErrInvalidCredentials
}

// MockFeed implements TextFeed for testing
type MockFeed struct {
	RandomByTopicFunc func(ctx context.Context) (*sefaria.RandomText, error)
	CalendarsFunc     func(ctx context.Context, calendarType, timezone string) (*sefaria.Calendar, error)
}

func (m *MockFeed) BaseURL() string { return "https://www.sefaria.org" }

func (m *MockFeed) RandomByTopic(ctx context.Context) (*sefaria.RandomText, error) {
	if m.RandomByTopicFunc != nil {
		return m.RandomByTopicFunc(ctx)
	}
	return &sefaria.RandomText{}, nil
}

func (m *MockFeed) Calendars(ctx context.Context, calendarType, timezone string) (*sefaria.Calendar, error) {
	if m.CalendarsFunc != nil {
		return m.CalendarsFunc(ctx, calendarType, timezone)
	}
	return &sefaria.Calendar{}, nil
}
