package core

import (
	"context"

	"github.com/scrummycpro/the-quarries/internal/attachments"
	"github.com/scrummycpro/the-quarries/internal/storage"
)

// MockNoteStorage implements NoteStorage for testing
type MockNoteStorage struct {
	InsertNoteFunc              func(ctx context.Context, title, content string, files []string) (int64, error)
	GetNoteFunc                 func(ctx context.Context, id int64) (*storage.NoteRecord, error)
	ListNotesFunc               func(ctx context.Context) ([]*storage.NoteRecord, error)
	AppendNoteFilesFunc         func(ctx context.Context, id int64, title, content string, files []string) error
	DeleteNoteFunc              func(ctx context.Context, id int64) error
	CountNoteFileReferencesFunc func(ctx context.Context, path string, excludeID int64) (int, error)
}

func (m *MockNoteStorage) InsertNote(ctx context.Context, title, content string, files []string) (int64, error) {
	if m.InsertNoteFunc != nil {
		return m.InsertNoteFunc(ctx, title, content, files)
	}
	return 1, nil
}

func (m *MockNoteStorage) GetNote(ctx context.Context, id int64) (*storage.NoteRecord, error) {
	if m.GetNoteFunc != nil {
		return m.GetNoteFunc(ctx, id)
	}
	return nil, storage.ErrNotFound
}

func (m *MockNoteStorage) ListNotes(ctx context.Context) ([]*storage.NoteRecord, error) {
	if m.ListNotesFunc != nil {
		return m.ListNotesFunc(ctx)
	}
	return nil, nil
}

func (m *MockNoteStorage) AppendNoteFiles(ctx context.Context, id int64, title, content string, files []string) error {
	if m.AppendNoteFilesFunc != nil {
		return m.AppendNoteFilesFunc(ctx, id, title, content, files)
	}
	return nil
}

func (m *MockNoteStorage) DeleteNote(ctx context.Context, id int64) error {
	if m.DeleteNoteFunc != nil {
		return m.DeleteNoteFunc(ctx, id)
	}
	return nil
}

func (m *MockNoteStorage) CountNoteFileReferences(ctx context.Context, path string, excludeID int64) (int, error) {
	if m.CountNoteFileReferencesFunc != nil {
		return m.CountNoteFileReferencesFunc(ctx, path, excludeID)
	}
	return 0, nil
}

// MockAttachmentStorage implements AttachmentStorage for testing
type MockAttachmentStorage struct {
	SaveFunc   func(ctx context.Context, uploads []attachments.Upload) ([]string, error)
	RemoveFunc func(paths []string) []error

	Removed [][]string
}

func (m *MockAttachmentStorage) Save(ctx context.Context, uploads []attachments.Upload) ([]string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, uploads)
	}
	return []string{}, nil
}

func (m *MockAttachmentStorage) Remove(paths []string) []error {
	m.Removed = append(m.Removed, paths)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(paths)
	}
	return nil
}

// MockRecordStorage implements RecordStorage for testing
type MockRecordStorage struct {
	InsertLoggedRecordFunc  func(ctx context.Context, rec *storage.LoggedRecord) (int64, error)
	GetLoggedRecordFunc     func(ctx context.Context, id int64) (*storage.LoggedRecord, error)
	SearchLoggedRecordsFunc func(ctx context.Context, keyword string) ([]*storage.LoggedRecord, error)
	ListLoggedRecordsFunc   func(ctx context.Context, limit, offset int) ([]*storage.LoggedRecord, error)

	SearchCalls int
}

func (m *MockRecordStorage) InsertLoggedRecord(ctx context.Context, rec *storage.LoggedRecord) (int64, error) {
	if m.InsertLoggedRecordFunc != nil {
		return m.InsertLoggedRecordFunc(ctx, rec)
	}
	return 1, nil
}

func (m *MockRecordStorage) GetLoggedRecord(ctx context.Context, id int64) (*storage.LoggedRecord, error) {
	if m.GetLoggedRecordFunc != nil {
		return m.GetLoggedRecordFunc(ctx, id)
	}
	return nil, storage.ErrNotFound
}

func (m *MockRecordStorage) SearchLoggedRecords(ctx context.Context, keyword string) ([]*storage.LoggedRecord, error) {
	m.SearchCalls++
	if m.SearchLoggedRecordsFunc != nil {
		return m.SearchLoggedRecordsFunc(ctx, keyword)
	}
	return []*storage.LoggedRecord{}, nil
}

func (m *MockRecordStorage) ListLoggedRecords(ctx context.Context, limit, offset int) ([]*storage.LoggedRecord, error) {
	if m.ListLoggedRecordsFunc != nil {
		return m.ListLoggedRecordsFunc(ctx, limit, offset)
	}
	return nil, nil
}
