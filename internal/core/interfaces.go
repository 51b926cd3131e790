package core

import (
	"context"

	"github.com/scrummycpro/the-quarries/internal/attachments"
	"github.com/scrummycpro/the-quarries/internal/storage"
)

// RecordStorage persists saturn records.
// Implementations: storage.Store
type RecordStorage interface {
	InsertLoggedRecord(ctx context.Context, rec *storage.LoggedRecord) (int64, error)
	GetLoggedRecord(ctx context.Context, id int64) (*storage.LoggedRecord, error)
	SearchLoggedRecords(ctx context.Context, keyword string) ([]*storage.LoggedRecord, error)
	ListLoggedRecords(ctx context.Context, limit, offset int) ([]*storage.LoggedRecord, error)
}

// NoteStorage persists notes.
// Implementations: storage.Store
type NoteStorage interface {
	InsertNote(ctx context.Context, title, content string, files []string) (int64, error)
	GetNote(ctx context.Context, id int64) (*storage.NoteRecord, error)
	ListNotes(ctx context.Context) ([]*storage.NoteRecord, error)
	AppendNoteFiles(ctx context.Context, id int64, title, content string, files []string) error
	DeleteNote(ctx context.Context, id int64) error
	CountNoteFileReferences(ctx context.Context, path string, excludeID int64) (int, error)
}

// UserStorage persists accounts.
// Implementations: storage.Store
type UserStorage interface {
	InsertUser(ctx context.Context, username, password string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*storage.UserRecord, error)
}

// AttachmentStorage writes and removes uploaded files.
// Implementations: attachments.Manager
type AttachmentStorage interface {
	Save(ctx context.Context, uploads []attachments.Upload) ([]string, error)
	Remove(paths []string) []error
}
