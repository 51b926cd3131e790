package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scrummycpro/the-quarries/internal/attachments"
)

// NoteService implements the note lifecycle: create, read, update, delete.
type NoteService struct {
	store          NoteStorage
	files          AttachmentStorage
	logger         *slog.Logger
	removeOnDelete bool
	locks          *keyedMutex

	// filesMu spans writing an upload and recording it in a row, and
	// counting references and unlinking on delete. Take it after locks.
	filesMu sync.Mutex
}

// NoteServiceOption configures a NoteService.
type NoteServiceOption func(*NoteService)

// WithNoteLogger sets the logger.
func WithNoteLogger(logger *slog.Logger) NoteServiceOption {
	return func(s *NoteService) { s.logger = logger }
}

// WithRemoveOnDelete controls whether Delete unlinks attachment files that no
// other note references.
func WithRemoveOnDelete(enabled bool) NoteServiceOption {
	return func(s *NoteService) { s.removeOnDelete = enabled }
}

// NewNoteService creates a note service. Attachment cleanup on delete is on by
// default.
func NewNoteService(store NoteStorage, files AttachmentStorage, opts ...NoteServiceOption) *NoteService {
	s := &NoteService{
		store:          store,
		files:          files,
		logger:         slog.Default(),
		removeOnDelete: true,
		locks:          newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new note whose attachments are the accepted uploads.
func (s *NoteService) Create(ctx context.Context, title, content string, uploads []attachments.Upload) (*Note, error) {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	paths, err := s.files.Save(ctx, uploads)
	if err != nil {
		return nil, fmt.Errorf("failed to save attachments: %w", err)
	}

	id, err := s.store.InsertNote(ctx, title, content, paths)
	if err != nil {
		return nil, err
	}

	s.logger.Info("note created", "id", id, "attachments", len(paths))
	return &Note{ID: id, Title: title, Content: content, Attachments: paths}, nil
}

// Get returns the note with id or ErrNotFound.
func (s *NoteService) Get(ctx context.Context, id int64) (*Note, error) {
	rec, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	note := noteFromStorage(rec)
	return &note, nil
}

// List returns every note in insertion order.
func (s *NoteService) List(ctx context.Context) ([]Note, error) {
	recs, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	notes := make([]Note, 0, len(recs))
	for _, rec := range recs {
		notes = append(notes, noteFromStorage(rec))
	}
	return notes, nil
}

// Update replaces title and content and appends the accepted uploads to the
// existing attachments. Existing attachments are never removed or reordered.
// Updates to the same note are serialized.
func (s *NoteService) Update(ctx context.Context, id int64, title, content string, uploads []attachments.Upload) (*Note, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	// Missing notes must not leave stray uploads behind.
	if _, err := s.store.GetNote(ctx, id); err != nil {
		return nil, err
	}

	paths, err := s.appendUploads(ctx, id, title, content, uploads)
	if err != nil {
		return nil, err
	}

	s.logger.Info("note updated", "id", id, "new_attachments", len(paths))
	return s.Get(ctx, id)
}

func (s *NoteService) appendUploads(ctx context.Context, id int64, title, content string, uploads []attachments.Upload) ([]string, error) {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	paths, err := s.files.Save(ctx, uploads)
	if err != nil {
		return nil, fmt.Errorf("failed to save attachments: %w", err)
	}
	if err := s.store.AppendNoteFiles(ctx, id, title, content, paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// Delete removes the note row and then, if enabled, unlinks attachment files
// that no remaining note references. Unlink failures are logged only.
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	rec, err := s.store.GetNote(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.logger.Info("note deleted", "id", id)

	if s.removeOnDelete {
		s.cleanup(ctx, id, rec.Files)
	}
	return nil
}

func (s *NoteService) cleanup(ctx context.Context, id int64, paths []string) {
	s.filesMu.Lock()
	defer s.filesMu.Unlock()

	seen := make(map[string]bool, len(paths))
	var orphans []string
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true

		refs, err := s.store.CountNoteFileReferences(ctx, p, id)
		if err != nil {
			s.logger.Warn("skipping attachment cleanup", "path", p, "error", err)
			continue
		}
		if refs == 0 {
			orphans = append(orphans, p)
		}
	}

	for _, err := range s.files.Remove(orphans) {
		s.logger.Warn("failed to remove attachment", "note_id", id, "error", err)
	}
}
