package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// filesSeparator joins attachment paths in the notes.files column.
const filesSeparator = ","

// NoteRecord represents a row of the notes table with files already split.
type NoteRecord struct {
	ID      int64
	Title   string
	Content string
	Files   []string
}

const selectNotes = `SELECT id, title, content, files FROM notes`

// InsertNote creates a note and returns its id.
func (s *Store) InsertNote(ctx context.Context, title, content string, files []string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (title, content, files) VALUES (?, ?, ?)`,
		title, content, JoinFiles(files))
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	return res.LastInsertId()
}

// GetNote retrieves a note by id.
func (s *Store) GetNote(ctx context.Context, id int64) (*NoteRecord, error) {
	row := s.db.QueryRowContext(ctx, selectNotes+` WHERE id = ?`, id)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return note, nil
}

// ListNotes returns all notes in insertion order.
func (s *Store) ListNotes(ctx context.Context) ([]*NoteRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectNotes+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []*NoteRecord{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// UpdateNote replaces title, content and the full files list of a note.
func (s *Store) UpdateNote(ctx context.Context, id int64, title, content string, files []string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, files = ? WHERE id = ?`,
		title, content, JoinFiles(files), id)
	if err != nil {
		return fmt.Errorf("update note %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// AppendNoteFiles replaces title and content and appends files to the existing
// list in a single statement, so concurrent appends cannot drop each other.
func (s *Store) AppendNoteFiles(ctx context.Context, id int64, title, content string, files []string) error {
	joined := JoinFiles(files)
	res, err := s.db.ExecContext(ctx, `
		UPDATE notes SET title = ?, content = ?,
			files = CASE
				WHEN ? = '' THEN files
				WHEN files IS NULL OR files = '' THEN ?
				ELSE files || ',' || ?
			END
		WHERE id = ?
	`, title, content, joined, joined, joined, id)
	if err != nil {
		return fmt.Errorf("append note files %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// DeleteNote removes a note row. Attachment files are left untouched.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// CountNoteFileReferences counts notes other than excludeID whose files list
// contains path as a whole entry.
func (s *Store) CountNoteFileReferences(ctx context.Context, path string, excludeID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notes
		WHERE id != ? AND instr(',' || IFNULL(files, '') || ',', ',' || ? || ',') > 0
	`, excludeID, path).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count file references: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*NoteRecord, error) {
	var note NoteRecord
	var content, files sql.NullString
	if err := row.Scan(&note.ID, &note.Title, &content, &files); err != nil {
		return nil, err
	}
	note.Content = content.String
	note.Files = SplitFiles(files.String)
	return &note, nil
}

// JoinFiles renders paths in their persisted comma-joined form.
func JoinFiles(paths []string) string {
	return strings.Join(paths, filesSeparator)
}

// SplitFiles parses the persisted form. An empty column yields an empty list.
func SplitFiles(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, filesSeparator)
}
