package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LoggedRecord is one row of the saturn table: a logged prompt and its response.
type LoggedRecord struct {
	ID        int64
	Timestamp string
	Prompt    string
	Response  string
}

const selectSaturn = `SELECT id, timestamp, prompt, response FROM saturn`

// InsertLoggedRecord appends a record and returns its id.
func (s *Store) InsertLoggedRecord(ctx context.Context, rec *LoggedRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO saturn (timestamp, prompt, response) VALUES (?, ?, ?)`,
		rec.Timestamp, rec.Prompt, rec.Response)
	if err != nil {
		return 0, fmt.Errorf("insert saturn record: %w", err)
	}
	return res.LastInsertId()
}

// GetLoggedRecord retrieves a record by id.
func (s *Store) GetLoggedRecord(ctx context.Context, id int64) (*LoggedRecord, error) {
	row := s.db.QueryRowContext(ctx, selectSaturn+` WHERE id = ?`, id)

	var rec LoggedRecord
	if err := row.Scan(&rec.ID, &rec.Timestamp, &rec.Prompt, &rec.Response); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get saturn record %d: %w", id, err)
	}
	return &rec, nil
}

// SearchLoggedRecords returns every record whose timestamp, prompt or response
// matches %keyword% under SQL LIKE. Wildcards in keyword are not escaped.
func (s *Store) SearchLoggedRecords(ctx context.Context, keyword string) ([]*LoggedRecord, error) {
	pattern := "%" + keyword + "%"
	rows, err := s.db.QueryContext(ctx,
		selectSaturn+` WHERE timestamp LIKE ? OR prompt LIKE ? OR response LIKE ?`,
		pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search saturn records: %w", err)
	}
	return scanLoggedRecords(rows)
}

// ListLoggedRecords pages through records in id order. A limit <= 0 returns all.
func (s *Store) ListLoggedRecords(ctx context.Context, limit, offset int) ([]*LoggedRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectSaturn+` ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list saturn records: %w", err)
	}
	return scanLoggedRecords(rows)
}

func scanLoggedRecords(rows *sql.Rows) ([]*LoggedRecord, error) {
	defer rows.Close()

	records := []*LoggedRecord{}
	for rows.Next() {
		var rec LoggedRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Prompt, &rec.Response); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
