package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scrummycpro/the-quarries/internal/storage"
)

// RecordService logs, searches and exports saturn records.
type RecordService struct {
	store  RecordStorage
	logger *slog.Logger
	now    func() time.Time
}

// NewRecordService creates a record service.
func NewRecordService(store RecordStorage, logger *slog.Logger) *RecordService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordService{store: store, logger: logger, now: time.Now}
}

// Log appends a prompt/response pair stamped with the current time.
func (s *RecordService) Log(ctx context.Context, prompt, response string) (*Record, error) {
	rec := &storage.LoggedRecord{
		Timestamp: s.now().Format(TimestampLayout),
		Prompt:    prompt,
		Response:  response,
	}
	id, err := s.store.InsertLoggedRecord(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id

	out := recordFromStorage(rec)
	return &out, nil
}

// Get returns a record by id or ErrNotFound.
func (s *RecordService) Get(ctx context.Context, id int64) (*Record, error) {
	rec, err := s.store.GetLoggedRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	out := recordFromStorage(rec)
	return &out, nil
}

// List pages through records in id order.
func (s *RecordService) List(ctx context.Context, limit, offset int) ([]Record, error) {
	recs, err := s.store.ListLoggedRecords(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return toRecords(recs), nil
}

// Search matches keyword as a substring of timestamp, prompt or response. An
// empty keyword performs no search at all.
func (s *RecordService) Search(ctx context.Context, keyword string) (*SearchOutcome, error) {
	if keyword == "" {
		return &SearchOutcome{}, nil
	}

	recs, err := s.store.SearchLoggedRecords(ctx, keyword)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("search", "keyword", keyword, "results", len(recs))

	return &SearchOutcome{
		Keyword:   keyword,
		Performed: true,
		Records:   toRecords(recs),
	}, nil
}

// Export renders a record as a plain text download named after its prompt.
func (s *RecordService) Export(ctx context.Context, id int64) (*Export, error) {
	rec, err := s.store.GetLoggedRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename: rec.Prompt + ".txt",
		Body:     FormatExport(recordFromStorage(rec)),
	}, nil
}

// FormatExport renders the export body for r.
func FormatExport(r Record) string {
	return fmt.Sprintf("Timestamp: %s\n\nPrompt: %s\n\nResponse:\n%s", r.Timestamp, r.Prompt, r.Response)
}

func toRecords(recs []*storage.LoggedRecord) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, recordFromStorage(r))
	}
	return out
}
