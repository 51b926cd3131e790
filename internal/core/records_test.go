package core

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrummycpro/the-quarries/internal/storage"
)

func newRecordFixture(t *testing.T) *RecordService {
	t.Helper()

	store, err := storage.Open(context.Background(), storage.Options{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := NewRecordService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC) }
	return svc
}

func TestRecordService_Log(t *testing.T) {
	svc := newRecordFixture(t)
	ctx := context.Background()

	rec, err := svc.Log(ctx, "what is shabbat", "a day of rest")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14 09:26:53", rec.Timestamp)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	list, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordService_Search(t *testing.T) {
	svc := newRecordFixture(t)
	ctx := context.Background()

	hit, err := svc.Log(ctx, "tell me about genesis", "in the beginning")
	require.NoError(t, err)
	_, err = svc.Log(ctx, "exodus", "let my people go")
	require.NoError(t, err)

	t.Run("Given an empty keyword When searching Then no search is performed", func(t *testing.T) {
		out, err := svc.Search(ctx, "")
		require.NoError(t, err)
		assert.False(t, out.Performed)
		assert.Nil(t, out.Records)
	})

	t.Run("Given a keyword in a prompt When searching Then returns that record", func(t *testing.T) {
		out, err := svc.Search(ctx, "genesis")
		require.NoError(t, err)
		assert.True(t, out.Performed)
		require.Len(t, out.Records, 1)
		assert.Equal(t, hit.ID, out.Records[0].ID)
	})

	t.Run("Given an absent keyword When searching Then returns an empty list", func(t *testing.T) {
		out, err := svc.Search(ctx, "leviticus")
		require.NoError(t, err)
		assert.True(t, out.Performed)
		assert.NotNil(t, out.Records)
		assert.Empty(t, out.Records)
	})
}

func TestRecordService_SearchSkipsStoreForEmptyKeyword(t *testing.T) {
	store := &MockRecordStorage{}
	svc := NewRecordService(store, nil)

	_, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, store.SearchCalls)
}

func TestRecordService_SearchStorageFailure(t *testing.T) {
	errDB := errors.New("unable to open database file")
	store := &MockRecordStorage{
		SearchLoggedRecordsFunc: func(ctx context.Context, keyword string) ([]*storage.LoggedRecord, error) {
			return nil, errDB
		},
	}
	svc := NewRecordService(store, nil)

	_, err := svc.Search(context.Background(), "x")
	assert.ErrorIs(t, err, errDB)
}

func TestRecordService_Export(t *testing.T) {
	svc := newRecordFixture(t)
	ctx := context.Background()

	rec, err := svc.Log(ctx, "psalm 23", "The LORD is my shepherd")
	require.NoError(t, err)

	out, err := svc.Export(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "psalm 23.txt", out.Filename)
	assert.True(t, strings.HasPrefix(out.Body, "Timestamp: "))
	assert.Equal(t,
		"Timestamp: 2024-03-14 09:26:53\n\nPrompt: psalm 23\n\nResponse:\nThe LORD is my shepherd",
		out.Body)

	_, err = svc.Export(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordService_ExportKeepsPromptVerbatim(t *testing.T) {
	store := &MockRecordStorage{
		GetLoggedRecordFunc: func(ctx context.Context, id int64) (*storage.LoggedRecord, error) {
			return &storage.LoggedRecord{ID: id, Timestamp: "t", Prompt: "../a/b", Response: "r"}, nil
		},
	}
	svc := NewRecordService(store, nil)

	out, err := svc.Export(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "../a/b.txt", out.Filename)
}
