package sqlite

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/repository/migrate"
)

// TestSQLiteDB_Interface verifies SQLiteDB implements TranscriptDAO
func TestSQLiteDB_Interface(t *testing.T) {
	var _ repository.TranscriptDAO = (*SQLiteDB)(nil)
}

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	ctx := context.Background()

	db, err := NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "data", "transcripts.db"), "transcripts")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrate.EnsureSchema(ctx, db.DB(), "sqlite3", "transcripts"))
	return db
}

func TestSQLiteDB_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.CreatePlaceholder(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := db.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", got.Text)
	assert.Equal(t, model.StatusProcessing, got.Status)
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
	assert.Nil(t, got.AudioURL)

	url := "http://localhost:9000/audio/1.wav"
	require.NoError(t, db.Update(ctx, id, model.TranscriptUpdate{Text: "hello there", Status: model.StatusCompleted, AudioURL: &url}))

	got, err = db.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello there", got.Text)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.AudioURL)
	assert.Equal(t, url, *got.AudioURL)

	// Terminal rows are never mutated again.
	err = db.Update(ctx, id, model.TranscriptUpdate{Text: "Transcription error: late", Status: model.StatusError})
	assert.True(t, stderrors.Is(err, apperrors.ErrUpdateFailed))

	got, err = db.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello there", got.Text)

	require.NoError(t, db.Delete(ctx, id))

	_, err = db.GetByID(ctx, id)
	assert.True(t, stderrors.Is(err, apperrors.ErrNotFound))

	err = db.Delete(ctx, id)
	assert.True(t, stderrors.Is(err, apperrors.ErrNotFound))
}

func TestSQLiteDB_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := db.CreatePlaceholder(ctx)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
	assert.Equal(t, ids[0], got[2].ID)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestSQLiteDB_ListWithoutTable(t *testing.T) {
	db, err := NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "empty.db"), "transcripts")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.List(context.Background())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrQueryFailed))
}
