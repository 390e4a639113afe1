package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// TestCommonDB_Interface verifies CommonDB implements TranscriptDAO
func TestCommonDB_Interface(t *testing.T) {
	var _ TranscriptDAO = (*CommonDB)(nil)
}

func newMockDB(t *testing.T, driver string) (*CommonDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCommonDB(db, driver, "transcripts"), mock
}

func TestCommonDB_CreatePlaceholder_Postgres(t *testing.T) {
	store, mock := newMockDB(t, "postgres")

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transcripts (text, status) VALUES ($1, $2) RETURNING id`)).
		WithArgs("", "processing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))

	id, err := store.CreatePlaceholder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommonDB_CreatePlaceholder_SQLite(t *testing.T) {
	store, mock := newMockDB(t, "sqlite3")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO transcripts (text, status) VALUES (?, ?)`)).
		WithArgs("", "processing").
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := store.CreatePlaceholder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommonDB_CreatePlaceholder_Errors(t *testing.T) {
	t.Run("insert fails", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectQuery("INSERT INTO transcripts").WillReturnError(stderrors.New("connection refused"))

		_, err := store.CreatePlaceholder(context.Background())
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrInsertFailed))
	})

	t.Run("no id returned", func(t *testing.T) {
		store, mock := newMockDB(t, "sqlite3")
		mock.ExpectExec("INSERT INTO transcripts").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := store.CreatePlaceholder(context.Background())
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrInsertFailed))
	})
}

func TestCommonDB_Update(t *testing.T) {
	url := "http://minio/bucket/a.wav"

	tests := []struct {
		name        string
		update      model.TranscriptUpdate
		setup       func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name:   "completed",
			update: model.TranscriptUpdate{Text: "hello", Status: model.StatusCompleted},
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(`UPDATE transcripts SET text = $1, status = $2 WHERE id = $3 AND status = $4`)).
					WithArgs("hello", "completed", int64(3), "processing").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "completed with audio url",
			update: model.TranscriptUpdate{Text: "hello", Status: model.StatusCompleted, AudioURL: &url},
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(`UPDATE transcripts SET text = $1, status = $2, audio_url = $3 WHERE id = $4 AND status = $5`)).
					WithArgs("hello", "completed", url, int64(3), "processing").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "row already terminal",
			update: model.TranscriptUpdate{Text: "Transcription error: boom", Status: model.StatusError},
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE transcripts").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: apperrors.ErrUpdateFailed,
		},
		{
			name:        "back to processing is rejected",
			update:      model.TranscriptUpdate{Status: model.StatusProcessing},
			setup:       func(m sqlmock.Sqlmock) {},
			expectedErr: apperrors.ErrInvalidTransition,
		},
		{
			name:   "database error",
			update: model.TranscriptUpdate{Text: "x", Status: model.StatusCompleted},
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE transcripts").WillReturnError(sql.ErrConnDone)
			},
			expectedErr: apperrors.ErrUpdateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockDB(t, "postgres")
			tt.setup(mock)

			err := store.Update(context.Background(), 3, tt.update)
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, tt.expectedErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommonDB_GetByID(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, text, status, created_at, audio_url FROM transcripts WHERE id = $1`)).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "text", "status", "created_at", "audio_url"}).
				AddRow(9, "hello", "completed", created, nil))

		got, err := store.GetByID(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
		assert.Equal(t, "hello", got.Text)
		assert.Equal(t, model.StatusCompleted, got.Status)
		assert.Equal(t, created, got.CreatedAt)
		assert.Nil(t, got.AudioURL)
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectQuery("SELECT").WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "text", "status", "created_at", "audio_url"}))

		_, err := store.GetByID(context.Background(), 404)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("query error", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectQuery("SELECT").WillReturnError(stderrors.New("timeout"))

		_, err := store.GetByID(context.Background(), 1)
		require.Error(t, err)
		assert.False(t, stderrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestCommonDB_List(t *testing.T) {
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	url := "http://minio/bucket/b.mp3"

	store, mock := newMockDB(t, "postgres")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, text, status, created_at, audio_url FROM transcripts ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "status", "created_at", "audio_url"}).
			AddRow(2, "second", "completed", newer, url).
			AddRow(1, "", "processing", older, nil))

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	require.NotNil(t, got[0].AudioURL)
	assert.Equal(t, url, *got[0].AudioURL)
	assert.Equal(t, model.StatusProcessing, got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommonDB_UnknownStatus(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "text", "status", "created_at", "audio_url"}

	t.Run("get", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectQuery("SELECT").WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(4, "x", "queued", created, nil))

		_, err := store.GetByID(context.Background(), 4)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrScanFailed))
		assert.False(t, stderrors.Is(err, apperrors.ErrNotFound))
		assert.Contains(t, err.Error(), `unknown status "queued"`)
	})

	t.Run("list", func(t *testing.T) {
		store, mock := newMockDB(t, "sqlite3")
		mock.ExpectQuery("SELECT").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(2, "ok", "completed", created, nil).
				AddRow(1, "x", "", created, nil))

		_, err := store.List(context.Background())
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrScanFailed))
	})
}

func TestCommonDB_List_Empty(t *testing.T) {
	store, mock := newMockDB(t, "postgres")
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id", "text", "status", "created_at", "audio_url"}))

	got, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCommonDB_List_Error(t *testing.T) {
	store, mock := newMockDB(t, "postgres")
	mock.ExpectQuery("SELECT").WillReturnError(stderrors.New("relation does not exist"))

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrQueryFailed))
}

func TestCommonDB_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transcripts WHERE id = $1`)).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Delete(context.Background(), 4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing deleted", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectExec("DELETE FROM transcripts").WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Delete(context.Background(), 4)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("database error", func(t *testing.T) {
		store, mock := newMockDB(t, "postgres")
		mock.ExpectExec("DELETE FROM transcripts").WillReturnError(sql.ErrConnDone)

		err := store.Delete(context.Background(), 4)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, apperrors.ErrDeleteFailed))
	})
}

func TestCommonDB_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	store := NewCommonDB(db, "postgres", "")
	assert.Equal(t, "transcripts", store.Table())
	assert.Equal(t, "postgres", store.DriverName())

	mock.ExpectClose()
	assert.NoError(t, store.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
