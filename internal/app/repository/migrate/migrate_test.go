package migrate

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speech2text/internal/app/model"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/repository/sqlite"
)

func TestSchema(t *testing.T) {
	pg, err := Schema("postgres", "transcripts")
	require.NoError(t, err)
	require.Len(t, pg, 2)
	assert.Contains(t, pg[0], "BIGSERIAL PRIMARY KEY")
	assert.Contains(t, pg[0], "CHECK (status IN ('processing', 'completed', 'error'))")

	lite, err := Schema("sqlite3", "transcripts")
	require.NoError(t, err)
	assert.Contains(t, lite[0], "AUTOINCREMENT")
	assert.Contains(t, lite[0], "strftime('%Y-%m-%d %H:%M:%f', 'now')")

	_, err = Schema("mysql", "transcripts")
	assert.Error(t, err)
}

func TestEnsureSchema_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS transcripts")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS transcripts_created_at_idx")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db, "postgres", "transcripts"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func openSQLite(t *testing.T, name string) *sqlite.SQLiteDB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), name), "transcripts")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, EnsureSchema(ctx, db.DB(), "sqlite3", "transcripts"))
	return db
}

func TestCopyTranscripts_SQLiteToSQLite(t *testing.T) {
	ctx := context.Background()
	src := openSQLite(t, "src.db")
	dst := openSQLite(t, "dst.db")

	first, err := src.CreatePlaceholder(ctx)
	require.NoError(t, err)
	require.NoError(t, src.Update(ctx, first, model.TranscriptUpdate{Text: "one", Status: model.StatusCompleted}))

	second, err := src.CreatePlaceholder(ctx)
	require.NoError(t, err)
	require.NoError(t, src.Update(ctx, second, model.TranscriptUpdate{Text: "Transcription error: x", Status: model.StatusError}))

	var calls []int
	n, err := CopyTranscripts(ctx, src.CommonDB, dst.CommonDB, func(done, total int) {
		calls = append(calls, done)
		assert.Equal(t, 2, total)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{1, 2}, calls)

	got, err := dst.GetByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Text)
	assert.Equal(t, model.StatusCompleted, got.Status)

	// A second run copies nothing new.
	n, err = CopyTranscripts(ctx, src.CommonDB, dst.CommonDB, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	all, err := dst.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, map[model.TranscriptStatus]int{model.StatusCompleted: 1, model.StatusError: 1}, StatusCounts(all))
}

func TestCopyTranscripts_ToPostgres(t *testing.T) {
	ctx := context.Background()
	src := openSQLite(t, "src.db")
	_, err := src.CreatePlaceholder(ctx)
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dst := repository.NewCommonDB(db, "postgres", "transcripts")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO transcripts (id, text, status, created_at, audio_url) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`))
	prep.ExpectExec().
		WithArgs(int64(1), "", "processing", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`SELECT setval(pg_get_serial_sequence('transcripts', 'id'), COALESCE(MAX(id), 1)) FROM transcripts`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := CopyTranscripts(ctx, src.CommonDB, dst, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimestampLayout(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 600_000_000, time.UTC)
	assert.Equal(t, "2024-01-02 03:04:05.600", ts.Format(timestampLayout("sqlite3")))
	assert.Equal(t, "2024-01-02T03:04:05.6Z", ts.Format(timestampLayout("postgres")))
}
