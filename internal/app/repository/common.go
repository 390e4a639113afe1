package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// CommonDB implements TranscriptDAO over database/sql for the postgres and
// sqlite3 drivers.
type CommonDB struct {
	db           *sql.DB
	driverName   string
	table        string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName, table string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	if table == "" {
		table = "transcripts"
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		table:        table,
		placeholders: placeholders,
	}
}

const selectColumns = "id, text, status, created_at, audio_url"

// CreatePlaceholder inserts an empty processing row
func (c *CommonDB) CreatePlaceholder(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(
		"INSERT INTO %s (text, status) VALUES (%s, %s)",
		c.table, c.placeholders(1), c.placeholders(2),
	)

	if c.driverName == "postgres" {
		var id int64
		err := c.db.QueryRowContext(ctx, query+" RETURNING id", "", string(model.StatusProcessing)).Scan(&id)
		if err != nil {
			return 0, apperrors.Mark(apperrors.ErrInsertFailed, err)
		}
		return id, nil
	}

	result, err := c.db.ExecContext(ctx, query, "", string(model.StatusProcessing))
	if err != nil {
		return 0, apperrors.Mark(apperrors.ErrInsertFailed, err)
	}

	id, err := result.LastInsertId()
	if err != nil || id == 0 {
		return 0, apperrors.Wrapf(apperrors.ErrInsertFailed, "no id returned: %v", err)
	}

	return id, nil
}

// Update sets the final text and status. Only rows still processing are
// touched, so completed and error rows stay as they are.
func (c *CommonDB) Update(ctx context.Context, id int64, update model.TranscriptUpdate) error {
	if !model.StatusProcessing.CanTransitionTo(update.Status) {
		return apperrors.Wrapf(apperrors.ErrInvalidTransition, "processing -> %s", update.Status)
	}

	sets := []string{
		"text = " + c.placeholders(1),
		"status = " + c.placeholders(2),
	}
	args := []interface{}{update.Text, string(update.Status)}

	if update.AudioURL != nil {
		sets = append(sets, "audio_url = "+c.placeholders(3))
		args = append(args, *update.AudioURL)
	}

	n := len(args)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = %s AND status = %s",
		c.table, strings.Join(sets, ", "), c.placeholders(n+1), c.placeholders(n+2),
	)
	args = append(args, id, string(model.StatusProcessing))

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Mark(apperrors.ErrUpdateFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Mark(apperrors.ErrUpdateFailed, err)
	}
	if affected == 0 {
		return apperrors.Wrapf(apperrors.ErrUpdateFailed, "transcript %d is missing or no longer processing", id)
	}

	return nil
}

// GetByID retrieves one transcript
func (c *CommonDB) GetByID(ctx context.Context, id int64) (*model.Transcript, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = %s",
		selectColumns, c.table, c.placeholders(1),
	)

	t, err := scanTranscript(c.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(id)
		}
		return nil, apperrors.Mark(apperrors.ErrScanFailed, err)
	}

	return t, nil
}

// List retrieves all transcripts, newest first
func (c *CommonDB) List(ctx context.Context) ([]model.Transcript, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY created_at DESC, id DESC",
		selectColumns, c.table,
	)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Mark(apperrors.ErrQueryFailed, err)
	}
	defer rows.Close()

	transcripts := make([]model.Transcript, 0)
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, apperrors.Mark(apperrors.ErrScanFailed, err)
		}
		transcripts = append(transcripts, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.Mark(apperrors.ErrQueryFailed, err)
	}

	return transcripts, nil
}

// Delete removes one transcript
func (c *CommonDB) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", c.table, c.placeholders(1))

	result, err := c.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Mark(apperrors.ErrDeleteFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Mark(apperrors.ErrDeleteFailed, err)
	}
	if affected == 0 {
		return apperrors.NotFound(id)
	}

	return nil
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// DB returns the underlying database connection
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

// DriverName returns the database/sql driver in use
func (c *CommonDB) DriverName() string {
	return c.driverName
}

// Table returns the transcripts table name
func (c *CommonDB) Table() string {
	return c.table
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTranscript(row rowScanner) (*model.Transcript, error) {
	var (
		t        model.Transcript
		status   string
		audioURL sql.NullString
	)

	if err := row.Scan(&t.ID, &t.Text, &status, &t.CreatedAt, &audioURL); err != nil {
		return nil, err
	}

	t.Status = model.TranscriptStatus(status)
	if !t.Status.Valid() {
		return nil, apperrors.Newf("transcript %d has unknown status %q", t.ID, status)
	}
	if audioURL.Valid {
		t.AudioURL = &audioURL.String
	}

	return &t, nil
}
