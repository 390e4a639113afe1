package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"speech2text/internal/app/model"
	"speech2text/internal/app/repository"
)

// Schema returns the DDL that creates the transcripts table for driver
func Schema(driver, table string) ([]string, error) {
	switch driver {
	case "postgres":
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	text TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'processing' CHECK (status IN ('processing', 'completed', 'error')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	audio_url TEXT
)`, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_created_at_idx ON %s (created_at DESC)`, table, table),
		}, nil
	case "sqlite3":
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'processing' CHECK (status IN ('processing', 'completed', 'error')),
	created_at TIMESTAMP NOT NULL DEFAULT (strftime('%%Y-%%m-%%d %%H:%%M:%%f', 'now')),
	audio_url TEXT
)`, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_created_at_idx ON %s (created_at DESC)`, table, table),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// EnsureSchema creates the transcripts table and index when missing
func EnsureSchema(ctx context.Context, db *sql.DB, driver, table string) error {
	statements, err := Schema(driver, table)
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}

// ProgressFunc is called after each copied row
type ProgressFunc func(done, total int)

// CopyTranscripts copies every row of src into dst in one transaction,
// keeping ids and timestamps. Rows whose id already exists in dst are skipped.
// It returns the number of rows inserted.
func CopyTranscripts(ctx context.Context, src, dst *repository.CommonDB, progress ProgressFunc) (int, error) {
	transcripts, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("read source: %w", err)
	}

	tx, err := dst.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertStatement(dst.DriverName(), dst.Table()))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	// List is newest first; insert oldest first so ids grow with time.
	for i := len(transcripts) - 1; i >= 0; i-- {
		t := transcripts[i]
		result, err := stmt.ExecContext(ctx, t.ID, t.Text, string(t.Status), t.CreatedAt.UTC().Format(timestampLayout(dst.DriverName())), nullable(t.AudioURL))
		if err != nil {
			return inserted, fmt.Errorf("insert transcript %d: %w", t.ID, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			inserted++
		}
		if progress != nil {
			progress(len(transcripts)-i, len(transcripts))
		}
	}

	if dst.DriverName() == "postgres" {
		resync := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s`,
			dst.Table(), dst.Table(),
		)
		if _, err := tx.ExecContext(ctx, resync); err != nil {
			return inserted, fmt.Errorf("resync id sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit: %w", err)
	}

	return inserted, nil
}

func insertStatement(driver, table string) string {
	if driver == "postgres" {
		return fmt.Sprintf(
			`INSERT INTO %s (id, text, status, created_at, audio_url) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			table,
		)
	}
	return fmt.Sprintf(
		`INSERT INTO %s (id, text, status, created_at, audio_url) VALUES (?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`,
		table,
	)
}

func timestampLayout(driver string) string {
	if driver == "postgres" {
		return time.RFC3339Nano
	}
	return "2006-01-02 15:04:05.000"
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// StatusCounts tallies rows per status, used for migration summaries
func StatusCounts(transcripts []model.Transcript) map[model.TranscriptStatus]int {
	counts := make(map[model.TranscriptStatus]int)
	for _, t := range transcripts {
		counts[t.Status]++
	}
	return counts
}
