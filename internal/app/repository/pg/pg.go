package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"speech2text/internal/app/repository"
)

// PostgresDB is the Postgres-backed transcript store
type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB opens a lib/pq connection pool and verifies it
func NewPostgresDB(ctx context.Context, connectionString, table string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{CommonDB: repository.NewCommonDB(db, "postgres", table)}, nil
}
