package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"speech2text/internal/app/progress"
	"speech2text/internal/app/repository/migrate"
	"speech2text/internal/app/repository/pg"
	"speech2text/internal/app/repository/sqlite"
	"speech2text/internal/config"
)

var (
	fromSQLite   string
	showProgress bool
)

func init() {
	Cmd.Flags().StringVar(&fromSQLite, "from-sqlite", "",
		"copy every transcript from this SQLite file into the configured Postgres store")
	Cmd.Flags().BoolVarP(&showProgress, "progress", "p", false, "force the progress bar even when stderr is not a terminal")
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the transcripts table, optionally copying rows from SQLite",
	Long: `Create the transcripts table in the configured SQL store

- STORE_DRIVER must be postgres or sqlite; Supabase tables are managed in the Supabase dashboard
- With --from-sqlite, rows are copied into Postgres keeping ids and timestamps
- Rows whose id already exists in the target are skipped`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storeCfg, err := config.LoadStore(cmd.Flag("config").Value.String())
		if err != nil {
			return fmt.Errorf("configuration: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		switch storeCfg.Driver {
		case config.DriverPostgres:
			return migratePostgres(ctx, storeCfg)
		case config.DriverSQLite:
			if fromSQLite != "" {
				return fmt.Errorf("--from-sqlite needs STORE_DRIVER=postgres")
			}
			db, err := sqlite.NewSQLiteDB(ctx, storeCfg.DatabaseURL, storeCfg.Table)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrate.EnsureSchema(ctx, db.DB(), db.DriverName(), db.Table()); err != nil {
				return err
			}
			fmt.Printf("schema ready: %s (%s)\n", storeCfg.DatabaseURL, db.Table())
			return nil
		default:
			return fmt.Errorf("migrate supports the postgres and sqlite drivers, not %q", storeCfg.Driver)
		}
	},
}

func migratePostgres(ctx context.Context, storeCfg config.StoreConfig) error {
	dst, err := pg.NewPostgresDB(ctx, storeCfg.DatabaseURL, storeCfg.Table)
	if err != nil {
		return err
	}
	defer dst.Close()

	if err := migrate.EnsureSchema(ctx, dst.DB(), dst.DriverName(), dst.Table()); err != nil {
		return err
	}
	fmt.Printf("schema ready: postgres (%s)\n", dst.Table())

	if fromSQLite == "" {
		return nil
	}

	if _, err := os.Stat(fromSQLite); err != nil {
		return fmt.Errorf("source database: %w", err)
	}
	src, err := sqlite.NewSQLiteDB(ctx, fromSQLite, storeCfg.Table)
	if err != nil {
		return err
	}
	defer src.Close()

	var bar *progress.Bar
	inserted, err := migrate.CopyTranscripts(ctx, src.CommonDB, dst.CommonDB, func(done, total int) {
		if bar == nil {
			bar = progress.New(os.Stderr, progress.Enabled(showProgress), total, "Copying transcripts")
		}
		bar.SetCurrent(done)
	})
	bar.Done()
	if err != nil {
		return err
	}

	fmt.Printf("copied %d transcripts from %s\n", inserted, fromSQLite)
	return nil
}
