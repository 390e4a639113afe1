package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speech2text/internal/app"
	"speech2text/internal/config"
)

var shutdownTimeout time.Duration

func init() {
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second,
		"how long in-flight requests may run after SIGINT/SIGTERM")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the speech-to-text HTTP API",
	Long: `Start the speech-to-text HTTP API

- Listens on HOST:PORT (default 0.0.0.0:8000)
- Transcribes uploads with the configured vendor (Deepgram by default)
- Stores transcripts in Supabase, Postgres or SQLite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flag("config").Value.String())
		if err != nil {
			return fmt.Errorf("configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application, cleanup, err := app.InitializeApplication(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		application.Logger.Info("Speech-to-Text API configured",
			zap.String("provider", cfg.Transcription.Provider),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("archive", cfg.Archive.Enabled()),
		)

		return application.Server.Run(ctx, shutdownTimeout)
	},
}
