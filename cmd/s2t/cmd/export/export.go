package export

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"speech2text/internal/app"
	"speech2text/internal/app/export"
	"speech2text/internal/app/progress"
	"speech2text/internal/config"
)

var (
	outputFilePath string
	showProgress   bool
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().BoolVarP(&showProgress, "progress", "p", false, "force the progress bar even when stderr is not a terminal")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export every stored transcript to excel",
	Long: `Export every stored transcript to excel

- Reads from the configured store (Supabase, Postgres or SQLite)
- Rows are written newest first, one per transcript`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storeCfg, err := config.LoadStore(cmd.Flag("config").Value.String())
		if err != nil {
			return fmt.Errorf("configuration: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		store, err := app.OpenStore(ctx, storeCfg)
		if err != nil {
			return err
		}
		defer store.Close()

		transcripts, err := store.List(ctx)
		if err != nil {
			return err
		}

		bar := progress.New(os.Stderr, progress.Enabled(showProgress), len(transcripts), "Exporting transcripts")
		err = export.ToExcel(transcripts, outputFilePath, bar.Increment)
		bar.Done()
		if err != nil {
			return err
		}

		fmt.Printf("export finished, %d transcripts written to %v\n", len(transcripts), outputFilePath)
		return nil
	},
}
