package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/export"
	"speech2text/cmd/s2t/cmd/migrate"
	"speech2text/cmd/s2t/cmd/serve"
	"speech2text/cmd/s2t/cmd/version"
	"speech2text/internal/config"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s2t",
	Short: "Speech-to-text API: upload audio, get transcripts back",
	Long: `Speech-to-text API service.

- serve starts the HTTP API (upload, fetch, list and delete transcripts)
- migrate prepares a SQL store and can copy a local SQLite store into Postgres
- export writes every stored transcript to an Excel workbook`,
	TraverseChildren: true,
	SilenceUsage:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadEnv()
		if err != nil {
			return err
		}
		if loaded != "" && cmd.Flag("verbose").Value.String() == "true" {
			fmt.Fprintf(os.Stderr, "loaded environment from %s\n", loaded)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file; environment variables override it")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "verbose output")
}
