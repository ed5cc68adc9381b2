package commands

import (
	"strings"

	"github.com/penwyp/go-garmin-csv/internal/analyzer"
	"github.com/spf13/cobra"
)

var (
	watchFormat string
	watchOut    string
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR...",
	Short: "Import Garmin Connect exports as they are saved into a directory",
	Long: `Imports the CSV files already present, then watches the directories and
imports each new or rewritten CSV file, re-rendering the output after every file.
Press Ctrl+C to stop.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFormat, "output", "o", "table",
		"Output format (table, json, csv, summary, xlsx, chart)")
	watchCmd.Flags().StringVar(&watchOut, "out", "",
		"Rewrite this file after each import instead of printing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	initRuntime()

	a, err := analyzer.New(&analyzer.Config{
		Paths:        expandPaths(args),
		OutputFormat: strings.ToLower(watchFormat),
		OutputFile:   watchOut,
		Timezone:     timezone,
		Concurrency:  concurrency,
	})
	if err != nil {
		return err
	}
	a.SetOutput(cmd.OutOrStdout())

	ctx, stop := signalContext(cmd)
	defer stop()

	return a.Watch(ctx)
}
