package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/penwyp/go-garmin-csv/internal/analyzer"
	"github.com/penwyp/go-garmin-csv/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Output related
	outputFormat string
	formatAlias  string
	outputFile   string
	timezone     string
	openOutput   bool

	// Processing
	limit       int
	concurrency int

	rootCmd = &cobra.Command{
		Use:   "go-garmin-csv [paths...] [flags]",
		Short: "Garmin Connect CSV export importer",
		Long: `go-garmin-csv imports CSV exports from Garmin Connect reports and turns them
into chart-ready time series.

Each file is cleaned, classified by its columns (steps, sleep, stress, VO₂ Max,
intensity minutes, floors, resting heart rate), has its dates repaired and is
sorted by time. Files that cannot be imported are listed with the reason.

Examples:
  go-garmin-csv ~/Downloads/garmin                     # Import every CSV in a directory
  go-garmin-csv steps.csv sleep.csv --output json      # Print datasets as JSON
  go-garmin-csv exports --output xlsx --out report.xlsx # One sheet per export
  go-garmin-csv exports --output chart --open          # Line charts in the browser
  go-garmin-csv watch ~/Downloads/garmin               # Import files as they arrive`,
		Args: cobra.ArbitraryArgs,
		RunE: runImport,
	}
)

const defaultLogFile = "~/.go-garmin-csv/logs/app.log"

func init() {
	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary, xlsx, chart)")
	rootCmd.Flags().StringVar(&formatAlias, "format", "",
		"Alias for --output")
	rootCmd.Flags().StringVar(&outputFile, "out", "",
		"Write output to a file instead of stdout (required for xlsx)")
	rootCmd.Flags().BoolVar(&openOutput, "open", false,
		"Open chart output in the browser")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for export dates and month labels (e.g., Europe/Berlin, UTC)")

	// Processing
	rootCmd.Flags().IntVar(&limit, "limit", 0,
		"Limit the number of files shown (0 = unlimited)")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0,
		"Files processed in parallel (0 = number of CPUs)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runImport(cmd *cobra.Command, args []string) error {
	// Handle format alias
	if cmd.Flags().Changed("format") {
		outputFormat = formatAlias
	}

	initRuntime()

	if len(args) == 0 {
		args = []string{"."}
	}

	config := &analyzer.Config{
		Paths:        expandPaths(args),
		OutputFormat: strings.ToLower(outputFormat),
		OutputFile:   outputFile,
		Timezone:     timezone,
		Limit:        limit,
		Concurrency:  concurrency,
		Open:         openOutput,
	}

	a, err := analyzer.New(config)
	if err != nil {
		return err
	}
	a.SetOutput(cmd.OutOrStdout())

	ctx, stop := signalContext(cmd)
	defer stop()

	return a.Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initRuntime() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
	if err := util.InitializeTimeProviderOrLocal(timezone); err != nil {
		util.LogWarnf("Falling back to Local: %v", err)
	}
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func expandPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, expandPath(p))
	}
	return out
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
