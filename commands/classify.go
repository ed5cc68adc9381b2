package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/penwyp/go-garmin-csv/internal/core/dates"
	"github.com/penwyp/go-garmin-csv/internal/data/parser"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:    "classify FILE...",
	Short:  "Debug command to print how each file is recognised",
	Long:   `Runs the import pipeline on each file and prints the repair applied, the detected metric and the accepted row count.`,
	Hidden: true, // Hidden from help
	Args:   cobra.MinimumNArgs(1),
	RunE:   runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	initRuntime()

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	p := parser.NewParser(1, dates.New(loc))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tMETRIC\tREPAIR\tROWS\tDIAGNOSTICS\tERROR")
	for _, path := range args {
		r := p.ProcessFile(expandPath(path))
		errText := "-"
		if r.Err != nil {
			errText = r.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d\t%s\n",
			path, r.Metric, r.Repair, r.RowsAccepted, r.RowsTotal, len(r.Diagnostics), errText)
	}
	return tw.Flush()
}
