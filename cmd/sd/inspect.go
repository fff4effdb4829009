package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/enzo-santos-ufpa/sd/datarecording"
	"github.com/enzo-santos-ufpa/sd/metrics"
)

type traceRow struct {
	Time     float64
	Priority int
	Seq      uint64
	Kind     string
	Detail   string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize the recorded output of a previous run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		if !strings.HasSuffix(path, ".sqlite3") {
			path += ".sqlite3"
		}

		// Opening a missing file would silently create an empty database.
		if _, err := os.Stat(path); err != nil {
			logrus.WithError(err).Fatal("cannot open the run file")
		}

		reader := datarecording.NewReader(path)
		defer reader.Close()

		printed := printSummaries(reader)
		printed = printTraceCount(reader) || printed

		if !printed {
			fmt.Println("no recorded metrics or trace in", path)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printSummaries(reader datarecording.DataReader) bool {
	reader.MapTable("summaries", summaryRow{})

	rows, _, err := reader.Query(context.Background(), "summaries",
		datarecording.QueryParams{OrderBy: "Series"})
	if err != nil || len(rows) == 0 {
		return false
	}

	for _, row := range rows {
		sum := row.(*summaryRow)
		printSummary(sum.Series, metrics.Summary{
			Count:  sum.Count,
			Mean:   sum.Mean,
			StdDev: sum.StdDev,
			Min:    sum.Min,
			Max:    sum.Max,
			P50:    sum.P50,
			P95:    sum.P95,
		})
	}

	return true
}

func printTraceCount(reader datarecording.DataReader) bool {
	reader.MapTable("event_trace", traceRow{})

	_, total, err := reader.Query(context.Background(), "event_trace",
		datarecording.QueryParams{Limit: 1})
	if err != nil {
		return false
	}

	fmt.Printf("Event trace: %d events\n", total)
	return true
}
