package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/enzo-santos-ufpa/sd/metrics"
	"github.com/enzo-santos-ufpa/sd/simulation"
)

var (
	flagSeed        int64
	flagUntil       float64
	flagMonitor     bool
	flagMonitorPort int
	flagOpen        bool
	flagOutput      string
	flagConfig      string
	flagTrace       bool
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "sd",
	Short: "Discrete-event simulation of everyday service systems",
	Long: `sd runs discrete-event models of everyday service systems, from an
espresso bar to a parcel distribution center, on a deterministic virtual
clock. Runs are reproducible from their seed, metrics land in a SQLite
file, and a live run can be watched from the browser.`,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	// A .env file provides SD_* defaults for the flags below.
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", envInt64("SD_SEED", 0),
		"master seed all random streams derive from")
	pf.Float64Var(&flagUntil, "until", 0,
		"override the scenario run horizon, in model time units")
	pf.BoolVar(&flagMonitor, "monitor", envBool("SD_MONITOR", false),
		"serve the live dashboard during the run")
	pf.IntVar(&flagMonitorPort, "monitor-port", envInt("SD_MONITOR_PORT", 0),
		"fixed port for the dashboard, 0 picks a free one")
	pf.BoolVar(&flagOpen, "open", false,
		"open the dashboard in the default browser")
	pf.StringVar(&flagOutput, "output", envString("SD_OUTPUT", ""),
		"output file name, without the .sqlite3 suffix")
	pf.StringVar(&flagConfig, "config", "",
		"YAML file overriding the scenario parameters")
	pf.BoolVar(&flagTrace, "trace", false,
		"record every processed event into the output file")
	pf.BoolVar(&flagVerbose, "verbose", envBool("SD_VERBOSE", false),
		"enable debug logging")
}

func initLogging() {
	if flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func envString(key, fallback string) string {
	if raw, ok := os.LookupEnv(key); ok {
		return raw
	}

	return fallback
}

func envBool(key string, fallback bool) bool {
	if raw, ok := os.LookupEnv(key); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}

	return fallback
}

func envInt(key string, fallback int) int {
	if raw, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}

	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if raw, ok := os.LookupEnv(key); ok {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v
		}
	}

	return fallback
}

// newSimulation builds a simulation from the persistent flags. Asking for
// a port or a browser implies asking for the monitor.
func newSimulation() *simulation.Simulation {
	b := simulation.MakeBuilder().WithSeed(flagSeed)

	if flagMonitor || flagOpen || flagMonitorPort > 0 {
		if flagMonitorPort > 0 {
			b = b.WithMonitorPort(flagMonitorPort)
		}
		if flagOpen {
			b = b.WithBrowser()
		}
	} else {
		b = b.WithoutMonitoring()
	}

	if flagOutput != "" {
		b = b.WithOutputFileName(flagOutput)
	}

	s := b.Build()
	if flagTrace {
		s.EventTrace()
	}

	return s
}

// loadScenarioConfig overlays the YAML file from --config, when one is
// given, onto the scenario defaults already in cfg.
func loadScenarioConfig(cfg any) {
	if flagConfig == "" {
		return
	}

	raw, err := os.ReadFile(flagConfig)
	if err != nil {
		logrus.WithError(err).Fatal("cannot read the config file")
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		logrus.WithError(err).Fatal("cannot parse the config file")
	}
}

// runScenario runs one scenario on a freshly built simulation, then
// persists the collected series and closes the run.
func runScenario(scenario func(s *simulation.Simulation) error) {
	s := newSimulation()

	if err := scenario(s); err != nil {
		logrus.WithError(err).Fatal("scenario failed")
	}

	persistMetrics(s)
	s.Terminate()

	if file := s.OutputFile(); file != "" {
		fmt.Printf("\nRun data written to %s\n", file)
	}
}

type seriesRow struct {
	Series string
	Time   float64
	Value  float64
}

type summaryRow struct {
	Series string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	P50    float64
	P95    float64
	Max    float64
}

// persistMetrics writes every registered series into the run's output
// file, both point by point and as one summary row per series.
func persistMetrics(s *simulation.Simulation) {
	rec := s.GetDataRecorder()
	if rec == nil {
		return
	}

	rec.CreateTable("series", seriesRow{})
	rec.CreateTable("summaries", summaryRow{})

	for _, series := range s.GetMetrics().All() {
		times := series.Times()
		for i, v := range series.Values() {
			rec.InsertData("series", seriesRow{
				Series: series.Name(),
				Time:   times[i],
				Value:  v,
			})
		}

		sum := series.Summary()
		rec.InsertData("summaries", summaryRow{
			Series: series.Name(),
			Count:  sum.Count,
			Mean:   sum.Mean,
			StdDev: sum.StdDev,
			Min:    sum.Min,
			P50:    sum.P50,
			P95:    sum.P95,
			Max:    sum.Max,
		})
	}

	rec.Flush()
}

func printSummary(label string, s metrics.Summary) {
	if s.Count == 0 {
		fmt.Printf("%-24s no samples\n", label)
		return
	}

	fmt.Printf("%-24s n=%-6d mean=%-9.2f sd=%-9.2f min=%-9.2f p50=%-9.2f "+
		"p95=%-9.2f max=%.2f\n",
		label, s.Count, s.Mean, s.StdDev, s.Min, s.P50, s.P95, s.Max)
}
