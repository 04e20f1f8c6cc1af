// Package cmd provides the command-line interface for the cache simulator.
package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/driver"
	"github.com/sarchlab/csim/metrics/prom"
	"github.com/sarchlab/csim/monitoring"
	"github.com/sarchlab/csim/trace"
)

var (
	setIndexBits    int
	blockOffsetBits int
	associativity   int
	tracePath       string
	verbose         bool
	record          bool
	monitor         bool
	monitorPort     int
)

// rootCmd runs one trace against one cache geometry and prints the summary.
var rootCmd = &cobra.Command{
	Use:   "csim [-v] -s <s> -E <E> -b <b> -t <trace>",
	Short: "Simulate a set-associative data cache over a memory trace",
	Long: `csim models a single-level, set-associative, write-back, ` +
		`write-allocate data cache with LRU replacement. It processes a ` +
		`memory trace and reports hits, misses, evictions, and dirty-byte ` +
		`accounting.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&tracePath, "trace", "t", "",
		"file name of the memory trace to process")
	rootCmd.Flags().IntVarP(&setIndexBits, "set-bits", "s", -1,
		"number of set index bits (there are 2**s sets)")
	rootCmd.Flags().IntVarP(&blockOffsetBits, "block-bits", "b", -1,
		"number of block offset bits (there are 2**b bytes per block)")
	rootCmd.Flags().IntVarP(&associativity, "associativity", "E", -1,
		"number of lines per set")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"report the effect of each memory operation")
	rootCmd.Flags().BoolVarP(&record, "record", "d", false,
		"record every access into a SQLite database")
	rootCmd.Flags().BoolVarP(&monitor, "monitor", "m", false,
		"serve simulation state over HTTP while the trace runs")
	rootCmd.Flags().IntVarP(&monitorPort, "port", "p", 0,
		"port for the monitor server (0 picks a free port)")
}

// Execute runs the root command and exits through atexit, so that
// registered flushes still happen on the error path.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func runRoot(_ *cobra.Command, _ []string) error {
	// .env can carry CSIM_PORT and CSIM_DB; missing files are fine.
	_ = godotenv.Load()

	var registry *prometheus.Registry
	var metrics cache.Metrics = cache.NoopMetrics{}
	if monitor {
		registry = prometheus.NewRegistry()
		metrics = prom.New(registry, nil)
	}

	sim, err := cache.MakeBuilder().
		WithSetIndexBits(setIndexBits).
		WithBlockOffsetBits(blockOffsetBits).
		WithAssociativity(associativity).
		WithMetrics(metrics).
		Build()
	if err != nil {
		return err
	}

	if tracePath == "" {
		return fmt.Errorf("a trace file is required (-t)")
	}

	reader, err := trace.Open(tracePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	builder := driver.MakeBuilder().
		WithSimulator(sim).
		WithTrace(reader)
	if verbose {
		builder = builder.WithVerboseLogger(log.New(os.Stdout, "", 0))
	}
	if record {
		builder = builder.WithRecorder(datarecording.New(os.Getenv("CSIM_DB")))
	}

	d := builder.Build()

	if monitor {
		m := monitoring.NewMonitor().
			WithPortNumber(monitorPortNumber())
		m.RegisterDriver(d)
		m.RegisterPrometheus(registry)
		m.StartServer()
	}

	stats, err := d.Run()
	if err != nil {
		return err
	}

	fmt.Println(summaryLine(stats))

	return nil
}

func monitorPortNumber() int {
	if monitorPort != 0 {
		return monitorPort
	}

	port, err := strconv.Atoi(os.Getenv("CSIM_PORT"))
	if err != nil {
		return 0
	}

	return port
}

func summaryLine(stats cache.Stats) string {
	return fmt.Sprintf(
		"hits:%d misses:%d evictions:%d "+
			"dirty_bytes_in_cache:%d dirty_bytes_evicted:%d",
		stats.Hits,
		stats.Misses,
		stats.Evictions,
		stats.DirtyBytes,
		stats.DirtyEvictions)
}
