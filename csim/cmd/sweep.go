package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/driver"
	"github.com/sarchlab/csim/trace"
)

var geometrySpecs []string

// sweepCmd runs the same trace against several geometries. The simulations
// are independent, so they run in parallel; the report keeps input order.
var sweepCmd = &cobra.Command{
	Use:   "sweep -t <trace> -g s:b:E [-g s:b:E ...]",
	Short: "Evaluate one trace against several cache geometries",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringArrayVarP(&geometrySpecs, "geometry", "g", nil,
		"cache geometry as s:b:E (repeatable)")
}

func runSweep(_ *cobra.Command, _ []string) error {
	if tracePath == "" {
		return fmt.Errorf("a trace file is required (-t)")
	}
	if len(geometrySpecs) == 0 {
		return fmt.Errorf("at least one geometry is required (-g)")
	}

	geometries := make([]cache.Geometry, len(geometrySpecs))
	for i, spec := range geometrySpecs {
		g, err := parseGeometry(spec)
		if err != nil {
			return err
		}
		geometries[i] = g
	}

	results := make([]cache.Stats, len(geometries))

	var group errgroup.Group
	for i, g := range geometries {
		group.Go(func() error {
			stats, err := runGeometry(g)
			if err != nil {
				return err
			}

			results[i] = stats

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for i, g := range geometries {
		fmt.Printf("s=%d b=%d E=%d %s\n",
			g.SetIndexBits,
			g.BlockOffsetBits,
			g.Associativity,
			summaryLine(results[i]))
	}

	return nil
}

func runGeometry(g cache.Geometry) (cache.Stats, error) {
	sim, err := cache.MakeBuilder().
		WithSetIndexBits(g.SetIndexBits).
		WithBlockOffsetBits(g.BlockOffsetBits).
		WithAssociativity(g.Associativity).
		Build()
	if err != nil {
		return cache.Stats{}, err
	}

	// Traces are not restartable, so every simulation reads its own copy.
	reader, err := trace.Open(tracePath)
	if err != nil {
		return cache.Stats{}, err
	}
	defer reader.Close()

	d := driver.MakeBuilder().
		WithSimulator(sim).
		WithTrace(reader).
		Build()

	return d.Run()
}

func parseGeometry(spec string) (cache.Geometry, error) {
	fields := strings.Split(spec, ":")
	if len(fields) != 3 {
		return cache.Geometry{},
			fmt.Errorf("geometry %q is not in the form s:b:E", spec)
	}

	values := make([]int, 3)
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return cache.Geometry{},
				fmt.Errorf("geometry %q is not in the form s:b:E", spec)
		}
		values[i] = v
	}

	return cache.Geometry{
		SetIndexBits:    values[0],
		BlockOffsetBits: values[1],
		Associativity:   values[2],
	}, nil
}
