package driver

import (
	"log"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/trace"
)

// Builder can build drivers.
type Builder struct {
	sim      *cache.Simulator
	reader   *trace.Reader
	logger   *log.Logger
	recorder datarecording.DataRecorder
}

// MakeBuilder creates a builder with no optional features enabled.
func MakeBuilder() Builder {
	return Builder{}
}

// WithSimulator sets the simulator to drive.
func (b Builder) WithSimulator(sim *cache.Simulator) Builder {
	b.sim = sim
	return b
}

// WithTrace sets the trace to process.
func (b Builder) WithTrace(reader *trace.Reader) Builder {
	b.reader = reader
	return b
}

// WithVerboseLogger enables one log line per access.
func (b Builder) WithVerboseLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// WithRecorder enables per-access recording.
func (b Builder) WithRecorder(recorder datarecording.DataRecorder) Builder {
	b.recorder = recorder
	return b
}

// Build creates the driver. The simulator and the trace are mandatory.
func (b Builder) Build() *Driver {
	if b.sim == nil {
		panic("driver requires a simulator")
	}
	if b.reader == nil {
		panic("driver requires a trace")
	}

	d := &Driver{
		sim:      b.sim,
		reader:   b.reader,
		logger:   b.logger,
		recorder: b.recorder,
	}

	if d.recorder != nil {
		d.recorder.CreateTable(accessTableName, accessEntry{})
	}

	return d
}
