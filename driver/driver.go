// Package driver feeds memory traces through a cache simulator. It owns the
// read-process loop, the verbose per-access log, and the optional SQLite
// access recording.
package driver

import (
	"errors"
	"io"
	"log"
	"sync"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/trace"
)

const accessTableName = "access_log"

// An accessEntry is one row of the recorded access log.
type accessEntry struct {
	Seq     uint64
	Op      string
	Address uint64
	Size    int
	SetID   int
	Tag     uint64
	Result  string
}

// A Driver runs one simulation over one trace. A trace is processed
// strictly sequentially; Snapshot and Processed may be called from another
// goroutine while Run is in flight.
type Driver struct {
	sim      *cache.Simulator
	reader   *trace.Reader
	logger   *log.Logger
	recorder datarecording.DataRecorder

	mu        sync.Mutex
	processed uint64
	stats     cache.Stats
}

// Run processes every record in the trace and returns the final statistics.
// It stops at the first malformed trace line.
func (d *Driver) Run() (cache.Stats, error) {
	for {
		record, err := d.reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return d.Snapshot(), err
		}

		d.process(record)
	}

	if d.recorder != nil {
		d.recorder.Flush()
	}

	return d.Snapshot(), nil
}

func (d *Driver) process(record trace.Record) {
	outcome := d.sim.Process(record.Op, record.Addr)

	if d.logger != nil {
		d.logger.Printf("%s %x,%d %s",
			record.Op, record.Addr, record.Size, outcome)
	}

	d.mu.Lock()
	d.processed++
	seq := d.processed
	d.stats = d.sim.Snapshot()
	d.mu.Unlock()

	if d.recorder != nil {
		setID, tag := d.sim.Geometry().Decode(record.Addr)
		d.recorder.InsertData(accessTableName, accessEntry{
			Seq:     seq,
			Op:      record.Op.String(),
			Address: record.Addr,
			Size:    record.Size,
			SetID:   setID,
			Tag:     tag,
			Result:  outcome.String(),
		})
	}
}

// Simulator returns the simulator the driver runs.
func (d *Driver) Simulator() *cache.Simulator {
	return d.sim
}

// Processed returns the number of records resolved so far.
func (d *Driver) Processed() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.processed
}

// Snapshot returns the statistics as of the last resolved record.
func (d *Driver) Snapshot() cache.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.stats
}
