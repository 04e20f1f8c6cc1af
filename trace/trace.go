// Package trace reads memory-access traces. Each line of a trace is in the
// format `Op Addr,Size`, where Op is L for a load or S for a store, Addr is
// a 64-bit hexadecimal address without a leading 0x, and Size is a small
// positive decimal byte count.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/csim/cache"
)

// A Record is one decoded memory access.
type Record struct {
	Op   cache.Op
	Addr uint64
	Size int
}

// A Reader parses trace records from an input stream. Malformed lines fail
// the whole read; the simulation core never sees them.
type Reader struct {
	scanner *bufio.Scanner
	lineNum int
	closer  io.Closer
}

// NewReader creates a reader that parses records from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Open creates a reader over a trace file. Close releases the file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}

	r := NewReader(f)
	r.closer = f

	return r, nil
}

// Close releases the underlying file, if the reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// Next returns the next record in the trace. It returns io.EOF after the
// last record.
func (r *Reader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.lineNum++

		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		record, err := r.parseLine(line)
		if err != nil {
			return Record{}, fmt.Errorf("trace line %d: %w", r.lineNum, err)
		}

		return record, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}

	return Record{}, io.EOF
}

func (r *Reader) parseLine(line string) (Record, error) {
	opField, rest, found := strings.Cut(line, " ")
	if !found {
		return Record{}, fmt.Errorf("expected `Op Addr,Size`, got %q", line)
	}

	record := Record{}
	switch opField {
	case "L":
		record.Op = cache.OpLoad
	case "S":
		record.Op = cache.OpStore
	default:
		return Record{}, fmt.Errorf("unknown operation %q", opField)
	}

	addrField, sizeField, found := strings.Cut(strings.TrimSpace(rest), ",")
	if !found {
		return Record{}, fmt.Errorf("expected `Addr,Size`, got %q", rest)
	}

	addr, err := strconv.ParseUint(addrField, 16, 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad address %q", addrField)
	}
	record.Addr = addr

	size, err := strconv.Atoi(strings.TrimSpace(sizeField))
	if err != nil || size <= 0 {
		return Record{}, fmt.Errorf("bad size %q", sizeField)
	}
	record.Size = size

	return record, nil
}
