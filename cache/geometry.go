package cache

import "fmt"

// addressWidth is the number of bits in a memory address.
const addressWidth = 64

// A Geometry describes the shape of a cache: the number of set-index bits,
// the number of block-offset bits, and the associativity.
type Geometry struct {
	SetIndexBits    int
	BlockOffsetBits int
	Associativity   int
}

// A ConfigError reports a geometry that cannot describe a valid cache.
type ConfigError struct {
	Geometry Geometry
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid cache geometry (s=%d, b=%d, E=%d): %s",
		e.Geometry.SetIndexBits,
		e.Geometry.BlockOffsetBits,
		e.Geometry.Associativity,
		e.Reason)
}

// Validate checks that the geometry describes a cache that can exist.
func (g Geometry) Validate() error {
	switch {
	case g.SetIndexBits < 0:
		return &ConfigError{g, "set-index bits must be non-negative"}
	case g.BlockOffsetBits < 0:
		return &ConfigError{g, "block-offset bits must be non-negative"}
	case g.Associativity <= 0:
		return &ConfigError{g, "associativity must be positive"}
	case g.SetIndexBits+g.BlockOffsetBits > addressWidth:
		return &ConfigError{g, "set-index and block-offset bits exceed the address width"}
	}

	return nil
}

// NumSets returns the number of sets in the cache.
func (g Geometry) NumSets() int {
	return 1 << g.SetIndexBits
}

// BlockSize returns the number of bytes in a block.
func (g Geometry) BlockSize() uint64 {
	return 1 << g.BlockOffsetBits
}

// Decode splits an address into the set index and the tag. The block offset
// is discarded as the model does not store data.
func (g Geometry) Decode(addr uint64) (setID int, tag uint64) {
	setID = int((addr >> g.BlockOffsetBits) & ((1 << g.SetIndexBits) - 1))
	tag = addr >> (g.SetIndexBits + g.BlockOffsetBits)

	return
}
