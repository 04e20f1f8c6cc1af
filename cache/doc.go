// Package cache models a single-level, set-associative, write-back,
// write-allocate data cache with LRU line replacement. It resolves a
// sequence of load/store accesses into hit/miss/eviction outcomes and
// maintains the dirty-byte accounting a real cache would produce.
//
// The model is purely functional state: it does not store data, model
// timing, or talk to a lower memory. Feed it decoded accesses and read
// the statistics at the end.
package cache
