// Package cache provides the byte store behind uploaded datasets.
//
// Uploaded CSV files are the only state flighttree keeps between requests.
// Trees, layouts and rendered artifacts are recomputed every time, so the
// store only ever holds raw dataset bytes and a small index of dataset IDs.
//
// Backends:
//   - [NullCache]: the "none" backend, discards every dataset
//   - [MemoryCache]: process-local map (HTTP server default)
//   - [FileCache]: files under a directory (CLI, ~/.cache/flighttree)
//   - [RedisCache]: shared Redis instance
//   - [MongoCache]: MongoDB collection
//
// Keys are produced by a [Keyer]; [ScopedKeyer] prefixes them so several
// deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiration.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds storage keys.
type Keyer interface {
	// DatasetKey returns the key holding the raw bytes of a dataset.
	DatasetKey(id string) string

	// IndexKey returns the key holding the list of known dataset IDs.
	IndexKey() string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey implements Keyer.
func (DefaultKeyer) DatasetKey(id string) string { return "dataset:" + id }

// IndexKey implements Keyer.
func (DefaultKeyer) IndexKey() string { return "dataset-index" }
