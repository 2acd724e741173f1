// Package cache stores rendered artifacts keyed by grid content.
//
// Rendering a large sketch to PNG or routing it through Graphviz is far more
// expensive than toggling an edge, and the same frame is often requested many
// times between edits. Artifacts are cached under a key derived from a hash
// of the grid state plus the render options, so an edit naturally produces
// new keys and stale entries simply age out.
//
// # Backends
//
//   - [NullCache]: never stores anything
//   - [MemoryCache]: process local, for the HTTP server
//   - [FileCache]: under the user cache dir, for the CLI
//   - [RedisCache]: shared between server instances
//
// # Keys
//
// A [Keyer] builds keys. [NewScopedKeyer] prefixes every key, which lets
// several deployments share one Redis database.
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(state), cache.ArtifactKeyOpts{Format: "svg", Mode: "whole"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact of the grid state
	// with the given hash.
	ArtifactKey(gridHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every render option that changes the output bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Mode      string  `json:"mode"`
	Scale     float64 `json:"scale,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
	Palette   string  `json:"palette,omitempty"`
	Guides    bool    `json:"guides,omitempty"`
	Labels    bool    `json:"labels,omitempty"`
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the grid hash together with opts.
func (DefaultKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", gridHash, opts)
}
