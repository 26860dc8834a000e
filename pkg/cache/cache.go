// Package cache provides caching for built trees and render artifacts.
//
// Backends:
//   - [FileCache]: file-based cache for CLI usage
//   - [RedisCache]: Redis-backed cache for multi-instance server deployments
//   - [NullCache]: no-op cache for tests or when caching is disabled
//
// Keys are generated by a [Keyer], so every pipeline stage derives its key
// from the stage inputs: the tree from the canonical input digest, the text
// art and the export artifacts from the tree hash. A [ScopedKeyer] prefixes
// all keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of zero or less means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Cache durations per pipeline stage.
const (
	// TTLTree is how long built trees stay cached.
	TTLTree = 24 * time.Hour

	// TTLArt is how long rendered text art stays cached.
	TTLArt = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (DOT, SVG, PNG, PDF) stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// TreeKey generates a key for built-tree caching from the canonical
	// input digest.
	TreeKey(input string, opts TreeKeyOpts) string

	// ArtKey generates a key for text-art caching from a tree hash.
	ArtKey(treeHash string, opts ArtKeyOpts) string

	// ArtifactKey generates a key for artifact caching from a tree hash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// TreeKeyOpts are the build options that affect tree identity.
type TreeKeyOpts struct {
	Seed uint64 `json:"seed"`
}

// ArtKeyOpts are the render options that affect the text art.
type ArtKeyOpts struct {
	Style string `json:"style"`
}

// ArtifactKeyOpts are the render options that affect artifacts.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Style    string  `json:"style"`
	Detailed bool    `json:"detailed"`
	RankSep  float64 `json:"rank_sep"`
	FontName string  `json:"font_name"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for built-tree caching.
func (k *DefaultKeyer) TreeKey(input string, opts TreeKeyOpts) string {
	return hashKey("tree", input, opts)
}

// ArtKey generates a key for text-art caching.
func (k *DefaultKeyer) ArtKey(treeHash string, opts ArtKeyOpts) string {
	return hashKey("art", treeHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}
