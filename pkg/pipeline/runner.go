package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sphaso/treap/pkg/cache"
	"github.com/sphaso/treap/pkg/observability"
	"github.com/sphaso/treap/pkg/treap"
	"github.com/sphaso/treap/pkg/treapio"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → art → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
		RunID:     uuid.New().String(),
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(opts.Keys))
	tree, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	nodeCount := 0
	if tree != nil {
		nodeCount = tree.Len()
	}
	observability.Pipeline().OnBuildComplete(ctx, nodeCount, time.Since(buildStart), err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Tree = tree
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = tree.Len()
	result.Stats.TreeHeight = tree.Height()
	result.CacheInfo.BuildHit = buildHit

	// Compute tree hash for cache keys and API responses
	if treeData, err := treapio.Marshal(tree); err == nil {
		result.TreeHash = cache.Hash(treeData)
	}

	r.Logger.Info("built tree",
		"run", result.RunID,
		"nodes", tree.Len(),
		"height", tree.Height(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Art
	artStart := time.Now()
	observability.Pipeline().OnArtStart(ctx, opts.Style)
	art, artHit, err := r.ArtWithCacheInfo(ctx, tree, opts)
	observability.Pipeline().OnArtComplete(ctx, opts.Style, time.Since(artStart), err)
	if err != nil {
		return nil, fmt.Errorf("art: %w", err)
	}
	result.Art = art
	result.Stats.ArtTime = time.Since(artStart)
	result.CacheInfo.ArtHit = artHit

	r.Logger.Info("rendered art",
		"run", result.RunID,
		"style", opts.Style,
		"duration", result.Stats.ArtTime)

	// Stage 3: Export
	exportStart := time.Now()
	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	artifacts, exportHit, err := r.ArtifactsWithCacheInfo(ctx, tree, opts)
	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(exportStart), err)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported artifacts",
		"run", result.RunID,
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// BuildWithCacheInfo builds a tree with caching and returns cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*treap.Treap[string, string], bool, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	cacheKey := r.Keyer.TreeKey(buildDigest(opts), opts.TreeKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			t, err := treapio.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return t, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "tree")

	// Build
	t, err := Build(opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := treapio.Marshal(t); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTree)
			observability.Cache().OnCacheSet(ctx, "tree", len(data))
		}
	}

	return t, false, nil // Cache miss
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*treap.Treap[string, string], error) {
	t, _, err := r.BuildWithCacheInfo(ctx, opts)
	return t, err
}

// ArtWithCacheInfo renders text art with caching and returns cache hit info.
func (r *Runner) ArtWithCacheInfo(ctx context.Context, t *treap.Treap[string, string], opts Options) (string, bool, error) {
	if err := opts.ValidateForArt(); err != nil {
		return "", false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	treeData, err := treapio.Marshal(t)
	if err != nil {
		return "", false, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	treeHash := cache.Hash(treeData)
	cacheKey := r.Keyer.ArtKey(treeHash, opts.ArtKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "art")
		return string(data), true, nil // Cache hit
	}
	observability.Cache().OnCacheMiss(ctx, "art")

	// Render
	art, err := RenderArt(t, opts)
	if err != nil {
		return "", false, err
	}

	// Cache the result
	_ = r.Cache.Set(ctx, cacheKey, []byte(art), cache.TTLArt)
	observability.Cache().OnCacheSet(ctx, "art", len(art))

	return art, false, nil // Cache miss
}

// Art is a convenience wrapper that calls ArtWithCacheInfo and discards the cache hit info.
func (r *Runner) Art(ctx context.Context, t *treap.Treap[string, string], opts Options) (string, error) {
	art, _, err := r.ArtWithCacheInfo(ctx, t, opts)
	return art, err
}

// ArtifactsWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) ArtifactsWithCacheInfo(ctx context.Context, t *treap.Treap[string, string], opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from tree data
	treeData, err := treapio.Marshal(t)
	if err != nil {
		return nil, false, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	treeHash := cache.Hash(treeData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderArtifacts(ctx, t, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Artifacts is a convenience wrapper that calls ArtifactsWithCacheInfo and discards the cache hit info.
func (r *Runner) Artifacts(ctx context.Context, t *treap.Treap[string, string], opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ArtifactsWithCacheInfo(ctx, t, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
