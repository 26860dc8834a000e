// Package pkg provides the core libraries for treap tree-art rendering.
//
// # Overview
//
// Treap builds randomized binary search trees (treaps) and draws them as
// aligned Unicode tree art, with every parent centered above its children.
// The pkg directory is organized into four main areas:
//
//  1. [treap] - The generic treap data structure (split/merge, labels)
//  2. [render] - Rendering backends (Unicode text art, Graphviz DOT)
//  3. [treapio] - The JSON tree document (serialization, exact round-trips)
//  4. [pipeline] - Orchestration (build → art → export) with caching
//
// # Architecture
//
// The typical data flow through treap:
//
//	key/value input (CLI args, stdin, API request)
//	         ↓
//	    [treap] package (randomized BST, seeded priorities)
//	         ↓
//	    [render/art] package (bottom-up block composition)
//	         ↓
//	    text art / DOT / SVG / PNG / PDF / JSON output
//
// # Quick Start
//
// Build a treap and draw it:
//
//	import "github.com/sphaso/treap/pkg/treap"
//
//	t := treap.New[string, string](treap.WithSeed(42))
//	for _, k := range []string{"m", "f", "t", "b", "j"} {
//	    t.Insert(k, k)
//	}
//	fmt.Println(t.Art(nil)) // compact labels
//
// # Main Packages
//
// ## Data Structure
//
// [treap] - Generic treap keyed by any ordered type. Insert and Delete are
// implemented with split and merge rather than rotations; priorities come
// from a PRNG seeded at construction, so the same seed and insert order
// always grow the same shape. Label formatters (compact, verbose) project
// nodes into the renderer's tree form.
//
// ## Rendering
//
// [render/art] - The Unicode layout engine. Trees are rendered bottom-up:
// each subtree becomes a rectangular block of text, and parents are composed
// above their children with ╱ and ╲ branch wedges. Blocks only ever shift
// right, labels never touch, and every parent stays centered over the span
// between its children.
//
// [render/dot] - Graphviz DOT output and SVG/PNG/PDF rasterization via
// goccy/go-graphviz. Node labels reuse the same formatters as the text art.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Serialization
//
// [treapio] - The JSON tree document: seed plus nodes in key order, each
// with its priority. Because priorities are recorded, importing a document
// reproduces the original tree shape exactly, not just its contents.
//
// ## Infrastructure
//
// [pipeline] - Complete rendering pipeline (build → art → export) used by
// the CLI and the HTTP API. Each stage is cached under a content-derived
// key; the Runner reports per-stage cache hits.
//
// [cache] - Render cache with file, Redis, and null backends plus TTL
// policy and content hashing.
//
// [store] - Named tree persistence with memory, file, and MongoDB backends.
//
// [errors] - Structured errors with machine-readable codes, shared by the
// CLI and the API (which maps codes to HTTP statuses).
//
// [observability] - Hook interfaces for pipeline, cache, and HTTP events.
//
// [buildinfo] - Version, commit, and build date, set via -ldflags.
//
// # Common Workflows
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Keys:    []string{"m", "f", "t"},
//	    Seed:    7,
//	    Formats: []string{"text", "svg"},
//	})
//
// Round-trip a tree document:
//
//	doc, _ := treapio.Marshal(t)
//	same, _ := treapio.Unmarshal(doc) // identical shape
//
// Draw with verbose labels:
//
//	fmt.Println(t.Art(treap.VerboseLabel[string, string]))
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/render/art/...   # Specific package
//	go test -run Example           # Examples only
//
// [treap]: https://pkg.go.dev/github.com/sphaso/treap/pkg/treap
// [render]: https://pkg.go.dev/github.com/sphaso/treap/pkg/render
// [render/art]: https://pkg.go.dev/github.com/sphaso/treap/pkg/render/art
// [render/dot]: https://pkg.go.dev/github.com/sphaso/treap/pkg/render/dot
// [treapio]: https://pkg.go.dev/github.com/sphaso/treap/pkg/treapio
// [pipeline]: https://pkg.go.dev/github.com/sphaso/treap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/sphaso/treap/pkg/cache
// [store]: https://pkg.go.dev/github.com/sphaso/treap/pkg/store
// [errors]: https://pkg.go.dev/github.com/sphaso/treap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sphaso/treap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/sphaso/treap/pkg/buildinfo
package pkg
