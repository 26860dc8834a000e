// Package pipeline provides the core rendering pipeline for treap.
//
// This package implements the complete build → art → export pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Construct a treap from key/value pairs and a seed
//  2. Art: Render the tree as Unicode text art
//  3. Export: Generate output in various formats (text, DOT, SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Keys:    []string{"m", "f", "t"},
//	    Seed:    7,
//	    Formats: []string{"text", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	tree, err := runner.Build(ctx, buildOpts)
//
//	// Art with an existing tree
//	art, err := runner.Art(ctx, tree, artOpts)
//
//	// Export with an existing tree
//	artifacts, err := runner.Artifacts(ctx, tree, exportOpts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sphaso/treap/pkg/cache"
	"github.com/sphaso/treap/pkg/render/dot"
	"github.com/sphaso/treap/pkg/treap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultScale is the default raster scale factor for PNG export.
	DefaultScale = 2.0
)

// DefaultStyle is the default label style.
const DefaultStyle = treap.StyleCompact

// Format constants for output formats.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported label styles.
var ValidStyles = map[string]bool{
	treap.StyleCompact: true,
	treap.StyleVerbose: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Keys    []string `json:"keys"`
	Values  []string `json:"values,omitempty"` // Parallel to Keys; empty means value = key
	Seed    uint64   `json:"seed,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Art options
	Style string `json:"style,omitempty"`

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Multi-line node labels in DOT output
	RankSep  float64  `json:"rank_sep,omitempty"`
	FontName string   `json:"font_name,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the built treap.
	Tree *treap.Treap[string, string]

	// TreeHash is the content hash of the serialized tree.
	TreeHash string

	// Art is the rendered text art.
	Art string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo

	// RunID identifies this pipeline run in logs.
	RunID string
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	TreeHeight int
	BuildTime  time.Duration
	ArtTime    time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built tree came from cache
	ArtHit    bool // Whether the text art came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: text, dot, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a label style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: compact, verbose)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetArtDefaults()
	o.SetExportDefaults()
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for building a tree.
func (o *Options) ValidateForBuild() error {
	if len(o.Keys) == 0 {
		return fmt.Errorf("at least one key is required")
	}
	if len(o.Values) != 0 && len(o.Values) != len(o.Keys) {
		return fmt.Errorf("values count %d does not match keys count %d", len(o.Values), len(o.Keys))
	}

	// Build defaults
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetArtDefaults sets default values for art rendering.
func (o *Options) SetArtDefaults() {
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForArt validates and sets defaults for art rendering.
func (o *Options) ValidateForArt() error {
	o.SetArtDefaults()
	return ValidateStyle(o.Style)
}

// SetExportDefaults sets default values for artifact export.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.RankSep == 0 {
		o.RankSep = dot.DefaultRankSep
	}
	if o.FontName == "" {
		o.FontName = dot.DefaultFontName
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for artifact export.
func (o *Options) ValidateForExport() error {
	o.SetArtDefaults()
	o.SetExportDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// TreeKeyOpts returns cache key options for the build stage.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		Seed: o.Seed,
	}
}

// ArtKeyOpts returns cache key options for art rendering.
func (o *Options) ArtKeyOpts() cache.ArtKeyOpts {
	return cache.ArtKeyOpts{
		Style: o.Style,
	}
}

// ArtifactKeyOpts returns cache key options for artifact export.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Detailed: o.Detailed,
		RankSep:  o.RankSep,
		FontName: o.FontName,
	}
}

// DOTOptions returns the DOT rendering options.
func (o *Options) DOTOptions() dot.Options {
	return dot.Options{
		RankSep:  o.RankSep,
		FontName: o.FontName,
		Detailed: o.Detailed,
	}
}
