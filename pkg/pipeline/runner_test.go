package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sphaso/treap/pkg/cache"
)

func silentLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testOptions() Options {
	return Options{
		Keys: []string{"m", "f", "t"},
		Seed: 7,
	}
}

func TestBuildDeterministic(t *testing.T) {
	t1, err := Build(testOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t2, err := Build(testOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if t1.Len() != 3 || t2.Len() != 3 {
		t.Errorf("Expected 3 nodes, got %d and %d", t1.Len(), t2.Len())
	}
	if t1.Art(nil) != t2.Art(nil) {
		t.Error("Same keys and seed should produce the same tree")
	}
}

func TestBuildValuesDefaultToKeys(t *testing.T) {
	tr, err := Build(Options{Keys: []string{"a"}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if v, ok := tr.Get("a"); !ok || v != "a" {
		t.Errorf("Value should default to key, got %q (ok=%v)", v, ok)
	}
}

func TestBuildPairsValues(t *testing.T) {
	tr, err := Build(Options{Keys: []string{"a", "b"}, Values: []string{"one", "two"}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if v, _ := tr.Get("a"); v != "one" {
		t.Errorf("Get(a) = %q, want one", v)
	}
	if v, _ := tr.Get("b"); v != "two" {
		t.Errorf("Get(b) = %q, want two", v)
	}
}

func TestBuildRejectsInvalidKey(t *testing.T) {
	if _, err := Build(Options{Keys: []string{""}}); err == nil {
		t.Error("Empty key should fail")
	}
	if _, err := Build(Options{Keys: []string{"a\x00b"}}); err == nil {
		t.Error("Control characters in key should fail")
	}
}

func TestRenderArtStyles(t *testing.T) {
	tr, err := Build(testOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	compact, err := RenderArt(tr, Options{Style: "compact"})
	if err != nil {
		t.Fatalf("RenderArt compact failed: %v", err)
	}
	if !strings.Contains(compact, "m,") {
		t.Errorf("Compact art should contain compact labels:\n%s", compact)
	}

	verbose, err := RenderArt(tr, Options{Style: "verbose"})
	if err != nil {
		t.Fatalf("RenderArt verbose failed: %v", err)
	}
	if !strings.Contains(verbose, "(k: m") {
		t.Errorf("Verbose art should contain verbose labels:\n%s", verbose)
	}
}

func TestRenderArtifactsFormats(t *testing.T) {
	tr, err := Build(testOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	opts := Options{Formats: []string{"text", "dot", "json"}}
	artifacts, err := RenderArtifacts(context.Background(), tr, opts)
	if err != nil {
		t.Fatalf("RenderArtifacts failed: %v", err)
	}

	if len(artifacts) != 3 {
		t.Fatalf("Expected 3 artifacts, got %d", len(artifacts))
	}
	if len(artifacts["text"]) == 0 {
		t.Error("Text artifact should not be empty")
	}
	if !strings.HasPrefix(string(artifacts["dot"]), "digraph treap {") {
		t.Errorf("DOT artifact should be a digraph, got: %s", artifacts["dot"])
	}
	if !strings.Contains(string(artifacts["json"]), `"seed":7`) {
		t.Errorf("JSON artifact should carry the seed, got: %s", artifacts["json"])
	}
}

func TestRenderArtifactsUnknownFormat(t *testing.T) {
	tr, err := Build(testOptions())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, err := RenderArtifacts(context.Background(), tr, Options{Formats: []string{"bmp"}}); err == nil {
		t.Error("Unknown format should fail")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, silentLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Tree == nil || result.Tree.Len() != 3 {
		t.Error("Result should carry the built tree")
	}
	if result.Art == "" {
		t.Error("Result should carry the rendered art")
	}
	if !bytes.Equal(result.Artifacts["text"], []byte(result.Art)) {
		t.Error("Default text artifact should match the art")
	}
	if result.TreeHash == "" {
		t.Error("Result should carry the tree hash")
	}
	if result.RunID == "" {
		t.Error("Result should carry a run ID")
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount should be 3, got %d", result.Stats.NodeCount)
	}
	if result.Stats.TreeHeight < 2 || result.Stats.TreeHeight > 3 {
		t.Errorf("TreeHeight for 3 nodes should be 2 or 3, got %d", result.Stats.TreeHeight)
	}

	// NullCache never hits
	if result.CacheInfo.BuildHit || result.CacheInfo.ArtHit || result.CacheInfo.ExportHit {
		t.Error("NullCache should never report cache hits")
	}
}

func TestRunnerExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	r := NewRunner(fc, nil, silentLogger())
	defer r.Close()

	ctx := context.Background()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("First execute failed: %v", err)
	}
	if first.CacheInfo.BuildHit || first.CacheInfo.ArtHit || first.CacheInfo.ExportHit {
		t.Error("First run should miss on all stages")
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Second execute failed: %v", err)
	}
	if !second.CacheInfo.BuildHit || !second.CacheInfo.ArtHit || !second.CacheInfo.ExportHit {
		t.Errorf("Second run should hit on all stages, got %+v", second.CacheInfo)
	}
	if second.Art != first.Art {
		t.Error("Cached art should match the original")
	}
	if second.TreeHash != first.TreeHash {
		t.Error("Cached tree should hash identically")
	}
	if second.RunID == first.RunID {
		t.Error("Each run should get its own run ID")
	}
}

func TestRunnerExecuteRefresh(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	r := NewRunner(fc, nil, silentLogger())
	defer r.Close()

	ctx := context.Background()

	if _, err := r.Execute(ctx, testOptions()); err != nil {
		t.Fatalf("First execute failed: %v", err)
	}

	opts := testOptions()
	opts.Refresh = true
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Refresh execute failed: %v", err)
	}

	// Refresh bypasses the build cache; downstream stages are content-keyed
	// and still hit because the rebuilt tree is identical.
	if result.CacheInfo.BuildHit {
		t.Error("Refresh should bypass the build cache")
	}
	if !result.CacheInfo.ArtHit {
		t.Error("Art stage should hit for an identical rebuilt tree")
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, silentLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("Execute without keys should fail")
	}
}
