package pipeline

import (
	"testing"

	"github.com/sphaso/treap/pkg/render/dot"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"text", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"compact", false},
		{"verbose", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{
		Keys: []string{"a", "b"},
	}

	if err := opts.ValidateForBuild(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateForBuild(t *testing.T) {
	// Missing keys
	opts := Options{}
	if err := opts.ValidateForBuild(); err == nil {
		t.Error("Missing keys should fail")
	}

	// Values count mismatch
	opts = Options{Keys: []string{"a", "b"}, Values: []string{"one"}}
	if err := opts.ValidateForBuild(); err == nil {
		t.Error("Mismatched values count should fail")
	}

	// Valid with values
	opts = Options{Keys: []string{"a", "b"}, Values: []string{"one", "two"}}
	if err := opts.ValidateForBuild(); err != nil {
		t.Errorf("Valid paired options should pass: %v", err)
	}

	// Valid without values
	opts = Options{Keys: []string{"a"}}
	if err := opts.ValidateForBuild(); err != nil {
		t.Errorf("Valid keys-only options should pass: %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{
		Keys: []string{"a", "b"},
	}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalSeed := opts.Seed
	originalStyle := opts.Style
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Seed != originalSeed {
		t.Error("Seed changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestSetArtDefaults(t *testing.T) {
	opts := Options{}
	opts.SetArtDefaults()

	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
}

func TestSetExportDefaults(t *testing.T) {
	opts := Options{}
	opts.SetExportDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats should be [text], got %v", opts.Formats)
	}
	if opts.RankSep != dot.DefaultRankSep {
		t.Errorf("RankSep should be %f, got %f", dot.DefaultRankSep, opts.RankSep)
	}
	if opts.FontName != dot.DefaultFontName {
		t.Errorf("FontName should be %s, got %s", dot.DefaultFontName, opts.FontName)
	}
}

func TestValidateForExport(t *testing.T) {
	opts := Options{Formats: []string{"bmp"}}
	if err := opts.ValidateForExport(); err == nil {
		t.Error("Unknown format should fail")
	}

	opts = Options{Style: "fancy"}
	if err := opts.ValidateForExport(); err == nil {
		t.Error("Unknown style should fail")
	}

	opts = Options{}
	if err := opts.ValidateForExport(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Style: "verbose", Detailed: true, RankSep: 1.5, FontName: "Courier"}

	ko := opts.ArtifactKeyOpts("svg")
	if ko.Format != "svg" {
		t.Errorf("Format should be svg, got %s", ko.Format)
	}
	if ko.Style != "verbose" || !ko.Detailed || ko.RankSep != 1.5 || ko.FontName != "Courier" {
		t.Errorf("Key opts should carry render options, got %+v", ko)
	}
}
