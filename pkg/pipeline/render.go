package pipeline

import (
	"context"
	"fmt"

	"github.com/sphaso/treap/pkg/render/dot"
	"github.com/sphaso/treap/pkg/treap"
	"github.com/sphaso/treap/pkg/treapio"
)

// RenderArt renders a tree as text art in the configured label style.
func RenderArt(t *treap.Treap[string, string], opts Options) (string, error) {
	if err := opts.ValidateForArt(); err != nil {
		return "", err
	}
	label, ok := treap.LabelStyle[string, string](opts.Style)
	if !ok {
		return "", fmt.Errorf("invalid style: %q", opts.Style)
	}
	return t.Art(label), nil
}

// RenderArtifacts generates output artifacts in the requested formats.
//
// The DOT-derived formats (dot, svg, png, pdf) always use compact node
// labels; opts.Detailed expands them to multi-line labels in the graph.
// The text artifact follows opts.Style like RenderArt.
func RenderArtifacts(ctx context.Context, t *treap.Treap[string, string], opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForExport(); err != nil {
		return nil, err
	}

	// Generate the DOT graph once for all formats derived from it.
	var dotGraph string
	for _, format := range opts.Formats {
		if format != FormatText && format != FormatJSON {
			dotGraph = dot.Marshal(t.ArtTree(nil), opts.DOTOptions())
			break
		}
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			var art string
			art, err = RenderArt(t, opts)
			data = []byte(art)
		case FormatDOT:
			data = []byte(dotGraph)
		case FormatSVG:
			data, err = dot.RenderSVG(ctx, dotGraph)
		case FormatPNG:
			data, err = dot.RenderPNG(ctx, dotGraph, DefaultScale)
		case FormatPDF:
			data, err = dot.RenderPDF(ctx, dotGraph)
		case FormatJSON:
			data, err = treapio.Marshal(t)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
