package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/sphaso/treap/pkg/render"
	"github.com/sphaso/treap/pkg/render/art"
)

// Defaults applied by [Marshal] when the corresponding option is zero.
const (
	DefaultRankSep  = 0.5
	DefaultFontName = "SF Mono, Menlo, monospace"
)

// Options configures DOT output.
type Options struct {
	// RankSep is the vertical distance between tree levels in inches.
	// Zero means DefaultRankSep.
	RankSep float64

	// FontName is the Graphviz fontname attribute for node labels.
	// Empty means DefaultFontName.
	FontName string

	// Detailed breaks "key,priority:value" labels into separate rows
	// for key, priority and value. When false, labels are emitted as-is.
	Detailed bool
}

// Marshal converts a labeled tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG], or fed to the dot command directly.
//
// Nodes are numbered n0, n1, ... in preorder, and a node's left edge is
// always written before its right edge, so output is stable for a given
// tree. Empty trees produce a digraph with no nodes.
func Marshal(t art.Tree, opts Options) string {
	rankSep := opts.RankSep
	if rankSep <= 0 {
		rankSep = DefaultRankSep
	}
	fontName := opts.FontName
	if fontName == "" {
		fontName = DefaultFontName
	}

	var buf bytes.Buffer
	buf.WriteString("digraph treap {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=%q, fontsize=14, margin=\"0.2,0.1\"];\n", fontName)
	buf.WriteString("  edge [arrowhead=none];\n")
	fmt.Fprintf(&buf, "  ranksep=%.2f;\n", rankSep)
	buf.WriteString("  nodesep=0.3;\n\n")

	writeNode(&buf, t, 0, opts.Detailed)

	buf.WriteString("}\n")
	return buf.String()
}

// writeNode emits the node with the given id plus its subtrees, and
// returns the next free id.
func writeNode(buf *bytes.Buffer, t art.Tree, id int, detailed bool) int {
	b, ok := t.(art.Branch)
	if !ok {
		return id
	}

	nodeID := id
	next := id + 1
	fmt.Fprintf(buf, "  n%d [label=%q];\n", nodeID, fmtLabel(b.Label, detailed))

	if _, ok := b.Left.(art.Branch); ok {
		fmt.Fprintf(buf, "  n%d -> n%d;\n", nodeID, next)
		next = writeNode(buf, b.Left, next, detailed)
	}
	if _, ok := b.Right.(art.Branch); ok {
		fmt.Fprintf(buf, "  n%d -> n%d;\n", nodeID, next)
		next = writeNode(buf, b.Right, next, detailed)
	}

	return next
}

// fmtLabel shapes a node label for DOT output. Detailed mode expects the
// "key,priority:value" convention of [treap.CompactLabel] and breaks the
// priority and value onto their own rows; labels that do not follow the
// convention pass through unchanged.
func fmtLabel(label string, detailed bool) string {
	if !detailed {
		return label
	}

	key, rest, ok := strings.Cut(label, ",")
	if !ok {
		return label
	}
	prio, value, ok := strings.Cut(rest, ":")
	if !ok {
		return label
	}
	return fmt.Sprintf("%s\np: %s\nv: %s", key, prio, value)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the <svg> tag so the image keeps its aspect
// ratio when embedded at a different size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
