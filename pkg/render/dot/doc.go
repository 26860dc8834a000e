// Package dot converts labeled trees to Graphviz DOT and renders them
// to SVG, PNG, and PDF.
//
// [Marshal] walks an [art.Tree] and emits a plain digraph with one node
// per branch, preserving left/right child order. The same tree projection
// used for text art drives the DOT output, so both views always agree on
// labels and structure.
//
//	g := dot.Marshal(tree, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, g)
//
// Rendering uses the embedded Graphviz engine from
// github.com/goccy/go-graphviz; PNG and PDF conversion additionally shell
// out to rsvg-convert (librsvg).
package dot
