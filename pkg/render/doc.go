// Package render provides the visualization backends for treaps.
//
// # Overview
//
// Rendering is split into two backends that consume the same labeled tree
// form ([art.Tree]):
//
//   - [art]: Unicode text art, the primary output. Labels are stacked and
//     centered over their children and joined with diagonal strokes.
//   - [dot]: Graphviz DOT output, plus SVG/PNG/PDF conversion through the
//     embedded Graphviz engine.
//
// # Text art
//
//	tree := t.ArtTree(treap.CompactLabel)
//	fmt.Println(art.Render(tree))
//
// # Graphviz
//
//	g := dot.Marshal(tree, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, g)
//
// [art]: github.com/sphaso/treap/pkg/render/art
// [dot]: github.com/sphaso/treap/pkg/render/dot
package render
