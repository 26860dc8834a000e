// Package art renders labeled binary trees as Unicode text.
//
// # Overview
//
// The renderer takes a [Tree] whose nodes already carry single-line labels
// and produces a block of text in which every label is centered above the
// midpoint between its children, connected by diagonal ╱ and ╲ strokes:
//
//	   e,84:x
//	     ╱╲
//	    ╱  ╲
//	   ╱    ╲
//	c,51:y f,12:z
//	  ╱
//	a,3:w
//
// Layout is computed bottom-up. Each subtree renders into its own block of
// rows first; the parent then measures the blocks (center columns, widest
// line) and stitches them together, shifting whole blocks right as needed.
// Nothing is ever shifted left, so column arithmetic stays non-negative.
//
// # Shapes
//
// A node with both children gets a V-shaped wedge whose height is half the
// distance between the child centers, so widely separated children get a
// taller wedge. A node with a single child gets one stroke row regardless
// of distance: ╱ one column left of the parent's center for a left child,
// ╲ one column right for a right child. The two treatments are distinct on
// purpose; collapsing them would change single-child output.
//
// # Usage
//
//	t := art.Branch{
//		Label: "b",
//		Left:  art.Leaf("a"),
//		Right: art.Leaf("c"),
//	}
//	fmt.Println(art.Render(t))
//
// Callers that hold a richer structure project it into a Tree first; the
// treap package does this with a pluggable label formatter.
package art
