// Package treap implements a randomized binary search tree with pluggable
// node labeling for visualization.
//
// # Overview
//
// A treap keeps two invariants at once: keys follow binary search tree
// order, and randomly assigned priorities follow max-heap order. The random
// priorities balance the tree in expectation, so no explicit rebalancing is
// needed. Insert and delete are built on split and merge and never rotate.
//
//	t := treap.New[string, string](treap.WithSeed(42))
//	t.Insert("b", "two")
//	t.Insert("a", "one")
//	t.Insert("c", "three")
//
// # Drawing
//
// Treaps are this project's showcase structure for the text renderer: the
// shape changes with every seed, which makes the art genuinely useful when
// debugging. [Treap.Art] projects the current shape through a [LabelFunc]
// and hands it to the art renderer:
//
//	fmt.Println(t.Art(treap.VerboseLabel))
//
// Two label presets exist, [CompactLabel] ("key,priority:value") and
// [VerboseLabel] ("(k: key, p: priority) -> value"); any function with the
// right signature works as well.
//
// # Determinism
//
// With [WithSeed], the same insertion sequence always produces the same
// shape. The pipeline and CLI rely on this to cache renderings by input.
package treap
