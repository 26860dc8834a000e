package art

// Tree is a binary tree whose nodes carry pre-rendered labels. It is the
// input consumed by [Render]: callers project their own structure into this
// shape and hand it off (see the treap package for the canonical projection).
//
// Tree is a closed sum with exactly two variants, [Empty] and [Branch].
// Modelling the absent subtree as an explicit variant rather than a nil
// pointer keeps the renderer's case dispatch exhaustive.
type Tree interface {
	isTree()
}

// Empty is the absent subtree. It renders to nothing.
type Empty struct{}

// Branch is a node carrying a label and two subtrees, either or both of
// which may be Empty.
//
// Label must be a single line. The renderer does not validate this: a label
// with an embedded line break produces undefined layout, and that is the
// caller's responsibility to prevent.
type Branch struct {
	Label string
	Left  Tree
	Right Tree
}

func (Empty) isTree()  {}
func (Branch) isTree() {}

// Leaf returns a Branch with the given label and no children.
func Leaf(label string) Branch {
	return Branch{Label: label, Left: Empty{}, Right: Empty{}}
}
