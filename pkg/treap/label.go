package treap

import (
	"cmp"
	"fmt"

	"github.com/sphaso/treap/pkg/render/art"
)

// Label style names recognized across the CLI, pipeline and API.
const (
	StyleCompact = "compact"
	StyleVerbose = "verbose"
)

// LabelFunc renders one node's data as a single-line label for drawing.
// Implementations must not emit line breaks; the renderer does not check.
type LabelFunc[K cmp.Ordered, V any] func(key K, priority int, value V) string

// CompactLabel formats a node as "key,priority:value".
func CompactLabel[K cmp.Ordered, V any](key K, priority int, value V) string {
	return fmt.Sprintf("%v,%v:%v", key, priority, value)
}

// VerboseLabel formats a node as "(k: key, p: priority) -> value".
func VerboseLabel[K cmp.Ordered, V any](key K, priority int, value V) string {
	return fmt.Sprintf("(k: %v, p: %v) -> %v", key, priority, value)
}

// LabelStyle returns the preset formatter registered under name.
func LabelStyle[K cmp.Ordered, V any](name string) (LabelFunc[K, V], bool) {
	switch name {
	case StyleCompact:
		return CompactLabel[K, V], true
	case StyleVerbose:
		return VerboseLabel[K, V], true
	}
	return nil, false
}

// ArtTree projects the treap's current shape into the renderer's tree form,
// labeling every node with fn (CompactLabel when fn is nil). The projection
// is a snapshot: later mutations of t do not affect it.
func (t *Treap[K, V]) ArtTree(fn LabelFunc[K, V]) art.Tree {
	if fn == nil {
		fn = CompactLabel[K, V]
	}
	return project(t.root, fn)
}

// Art renders the treap as text art using fn (CompactLabel when fn is nil).
func (t *Treap[K, V]) Art(fn LabelFunc[K, V]) string {
	return art.Render(t.ArtTree(fn))
}

func project[K cmp.Ordered, V any](n *node[K, V], fn LabelFunc[K, V]) art.Tree {
	if n == nil {
		return art.Empty{}
	}
	return art.Branch{
		Label: fn(n.key, n.priority, n.value),
		Left:  project(n.left, fn),
		Right: project(n.right, fn),
	}
}
