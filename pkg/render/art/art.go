package art

import "strings"

// Render draws t as multi-line text: every label sits centered above the
// midpoint between its children's centers, joined to them by diagonal
// strokes. Rows are separated by '\n' with no trailing newline; an Empty
// tree renders as "".
//
// Render is pure. It never mutates t, holds no state between calls, and is
// safe to call concurrently, including on a shared tree. Recursion depth
// scales with tree height.
func Render(t Tree) string {
	return strings.Join(lines(t), "\n")
}

// lines renders t bottom-up into its rows. Only a Branch produces rows, so
// a subtree is Empty exactly when its rendering has none.
func lines(t Tree) []string {
	b, ok := t.(Branch)
	if !ok {
		return nil
	}

	left := lines(b.Left)
	right := lines(b.Right)

	switch {
	case len(left) == 0 && len(right) == 0:
		return []string{b.Label}
	case len(right) == 0:
		return composeLeft(b.Label, left)
	case len(left) == 0:
		return composeRight(b.Label, right)
	default:
		return compose(b.Label, left, right)
	}
}

// composeLeft stacks the root label above a lone left subtree. A single ╱
// stroke sits one column left of the root's center, directly above the
// subtree's center. Whichever of the two is too far left is shifted right;
// the other stays put.
func composeLeft(label string, left []string) []string {
	rootMid := middleLabelPos(label)
	leftMid := middleLabelPos(left[0])

	var rootShift, childShift int
	switch {
	case rootMid == leftMid:
		rootShift = 1
	case rootMid > leftMid:
		childShift = rootMid - leftMid - 1
	default:
		rootShift = leftMid - rootMid + 1
	}

	out := make([]string, 0, len(left)+2)
	out = append(out, pad(rootShift)+label)
	out = append(out, pad(rootMid+rootShift-1)+strokeLeft)
	for _, l := range left {
		out = append(out, pad(childShift)+l)
	}
	return out
}

// composeRight mirrors composeLeft for a lone right subtree: one ╲ stroke
// one column right of the root's center, above the subtree's center.
func composeRight(label string, right []string) []string {
	rootMid := middleLabelPos(label)
	rightMid := middleLabelPos(right[0])

	var rootShift, childShift int
	switch {
	case rootMid == rightMid:
		childShift = 1
	case rootMid > rightMid:
		childShift = rootMid - rightMid + 1
	default:
		rootShift = rightMid - rootMid - 1
	}

	out := make([]string, 0, len(right)+2)
	out = append(out, pad(rootShift)+label)
	out = append(out, pad(rootMid+rootShift+1)+strokeRight)
	for _, l := range right {
		out = append(out, pad(childShift)+l)
	}
	return out
}

// compose places two rendered subtrees side by side and joins them to the
// root with a wedge. The left block is padded to its widest line plus a one
// column gutter; the wedge height grows with the distance between the child
// centers. The root is shifted right to sit over the midpoint of the two
// centers, or, when its own center is already past that column, the
// children are pushed right instead. The root never shifts left.
func compose(label string, left, right []string) []string {
	leftMid := middleLabelPos(left[0])

	leftWidth := 0
	for _, l := range left {
		leftWidth = max(leftWidth, width(l))
	}
	leftWidth++

	rightOffMiddle := leftWidth + middleLabelPos(right[0])
	childDistance := rightOffMiddle - leftMid
	branchHeight := childDistance / 2
	rootMustMiddle := (leftMid + rightOffMiddle) / 2

	rootMid := middleLabelPos(label)
	var rootShift, childShift int
	switch {
	case rootMid < rootMustMiddle:
		rootShift = rootMustMiddle - rootMid
	case rootMid > rootMustMiddle:
		childShift = rootMid - rootMustMiddle
	}

	out := make([]string, 0, 1+branchHeight+max(len(left), len(right)))
	out = append(out, pad(rootShift)+label)

	// The wedge bottom lands on the left child's center; its apex then hugs
	// the root's center because rootMustMiddle = leftMid + branchHeight.
	for _, l := range branchLines(branchHeight) {
		out = append(out, pad(leftMid+childShift)+l)
	}

	for i := range max(len(left), len(right)) {
		switch {
		case i < len(left) && i < len(right):
			out = append(out, pad(childShift)+left[i]+pad(leftWidth-width(left[i]))+right[i])
		case i < len(left):
			out = append(out, pad(childShift)+left[i])
		default:
			out = append(out, pad(childShift)+right[i])
		}
	}
	return out
}
