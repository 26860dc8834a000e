package art

import (
	"strings"
	"unicode/utf8"
)

// Branch stroke glyphs.
const (
	strokeLeft  = "╱"
	strokeRight = "╲"
)

// pad returns a run of n spaces.
func pad(n int) string { return strings.Repeat(" ", n) }

// width returns the number of characters in s. All layout arithmetic counts
// characters rather than bytes so multi-byte labels and the stroke glyphs
// occupy one column each.
func width(s string) int { return utf8.RuneCountInString(s) }

// middleLabelPos returns the column of the horizontal center of the
// non-blank content of s, counted from the start of s. With p leading
// spaces and c characters of content after stripping both ends, the center
// is p + c/2. An all-blank string centers at the end of its blank run.
func middleLabelPos(s string) int {
	r := []rune(s)
	p := 0
	for p < len(r) && r[p] == ' ' {
		p++
	}
	e := len(r)
	for e > p && r[e-1] == ' ' {
		e--
	}
	return p + (e-p)/2
}

// branchLines returns the n rows of a V-shaped wedge. Row i has n-1-i
// leading spaces, a ╱, 2*i spaces, and a ╲, so the strokes meet at a
// single apex row when n is 1 and spread two columns per row below it.
// n == 0 yields no rows.
func branchLines(n int) []string {
	lines := make([]string, 0, n)
	for i := range n {
		lines = append(lines, pad(n-1-i)+strokeLeft+pad(2*i)+strokeRight)
	}
	return lines
}
