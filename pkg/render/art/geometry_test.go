package art

import (
	"slices"
	"testing"
)

func TestMiddleLabelPos(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"all blank", "   ", 3},
		{"single char", "x", 0},
		{"two chars", "ab", 1},
		{"odd length", "abc", 1},
		{"leading and trailing blanks", "   abc ", 4},
		{"leading blanks only", "  ab", 3},
		{"trailing blanks only", "ab  ", 1},
		{"multi-byte runes", "αβγ", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := middleLabelPos(tt.in); got != tt.want {
				t.Errorf("middleLabelPos(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestBranchLines(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"zero", 0, nil},
		{"apex", 1, []string{"╱╲"}},
		{"two", 2, []string{" ╱╲", "╱  ╲"}},
		{"three", 3, []string{"  ╱╲", " ╱  ╲", "╱    ╲"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := branchLines(tt.n); !slices.Equal(got, tt.want) {
				t.Errorf("branchLines(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestBranchLinesShape(t *testing.T) {
	for n := 1; n <= 8; n++ {
		rows := branchLines(n)
		if len(rows) != n {
			t.Fatalf("branchLines(%d) has %d rows, want %d", n, len(rows), n)
		}
		for i, row := range rows {
			r := []rune(row)
			lead := 0
			for lead < len(r) && r[lead] == ' ' {
				lead++
			}
			if lead != n-1-i {
				t.Errorf("branchLines(%d) row %d has %d leading spaces, want %d", n, i, lead, n-1-i)
			}
			if got, want := len(r), n+i+1; got != want {
				t.Errorf("branchLines(%d) row %d is %d wide, want %d", n, i, got, want)
			}
		}
	}
}

func TestPad(t *testing.T) {
	if got := pad(0); got != "" {
		t.Errorf("pad(0) = %q, want empty", got)
	}
	if got := pad(4); got != "    " {
		t.Errorf("pad(4) = %q, want four spaces", got)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"╱╲", 2},
		{"αβγ", 3},
	}
	for _, tt := range tests {
		if got := width(tt.in); got != tt.want {
			t.Errorf("width(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
