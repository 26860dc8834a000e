package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sphaso/treap/pkg/treap"
)

// press feeds one key message through Update and returns the new model.
func press(t *testing.T, m PlayModel, msg tea.KeyMsg) PlayModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(PlayModel)
	if !ok {
		t.Fatalf("Update() returned %T, want PlayModel", next)
	}
	return pm
}

// typeLine types s rune by rune and presses enter.
func typeLine(t *testing.T, m PlayModel, s string) PlayModel {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestPlayModelInsert(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	m = typeLine(t, m, "m")

	if m.Tree.Len() != 1 {
		t.Fatalf("tree length = %d, want 1", m.Tree.Len())
	}
	if !m.Tree.Has("m") {
		t.Error("tree should contain key m")
	}
	if !strings.Contains(m.Status, "Inserted") {
		t.Errorf("status = %q, want an Inserted message", m.Status)
	}
	if m.Input != "" {
		t.Errorf("input should be cleared after enter, got %q", m.Input)
	}
}

func TestPlayModelInsertKeyValue(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	m = typeLine(t, m, "m=moon")

	v, ok := m.Tree.Get("m")
	if !ok || v != "moon" {
		t.Errorf("Get(m) = (%q, %v), want (moon, true)", v, ok)
	}
}

func TestPlayModelUpdateExisting(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	m = typeLine(t, m, "m")
	m = typeLine(t, m, "m=moon")

	if m.Tree.Len() != 1 {
		t.Errorf("tree length = %d, want 1 after duplicate insert", m.Tree.Len())
	}
	if !strings.Contains(m.Status, "Updated") {
		t.Errorf("status = %q, want an Updated message", m.Status)
	}
	if v, _ := m.Tree.Get("m"); v != "moon" {
		t.Errorf("Get(m) = %q, want moon (last value wins)", v)
	}
}

func TestPlayModelDelete(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	m = typeLine(t, m, "m")
	m = typeLine(t, m, "-m")

	if m.Tree.Len() != 0 {
		t.Errorf("tree length = %d, want 0 after delete", m.Tree.Len())
	}
	if !strings.Contains(m.Status, "Deleted") {
		t.Errorf("status = %q, want a Deleted message", m.Status)
	}
}

func TestPlayModelDeleteMissing(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	m = typeLine(t, m, "m")
	m = typeLine(t, m, "-x")

	if m.Tree.Len() != 1 {
		t.Errorf("tree length = %d, want 1 (delete of missing key is a no-op)", m.Tree.Len())
	}
	if !strings.Contains(m.Status, "not in the tree") {
		t.Errorf("status = %q, want a not-in-tree message", m.Status)
	}
}

func TestPlayModelStyleToggle(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Style != treap.StyleVerbose {
		t.Errorf("style after tab = %q, want %q", m.Style, treap.StyleVerbose)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Style != treap.StyleCompact {
		t.Errorf("style after second tab = %q, want %q", m.Style, treap.StyleCompact)
	}
}

func TestPlayModelReset(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	m = typeLine(t, m, "m")
	m = typeLine(t, m, "f")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Tree.Len() != 0 {
		t.Errorf("tree length = %d, want 0 after reset", m.Tree.Len())
	}
	if m.Seed != 7 {
		t.Errorf("seed = %d, want 7 preserved across reset", m.Seed)
	}
}

func TestPlayModelBackspace(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	for _, r := range "ab" {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Input != "a" {
		t.Errorf("input after backspace = %q, want %q", m.Input, "a")
	}

	// Backspace on empty input is a no-op.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Input != "" {
		t.Errorf("input = %q, want empty", m.Input)
	}
}

func TestPlayModelQuit(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("esc should produce a quit command")
	}
}

func TestPlayModelDeterministicShape(t *testing.T) {
	a := NewPlayModel(42, treap.StyleCompact)
	b := NewPlayModel(42, treap.StyleCompact)
	for _, key := range []string{"m", "f", "t", "b", "j"} {
		a = typeLine(t, a, key)
		b = typeLine(t, b, key)
	}

	if a.art() != b.art() {
		t.Error("same seed and insert order should draw the same tree")
	}
}

func TestPlayModelViewEmpty(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	view := m.View()

	if !strings.Contains(view, "empty tree") {
		t.Error("empty tree view should show the empty hint")
	}
	if !strings.Contains(view, "0 nodes") {
		t.Error("view should show the node count")
	}
}

func TestPlayModelKeyArgs(t *testing.T) {
	m := NewPlayModel(7, treap.StyleCompact)
	m = typeLine(t, m, "b=2")
	m = typeLine(t, m, "a")

	args := m.keyArgs()
	want := []string{"a", "b=2"}
	if len(args) != len(want) {
		t.Fatalf("keyArgs() = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("keyArgs()[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}
