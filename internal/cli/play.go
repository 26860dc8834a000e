package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sphaso/treap/pkg/errors"
	"github.com/sphaso/treap/pkg/pipeline"
	"github.com/sphaso/treap/pkg/treap"
)

// Playground styles
var (
	playArtStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 2)
	playPromptStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

// playCommand creates the play command, an interactive treap playground.
func (c *CLI) playCommand() *cobra.Command {
	var (
		seed  uint64
		style string
	)

	cmd := &cobra.Command{
		Use:   "play [key[=value]...]",
		Short: "Edit a treap interactively and watch it rebalance",
		Long: `Edit a treap interactively and watch it rebalance.

Type a key (optionally key=value) and press enter to insert it; the tree
redraws after every change. Prefix a key with '-' to delete it. Tab toggles
between compact and verbose labels, ctrl+r starts over with an empty tree.

Any starting keys given as arguments are inserted before the first draw.
The seed makes a session reproducible: the same inserts in the same order
always grow the same shape.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if style != "" {
				if err := pipeline.ValidateStyle(style); err != nil {
					return err
				}
			}
			return c.runPlay(cmd, args, seed, style)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().StringVar(&style, "style", "", "label style: compact (default), verbose")

	return cmd
}

// runPlay seeds the playground model and hands the terminal to bubbletea.
func (c *CLI) runPlay(cmd *cobra.Command, args []string, seed uint64, style string) error {
	if seed == 0 {
		seed = c.Config.Seed
	}
	if seed == 0 {
		seed = pipeline.DefaultSeed
	}
	if style == "" {
		style = c.Config.Style
	}
	if style == "" {
		style = pipeline.DefaultStyle
	}

	m := NewPlayModel(seed, style)
	for _, arg := range args {
		key, value := parseKeyValue(arg)
		if err := errors.ValidateKey(key); err != nil {
			return err
		}
		m.Tree.Insert(key, value)
	}

	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Leave the last drawing behind so the session has a takeaway.
	if fm, ok := finalModel.(PlayModel); ok && fm.Tree.Len() > 0 {
		printNewline()
		fmt.Println(fm.art())
		printNewline()
		printNextStep("Keep it", "treap build -o tree.json "+strings.Join(fm.keyArgs(), " "))
	}
	return nil
}

// =============================================================================
// PlayModel - Interactive treap playground
// =============================================================================

// PlayModel is the bubbletea model for the treap playground.
type PlayModel struct {
	Tree   *treap.Treap[string, string]
	Seed   uint64
	Style  string
	Input  string
	Status string
	Width  int
}

// NewPlayModel creates a playground around an empty treap.
func NewPlayModel(seed uint64, style string) PlayModel {
	return PlayModel{
		Tree:  treap.New[string, string](treap.WithSeed(seed)),
		Seed:  seed,
		Style: style,
	}
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.commit(), nil
		case "backspace":
			if m.Input != "" {
				r := []rune(m.Input)
				m.Input = string(r[:len(r)-1])
			}
		case "tab":
			if m.Style == treap.StyleCompact {
				m.Style = treap.StyleVerbose
			} else {
				m.Style = treap.StyleCompact
			}
		case "ctrl+r":
			m.Tree = treap.New[string, string](treap.WithSeed(m.Seed))
			m.Status = "Reset to an empty tree"
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				m.Input += msg.String()
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

// commit applies the typed line to the tree: '-key' deletes, anything else
// inserts (last value wins on duplicate keys).
func (m PlayModel) commit() PlayModel {
	line := strings.TrimSpace(m.Input)
	m.Input = ""
	if line == "" {
		return m
	}

	if rest, ok := strings.CutPrefix(line, "-"); ok && rest != "" {
		if m.Tree.Delete(rest) {
			m.Status = fmt.Sprintf("Deleted %q", rest)
		} else {
			m.Status = fmt.Sprintf("%q is not in the tree", rest)
		}
		return m
	}

	key, value := parseKeyValue(line)
	if err := errors.ValidateKey(key); err != nil {
		m.Status = errors.UserMessage(err)
		return m
	}
	if err := errors.ValidateValue(value); err != nil {
		m.Status = errors.UserMessage(err)
		return m
	}

	existed := m.Tree.Has(key)
	m.Tree.Insert(key, value)
	if existed {
		m.Status = fmt.Sprintf("Updated %q", key)
	} else {
		m.Status = fmt.Sprintf("Inserted %q", key)
	}
	return m
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Treap Playground"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("⏎ insert key[=value]  -key deletes  tab style  ctrl+r reset  esc quit"))
	b.WriteString("\n\n")

	if m.Tree.Len() == 0 {
		b.WriteString(playEmptyStyle.Render("(empty tree — type a key and press enter)"))
	} else {
		b.WriteString(playArtStyle.Render(m.art()))
	}
	b.WriteString("\n\n")

	b.WriteString(playPromptStyle.Render("> "))
	b.WriteString(m.Input)
	b.WriteString(playPromptStyle.Render("▌"))
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString(playStatusStyle.Render(m.Status))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("%d nodes · height %d · seed %d · %s labels",
		m.Tree.Len(), m.Tree.Height(), m.Seed, m.Style)))
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// art renders the current tree with the active label style.
func (m PlayModel) art() string {
	label, ok := treap.LabelStyle[string, string](m.Style)
	if !ok {
		label = treap.CompactLabel[string, string]
	}
	return m.Tree.Art(label)
}

// keyArgs reconstructs key=value arguments for the tree's current contents,
// in key order. Values equal to their key collapse to the bare key.
func (m PlayModel) keyArgs() []string {
	args := make([]string, 0, m.Tree.Len())
	m.Tree.Walk(func(key string, priority int, value string) bool {
		if value == key {
			args = append(args, key)
		} else {
			args = append(args, key+"="+value)
		}
		return true
	})
	return args
}
