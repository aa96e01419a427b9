package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/clockrep/internal/storage"
)

type promptKeys struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Cancel    key.Binding
	Overwrite key.Binding
	Suffix    key.Binding
	AbortNow  key.Binding
}

var defaultPromptKeys = promptKeys{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Cancel:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
	Overwrite: key.NewBinding(key.WithKeys("o", "y")),
	Suffix:    key.NewBinding(key.WithKeys("s", "n")),
	AbortNow:  key.NewBinding(key.WithKeys("a")),
}

type promptOption struct {
	label  string
	policy storage.ConflictPolicy
}

// ConflictPrompt asks what to do with an existing output file.
type ConflictPrompt struct {
	path    string
	options []promptOption
	cursor  int
	chosen  bool
	done    bool
	keys    promptKeys
}

// NewConflictPrompt builds the prompt for an existing file at path.
func NewConflictPrompt(path string) ConflictPrompt {
	return ConflictPrompt{
		path: path,
		options: []promptOption{
			{"Overwrite the existing file", storage.Overwrite},
			{"Create a new file with a number suffix", storage.AutoSuffix},
			{"Abort the conversion", storage.Abort},
		},
		keys: defaultPromptKeys,
	}
}

func (m ConflictPrompt) Init() tea.Cmd { return nil }

func (m ConflictPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Cancel):
		m.done = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		m.cursor = (m.cursor + len(m.options) - 1) % len(m.options)
	case key.Matches(km, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	case key.Matches(km, m.keys.Select):
		return m.pick(m.cursor)
	case key.Matches(km, m.keys.Overwrite):
		return m.pick(0)
	case key.Matches(km, m.keys.Suffix):
		return m.pick(1)
	case key.Matches(km, m.keys.AbortNow):
		return m.pick(2)
	}
	return m, nil
}

func (m ConflictPrompt) pick(i int) (tea.Model, tea.Cmd) {
	m.cursor = i
	m.chosen = true
	m.done = true
	return m, tea.Quit
}

func (m ConflictPrompt) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("File already exists"))
	b.WriteString("\n\n  ")
	b.WriteString(ValueStyle.Render(filepath.Base(m.path)))
	b.WriteString("\n\n")
	for i, o := range m.options {
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + o.label))
		} else {
			b.WriteString("  " + o.label)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(fmt.Sprintf("%s • %s • %s • %s",
		m.keys.Up.Help().Key+" "+m.keys.Up.Help().Desc,
		m.keys.Down.Help().Key+" "+m.keys.Down.Help().Desc,
		m.keys.Select.Help().Key+" "+m.keys.Select.Help().Desc,
		m.keys.Cancel.Help().Key+" "+m.keys.Cancel.Help().Desc,
	)))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the selected policy. ok is false when the prompt was
// cancelled, in which case the policy is Abort.
func (m ConflictPrompt) Choice() (storage.ConflictPolicy, bool) {
	if !m.chosen {
		return storage.Abort, false
	}
	return m.options[m.cursor].policy, true
}

// AskConflict runs the prompt on in/out and returns the chosen policy.
func AskConflict(path string, in io.Reader, out io.Writer) (storage.ConflictPolicy, error) {
	p := tea.NewProgram(NewConflictPrompt(path), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return storage.Abort, fmt.Errorf("conflict prompt: %w", err)
	}
	m, ok := final.(ConflictPrompt)
	if !ok {
		return storage.Abort, nil
	}
	policy, _ := m.Choice()
	return policy, nil
}
