// Package editor is the document editing session: a bounded textarea seeded
// with the current text, committed with Ctrl-G.
//
// The model runs inside the application's bubbletea program, which owns the
// terminal mode. Whatever way the program ends, bubbletea restores echo and
// cooked input on shutdown, so an edit never leaves the terminal raw.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// CommittedMsg carries the final buffer out of an editing session.
type CommittedMsg struct {
	Text string
}

// KeyMap holds the editor's own bindings. Everything else goes to the
// textarea.
type KeyMap struct {
	Commit key.Binding
}

// DefaultKeyMap commits with Ctrl-G.
var DefaultKeyMap = KeyMap{
	Commit: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "finish editing"),
	),
}

// Model is one editing session.
type Model struct {
	area      textarea.Model
	keys      KeyMap
	committed bool

	// seed is committed verbatim while the buffer still equals initial. The
	// textarea expands tabs on the way in.
	seed    string
	initial string
}

// lineEndings folds CRLF and bare CR into LF. The textarea turns each of
// them into its own line break otherwise.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// New starts a session over seed inside a width x height region.
func New(seed string, width, height int) Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.InsertString(lineEndings.Replace(seed))
	ta.Focus()
	return Model{area: ta, keys: DefaultKeyMap, seed: seed, initial: ta.Value()}
}

// Update forwards keys to the textarea until the commit key is pressed.
// After that the session ignores input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.committed {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Commit) {
		m.committed = true
		m.area.Blur()
		text := m.area.Value()
		if text == m.initial {
			text = m.seed
		}
		return m, func() tea.Msg { return CommittedMsg{Text: text} }
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// View renders the editing region.
func (m Model) View() string {
	return m.area.View()
}

// Value returns the current buffer.
func (m Model) Value() string {
	return m.area.Value()
}

// Committed reports whether the commit key has been pressed.
func (m Model) Committed() bool {
	return m.committed
}

// SetSize resizes the editing region.
func (m *Model) SetSize(width, height int) {
	m.area.SetWidth(width)
	m.area.SetHeight(height)
}

// Keys returns the active bindings, for help rendering.
func (m Model) Keys() KeyMap {
	return m.keys
}
