// internal/tui/app.go
//
// This is the terminal UI for DocLog. It uses bubbletea, which follows The
// Elm Architecture:
//
// 1. Model: the App below, wrapping the navigator
// 2. Update: turns key presses into navigator input
// 3. View: renders the navigator's current Screen
//
// The navigator decides where the user is; this file only draws it and
// collects input for it.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kingrea/doclog/internal/editor"
	"github.com/kingrea/doclog/internal/navigator"
)

const (
	defaultEditorWidth  = 104
	defaultEditorHeight = 40

	// chromeRows covers the header, breadcrumb, border and footer.
	chromeRows = 9
	chromeCols = 6
)

type keyMap struct {
	Interrupt key.Binding
	Submit    key.Binding
	Scroll    key.Binding
}

var defaultKeys = keyMap{
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Scroll:    key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithEditorSize bounds the editing region. The window can shrink it further.
func WithEditorSize(width, height int) AppOption {
	return func(a *App) {
		if width > 0 && height > 0 {
			a.editorWidth = width
			a.editorHeight = height
		}
	}
}

// WithLogger records UI activity.
func WithLogger(logger *zap.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL the UI
// state; document state lives in the store behind the navigator.
type App struct {
	nav    *navigator.Navigator
	logger *zap.Logger
	keys   keyMap

	screen navigator.Screen
	input  textinput.Model
	viewer viewport.Model
	editor editor.Model

	editorWidth  int
	editorHeight int

	// Window size (we get this from bubbletea)
	width  int
	height int

	err         error
	interrupted bool
}

// NewApp wraps nav in a bubbletea model.
func NewApp(nav *navigator.Navigator, opts ...AppOption) *App {
	input := textinput.New()
	input.CharLimit = 0

	a := &App{
		nav:          nav,
		logger:       zap.NewNop(),
		keys:         defaultKeys,
		input:        input,
		viewer:       viewport.New(80, 20),
		editorWidth:  defaultEditorWidth,
		editorHeight: defaultEditorHeight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.screen = navigator.Screen{Seq: -1}
	a.sync()
	return a
}

// Err returns the error that stopped the program, if any.
func (a *App) Err() error { return a.err }

// Interrupted reports whether the user quit with ctrl+c.
func (a *App) Interrupted() bool { return a.interrupted }

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case editor.CommittedMsg:
		crumbs := a.screen.Breadcrumb
		if err := a.nav.Commit(msg.Text); err != nil {
			return a.fail(err)
		}
		a.logger.Info("document saved", zap.Strings("path", crumbs), zap.Int("bytes", len(msg.Text)))
		return a, a.sync()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Interrupt) {
			a.interrupted = true
			a.logger.Info("interrupted", zap.Stringer("state", a.screen.State))
			return a, tea.Quit
		}
		switch a.screen.Mode {
		case navigator.ModeChoice, navigator.ModeName:
			if key.Matches(msg, a.keys.Submit) {
				if err := a.nav.SubmitLine(a.input.Value()); err != nil {
					return a.fail(err)
				}
				return a, a.sync()
			}
		case navigator.ModeView:
			if key.Matches(msg, a.keys.Scroll) {
				var cmd tea.Cmd
				a.viewer, cmd = a.viewer.Update(msg)
				return a, cmd
			}
			if err := a.nav.PressKey(msg.String()); err != nil {
				return a.fail(err)
			}
			return a, a.sync()
		}
	}

	var cmd tea.Cmd
	switch a.screen.Mode {
	case navigator.ModeChoice, navigator.ModeName:
		a.input, cmd = a.input.Update(msg)
	case navigator.ModeEdit:
		a.editor, cmd = a.editor.Update(msg)
	}
	return a, cmd
}

// sync pulls the navigator's screen and prepares the widget it needs. Widgets
// are rebuilt only when the navigator actually moved.
func (a *App) sync() tea.Cmd {
	sc := a.nav.Screen()
	moved := sc.Seq != a.screen.Seq
	a.screen = sc

	switch sc.Mode {
	case navigator.ModeChoice, navigator.ModeName:
		a.input.Reset()
		a.input.Prompt = sc.Prompt
		return a.input.Focus()
	case navigator.ModeView:
		a.input.Blur()
		if moved {
			a.viewer.SetContent(sc.Text)
			a.viewer.GotoTop()
		}
	case navigator.ModeEdit:
		a.input.Blur()
		if moved {
			w, h := a.editorSize()
			a.editor = editor.New(sc.Text, w, h)
		}
	case navigator.ModeDone:
		return tea.Quit
	}
	return nil
}

func (a *App) fail(err error) (tea.Model, tea.Cmd) {
	a.err = err
	a.logger.Error("navigation failed", zap.Error(err))
	return a, tea.Quit
}

func (a *App) resize() {
	a.viewer.Width = max(10, a.width-chromeCols)
	a.viewer.Height = max(3, a.height-chromeRows)
	if a.screen.Mode == navigator.ModeEdit {
		a.editor.SetSize(a.editorSize())
	}
}

// editorSize is the configured region clamped to the window.
func (a *App) editorSize() (int, int) {
	w, h := a.editorWidth, a.editorHeight
	if a.width > 0 {
		w = min(w, max(10, a.width-chromeCols))
	}
	if a.height > 0 {
		h = min(h, max(3, a.height-chromeRows))
	}
	return w, h
}

// View renders the current state to a string.
func (a *App) View() string {
	sections := []string{headerStyle.Render("DocLog")}
	for _, crumb := range a.screen.Breadcrumb {
		sections = append(sections, crumbStyle.Render(crumb))
	}
	if a.screen.Heading != "" {
		sections = append(sections, headingStyle.Render(a.screen.Heading))
	}
	sections = append(sections, "", a.renderBody())
	if a.screen.Notice != "" {
		sections = append(sections, noticeStyle.Render("⚠ "+a.screen.Notice))
	}
	if hint := a.hint(); hint != "" {
		sections = append(sections, hintStyle.Render(hint))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderBody() string {
	switch a.screen.Mode {
	case navigator.ModeChoice:
		var lines []string
		for i, item := range a.screen.Items {
			lines = append(lines, fmt.Sprintf("%s %s", indexStyle.Render(fmt.Sprintf("%d:", i)), item))
		}
		lines = append(lines, "", a.input.View())
		return strings.Join(lines, "\n")
	case navigator.ModeName:
		return a.input.View()
	case navigator.ModeView:
		return documentStyle.Render(a.viewer.View())
	case navigator.ModeEdit:
		return documentStyle.Render(a.editor.View())
	}
	return ""
}

func (a *App) hint() string {
	switch a.screen.Mode {
	case navigator.ModeView:
		return "Press 'e' to edit, 'q' to quit, or any other key to continue"
	case navigator.ModeEdit:
		return "Press Ctrl-G when finished"
	}
	return ""
}
