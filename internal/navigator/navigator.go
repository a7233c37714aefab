package navigator

import (
	"fmt"

	"go.uber.org/zap"
)

// Sections are the fixed choices of the first menu.
var Sections = []string{"OS Specific", "General"}

// Documents is the part of the store the navigator drives.
type Documents interface {
	ListOS() []string
	AddOS(name string)
	ListApps() []string
	AddApp(name string)
	AddCategory(name string)
	AddAppCategory(name string)
	ListCategoriesForOS(os string) []string
	ListCategoriesForApp(app string) []string
	GetDocument(os, category string) (string, error)
	SetDocument(os, category, text string) error
	GetAppDocument(app, category string) (string, error)
	SetAppDocument(app, category, text string) error
}

// Mode tells the terminal which kind of input the current screen takes.
type Mode int

const (
	ModeChoice Mode = iota // a number from a menu
	ModeName               // a free-text name
	ModeView               // a single key
	ModeEdit               // the editor
	ModeDone
)

// Screen describes what the terminal should show for the current state.
type Screen struct {
	// Seq increases on every transition, including self transitions.
	Seq        int
	State      State
	Mode       Mode
	Breadcrumb []string
	Heading    string
	Prompt     string
	Items      []string
	Text       string
	Notice     string
}

// space binds one taxonomy's store operations and states.
type space struct {
	keyLabels      promptLabels
	listKeys       func() []string
	addKey         func(string)
	listCategories func(key string) []string
	addCategory    func(string)
	get            func(key, category string) (string, error)
	set            func(key, category, text string) error
}

// Navigator is the navigation state machine for one session.
type Navigator struct {
	docs   Documents
	logger *zap.Logger

	state  State
	seq    int
	notice string

	osSpace  *space
	appSpace *space
	active   *space
	picker   *selectOrCreate

	key      string
	category string
	text     string
}

// Option customizes a Navigator.
type Option func(*Navigator)

// WithLogger logs transitions to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New returns a navigator positioned on the section menu.
func New(docs Documents, opts ...Option) *Navigator {
	n := &Navigator{
		docs:   docs,
		logger: zap.NewNop(),
		state:  StateSectionSelect,
	}
	n.osSpace = &space{
		keyLabels: promptLabels{
			empty:  "You have no OSes logged, add one now: ",
			choose: "Select an OS, or %d to add an OS: ",
			name:   "OS name: ",
		},
		listKeys:       docs.ListOS,
		addKey:         docs.AddOS,
		listCategories: docs.ListCategoriesForOS,
		addCategory:    docs.AddCategory,
		get:            docs.GetDocument,
		set:            docs.SetDocument,
	}
	n.appSpace = &space{
		keyLabels: promptLabels{
			empty:  "You have no Applications logged, add one now: ",
			choose: "Select an Application, or %d to add an Application: ",
			name:   "Application name: ",
		},
		listKeys:       docs.ListApps,
		addKey:         docs.AddApp,
		listCategories: docs.ListCategoriesForApp,
		addCategory:    docs.AddAppCategory,
		get:            docs.GetAppDocument,
		set:            docs.SetAppDocument,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

var categoryLabels = promptLabels{
	empty:  "You have no categories logged, add one now: ",
	choose: "Select a category, or %d to add one: ",
	name:   "Category name: ",
}

// State returns the current state.
func (n *Navigator) State() State { return n.state }

// Done reports whether the user quit from a document view.
func (n *Navigator) Done() bool { return n.state == StateExit }

// Screen describes the current state for rendering.
func (n *Navigator) Screen() Screen {
	sc := Screen{
		Seq:    n.seq,
		State:  n.state,
		Notice: n.notice,
	}
	switch n.state {
	case StateSectionSelect:
		sc.Mode = ModeChoice
		sc.Items = append([]string(nil), Sections...)
		sc.Prompt = "Select a section: "
	case StateOSSelect, StateAppSelect:
		n.describePicker(&sc)
	case StateCategorySelect, StateAppCategorySelect:
		sc.Breadcrumb = []string{n.key}
		sc.Heading = "Select a Category"
		n.describePicker(&sc)
	case StateDocumentView, StateAppDocumentView:
		sc.Mode = ModeView
		sc.Breadcrumb = []string{n.key, n.category}
		sc.Text = n.text
	case StateEdit, StateAppEdit:
		sc.Mode = ModeEdit
		sc.Breadcrumb = []string{n.key, n.category}
		sc.Text = n.text
	case StateExit:
		sc.Mode = ModeDone
	}
	return sc
}

func (n *Navigator) describePicker(sc *Screen) {
	sc.Prompt = n.picker.prompt()
	if n.picker.naming {
		sc.Mode = ModeName
		return
	}
	sc.Mode = ModeChoice
	sc.Items = append([]string(nil), n.picker.items...)
}

// SubmitLine feeds a line typed at a menu or name prompt.
func (n *Navigator) SubmitLine(line string) error {
	switch n.state {
	case StateSectionSelect:
		idx, ok := parseSelection(line, len(Sections)-1)
		if !ok {
			n.notice = fmt.Sprintf("Enter a number from 0 to %d.", len(Sections)-1)
			return nil
		}
		if idx == 0 {
			return n.fire(EventChooseOS)
		}
		return n.fire(EventChooseGeneral)

	case StateOSSelect, StateAppSelect, StateCategorySelect, StateAppCategorySelect:
		choice, ok, notice := n.picker.submit(line)
		n.notice = notice
		if !ok {
			return nil
		}
		if n.state == StateOSSelect || n.state == StateAppSelect {
			n.key = choice
		} else {
			n.category = choice
		}
		return n.fire(EventSelected)
	}
	return fmt.Errorf("navigator: %s does not take a line of input", n.state)
}

// PressKey feeds a key pressed in a document view: "e" edits, "q" quits and
// anything else shows the document again.
func (n *Navigator) PressKey(key string) error {
	if n.state != StateDocumentView && n.state != StateAppDocumentView {
		return fmt.Errorf("navigator: %s does not take a key", n.state)
	}
	switch key {
	case "e":
		return n.fire(EventEdit)
	case "q":
		return n.fire(EventQuit)
	default:
		return n.fire(EventRedisplay)
	}
}

// Commit saves the editor's text over the current document and returns to
// its view.
func (n *Navigator) Commit(text string) error {
	if n.state != StateEdit && n.state != StateAppEdit {
		return fmt.Errorf("navigator: %s has no editor to commit", n.state)
	}
	if err := n.active.set(n.key, n.category, text); err != nil {
		return fmt.Errorf("navigator: save %s/%s: %w", n.key, n.category, err)
	}
	return n.fire(EventCommit)
}

func (n *Navigator) fire(ev Event) error {
	next, ok := Next(n.state, ev)
	if !ok {
		return fmt.Errorf("navigator: no transition from %s on %s", n.state, ev)
	}
	n.logger.Debug("transition",
		zap.Stringer("from", n.state),
		zap.Stringer("event", ev),
		zap.Stringer("to", next),
	)
	n.state = next
	n.seq++
	n.notice = ""
	return n.enter(next)
}

func (n *Navigator) enter(s State) error {
	switch s {
	case StateOSSelect:
		n.active = n.osSpace
		n.picker = newSelectOrCreate(n.active.listKeys, n.active.addKey, n.active.keyLabels)
	case StateAppSelect:
		n.active = n.appSpace
		n.picker = newSelectOrCreate(n.active.listKeys, n.active.addKey, n.active.keyLabels)
	case StateCategorySelect, StateAppCategorySelect:
		key := n.key
		list := func() []string { return n.active.listCategories(key) }
		n.picker = newSelectOrCreate(list, n.active.addCategory, categoryLabels)
	case StateDocumentView, StateAppDocumentView:
		n.picker = nil
		text, err := n.active.get(n.key, n.category)
		if err != nil {
			return fmt.Errorf("navigator: load %s/%s: %w", n.key, n.category, err)
		}
		n.text = text
		if text == "" {
			return n.fire(EventEmpty)
		}
	case StateExit:
		n.logger.Debug("navigation finished", zap.String("key", n.key), zap.String("category", n.category))
	}
	return nil
}
