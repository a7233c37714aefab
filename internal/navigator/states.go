package navigator

import "fmt"

// State is a node in the navigation graph.
type State int

const (
	StateSectionSelect State = iota
	StateOSSelect
	StateCategorySelect
	StateDocumentView
	StateEdit
	StateAppSelect
	StateAppCategorySelect
	StateAppDocumentView
	StateAppEdit
	StateExit
)

var stateNames = map[State]string{
	StateSectionSelect:     "section-select",
	StateOSSelect:          "os-select",
	StateCategorySelect:    "category-select",
	StateDocumentView:      "document-view",
	StateEdit:              "edit",
	StateAppSelect:         "app-select",
	StateAppCategorySelect: "app-category-select",
	StateAppDocumentView:   "app-document-view",
	StateAppEdit:           "app-edit",
	StateExit:              "exit",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event triggers a transition.
type Event int

const (
	EventChooseOS Event = iota
	EventChooseGeneral
	EventSelected
	EventEdit
	EventEmpty
	EventRedisplay
	EventQuit
	EventCommit
)

var eventNames = map[Event]string{
	EventChooseOS:      "choose-os",
	EventChooseGeneral: "choose-general",
	EventSelected:      "selected",
	EventEdit:          "edit",
	EventEmpty:         "empty",
	EventRedisplay:     "redisplay",
	EventQuit:          "quit",
	EventCommit:        "commit",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// transitions is the complete navigation graph. A (state, event) pair that
// is missing here is a programming error.
var transitions = map[State]map[Event]State{
	StateSectionSelect: {
		EventChooseOS:      StateOSSelect,
		EventChooseGeneral: StateAppSelect,
	},
	StateOSSelect: {
		EventSelected: StateCategorySelect,
	},
	StateCategorySelect: {
		EventSelected: StateDocumentView,
	},
	StateDocumentView: {
		EventEdit:      StateEdit,
		EventEmpty:     StateEdit,
		EventRedisplay: StateDocumentView,
		EventQuit:      StateExit,
	},
	StateEdit: {
		EventCommit: StateDocumentView,
	},
	StateAppSelect: {
		EventSelected: StateAppCategorySelect,
	},
	StateAppCategorySelect: {
		EventSelected: StateAppDocumentView,
	},
	StateAppDocumentView: {
		EventEdit:      StateAppEdit,
		EventEmpty:     StateAppEdit,
		EventRedisplay: StateAppDocumentView,
		EventQuit:      StateExit,
	},
	StateAppEdit: {
		EventCommit: StateAppDocumentView,
	},
}

// Next reports the state reached from s on e.
func Next(s State, e Event) (State, bool) {
	next, ok := transitions[s][e]
	return next, ok
}
