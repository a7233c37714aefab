package navigator

import (
	"fmt"
	"strconv"
	"strings"
)

type promptLabels struct {
	empty  string // shown when the list is empty
	choose string // %d is the "add new" index
	name   string // shown after picking the "add new" index
}

// selectOrCreate is the prompt shared by every list state. Existing items
// are offered by index 0..n-1 and index n adds a new entry. An empty list
// skips the menu and asks for a name straight away.
type selectOrCreate struct {
	list   func() []string
	create func(string)
	labels promptLabels

	items  []string
	naming bool
}

func newSelectOrCreate(list func() []string, create func(string), labels promptLabels) *selectOrCreate {
	p := &selectOrCreate{list: list, create: create, labels: labels}
	p.items = p.list()
	p.naming = len(p.items) == 0
	return p
}

func (p *selectOrCreate) prompt() string {
	switch {
	case p.naming && len(p.items) == 0:
		return p.labels.empty
	case p.naming:
		return p.labels.name
	default:
		return fmt.Sprintf(p.labels.choose, len(p.items))
	}
}

// submit handles one line of input. ok is false while the prompt should stay
// up; notice then explains why, or is empty when the prompt just moved on to
// asking for a name. The new entry is returned as typed and is not looked up
// again in the list.
func (p *selectOrCreate) submit(line string) (choice string, ok bool, notice string) {
	if p.naming {
		name := strings.TrimSpace(line)
		if name == "" {
			return "", false, "A name is required."
		}
		p.create(name)
		return name, true, ""
	}
	idx, valid := parseSelection(line, len(p.items))
	if !valid {
		return "", false, fmt.Sprintf("Enter a number from 0 to %d.", len(p.items))
	}
	if idx == len(p.items) {
		p.naming = true
		return "", false, ""
	}
	return p.items[idx], true, ""
}

// parseSelection accepts integers in [0, limit].
func parseSelection(line string, limit int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 0 || n > limit {
		return 0, false
	}
	return n, true
}
