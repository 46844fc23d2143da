// Package nav tracks which section of the guide is on screen together with
// the rest of the transient navigation state. Nothing here is persisted.
package nav

import "studyguide/internal/model"

// State is what the shell keeps in memory between key presses.
type State struct {
	ActiveSectionID string
	SidebarOpen     bool
	SearchTerm      string
}

type Navigator struct {
	sections []model.SectionDescriptor
	state    State
}

// New starts on initialID, or on the first section when initialID is empty
// or unknown. sections must not be empty.
func New(sections []model.SectionDescriptor, initialID string) *Navigator {
	n := &Navigator{
		sections: sections,
		state:    State{SidebarOpen: true},
	}
	if !n.SetActive(initialID) && len(sections) > 0 {
		n.state.ActiveSectionID = sections[0].ID
	}
	return n
}

func (n *Navigator) Sections() []model.SectionDescriptor { return n.sections }

func (n *Navigator) State() State { return n.state }

func (n *Navigator) Active() model.SectionDescriptor {
	return n.sections[n.ActiveIndex()]
}

func (n *Navigator) ActiveIndex() int {
	if i := n.index(n.state.ActiveSectionID); i >= 0 {
		return i
	}
	return 0
}

// SetActive switches to the section with the given id. Unknown ids leave the
// active section unchanged and report false.
func (n *Navigator) SetActive(id string) bool {
	if n.index(id) < 0 {
		return false
	}
	n.state.ActiveSectionID = id
	return true
}

// Next and Prev move through sections in order, wrapping around.
func (n *Navigator) Next() model.SectionDescriptor {
	return n.move(1)
}

func (n *Navigator) Prev() model.SectionDescriptor {
	return n.move(-1)
}

func (n *Navigator) move(delta int) model.SectionDescriptor {
	i := (n.ActiveIndex() + delta + len(n.sections)) % len(n.sections)
	n.state.ActiveSectionID = n.sections[i].ID
	return n.sections[i]
}

func (n *Navigator) ToggleSidebar() bool {
	n.state.SidebarOpen = !n.state.SidebarOpen
	return n.state.SidebarOpen
}

func (n *Navigator) SetSearch(term string) {
	n.state.SearchTerm = term
}

func (n *Navigator) index(id string) int {
	for i, s := range n.sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
