// Package navigation implements single-page section switching: activating a
// navigation control makes its target section the only visible one.
package navigation

// Control is an activatable navigation entry pointing at a section by id.
type Control struct {
	Label  string
	Target string
	Active bool
}

// Section is a content region identified by ID.
type Section struct {
	ID     string
	Title  string
	Body   string
	Active bool
}

// Switcher owns the active state of a fixed set of controls and sections.
// It is not safe for concurrent use; callers mutate it from a single event loop.
type Switcher struct {
	controls []Control
	sections []Section
}

// New creates a Switcher over copies of controls and sections. Whatever
// active state they carry is kept as-is until the first activation.
func New(controls []Control, sections []Section) *Switcher {
	return &Switcher{
		controls: append([]Control(nil), controls...),
		sections: append([]Section(nil), sections...),
	}
}

// Activate marks the section whose ID equals targetID, and every control
// targeting it, as active. Everything else becomes inactive: when targetID
// names no section, no section and no control is left active. Empty ids and
// targets never match.
func (s *Switcher) Activate(targetID string) {
	matched := targetID != "" && s.HasSection(targetID)
	for i := range s.sections {
		s.sections[i].Active = matched && s.sections[i].ID == targetID
	}
	for i := range s.controls {
		s.controls[i].Active = matched && s.controls[i].Target == targetID
	}
}

// Controls returns a copy of the controls in their original order.
func (s *Switcher) Controls() []Control {
	return append([]Control(nil), s.controls...)
}

// Sections returns a copy of the sections in their original order.
func (s *Switcher) Sections() []Section {
	return append([]Section(nil), s.sections...)
}

// ActiveSection returns the first active section.
func (s *Switcher) ActiveSection() (Section, bool) {
	for _, sec := range s.sections {
		if sec.Active {
			return sec, true
		}
	}
	return Section{}, false
}

// ActiveID returns the id of the active section, or "" when none is active.
func (s *Switcher) ActiveID() string {
	sec, ok := s.ActiveSection()
	if !ok {
		return ""
	}
	return sec.ID
}

// HasSection reports whether id names a known section.
func (s *Switcher) HasSection(id string) bool {
	for _, sec := range s.sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}
