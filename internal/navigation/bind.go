package navigation

// Activation keys as reported by key events: enter, and space in both of
// the spellings terminals deliver it.
const (
	KeyEnter      = "enter"
	KeySpace      = " "
	KeySpaceAlias = "space"
)

// IsActivationKey reports whether key confirms the focused control.
func IsActivationKey(key string) bool {
	switch key {
	case KeyEnter, KeySpace, KeySpaceAlias:
		return true
	}
	return false
}

// Binding connects one control's input events to the switcher.
type Binding struct {
	Index  int
	Target string
	sw     *Switcher
}

// Click is the direct activation trigger.
func (b Binding) Click() {
	b.sw.Activate(b.Target)
}

// KeyPress activates the control when key is an activation key. A true
// result means the key was consumed and its default effect must not run.
func (b Binding) KeyPress(key string) bool {
	if !IsActivationKey(key) {
		return false
	}
	b.Click()
	return true
}

// Bind returns one Binding per control, in control order. The target of each
// control is captured now; call it once, after the controls are loaded.
func Bind(sw *Switcher) []Binding {
	bindings := make([]Binding, len(sw.controls))
	for i, c := range sw.controls {
		bindings[i] = Binding{Index: i, Target: c.Target, sw: sw}
	}
	return bindings
}
