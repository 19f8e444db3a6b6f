package navigation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind_OneBindingPerControl(t *testing.T) {
	t.Parallel()

	sw := introUsage()
	bindings := Bind(sw)
	require.Len(t, bindings, 2)
	assert.Equal(t, "intro", bindings[0].Target)
	assert.Equal(t, "usage", bindings[1].Target)
	assert.Equal(t, 1, bindings[1].Index)
}

func TestBinding_ClickActivatesTarget(t *testing.T) {
	t.Parallel()

	sw := introUsage()
	Bind(sw)[1].Click()
	assert.Equal(t, "usage", sw.ActiveID())
	assert.True(t, sw.Controls()[1].Active)
	assert.False(t, sw.Controls()[0].Active)
}

func TestBinding_ActivationKeysMatchClick(t *testing.T) {
	t.Parallel()

	clicked := introUsage()
	Bind(clicked)[1].Click()

	for _, k := range []string{KeyEnter, KeySpace, KeySpaceAlias} {
		sw := introUsage()
		handled := Bind(sw)[1].KeyPress(k)
		assert.True(t, handled, "key %q should be consumed", k)

		if diff := cmp.Diff(clicked.Sections(), sw.Sections()); diff != "" {
			t.Fatalf("key %q: sections differ from click (-click +key):\n%s", k, diff)
		}
		if diff := cmp.Diff(clicked.Controls(), sw.Controls()); diff != "" {
			t.Fatalf("key %q: controls differ from click (-click +key):\n%s", k, diff)
		}
	}
}

func TestBinding_OtherKeysChangeNothing(t *testing.T) {
	t.Parallel()

	sw := introUsage()
	sw.Activate("intro")
	before := sw.Sections()

	b := Bind(sw)[1]
	for _, k := range []string{"a", "tab", "esc", "ctrl+c", "down", "Enter"} {
		assert.False(t, b.KeyPress(k), "key %q should not be consumed", k)
	}
	assert.Equal(t, before, sw.Sections())
	assert.Equal(t, "intro", sw.ActiveID())
}

func TestBinding_EmptyTargetDeactivatesAll(t *testing.T) {
	t.Parallel()

	sw := New(
		[]Control{{Label: "broken"}, {Target: "intro"}},
		[]Section{{ID: "intro", Active: true}},
	)
	Bind(sw)[0].Click()
	_, ok := sw.ActiveSection()
	assert.False(t, ok)
	for _, c := range sw.Controls() {
		assert.False(t, c.Active)
	}
}
