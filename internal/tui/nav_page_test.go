package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/sectionnav/internal/markup"
)

const testPage = `<title>Guide</title>
<a class="nav-link" data-target="intro">Intro</a>
<a class="nav-link" data-target="usage">Usage</a>
<a class="nav-link" data-target="nope">Broken</a>
<section id="intro" class="section"><h2>Introduction</h2><p>Welcome aboard.</p></section>
<section id="usage" class="section"><h2>Usage</h2><p>Run the script.</p></section>`

func newTestPage(t *testing.T) *NavPage {
	t.Helper()

	doc, err := markup.ParseHTML(strings.NewReader(testPage))
	require.NoError(t, err)

	p := NewNavPage(doc, Options{MarkdownStyle: "ascii"})
	p.Init()
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return p
}

func press(p *NavPage, k tea.KeyMsg) tea.Cmd {
	cmd, _ := p.Update(k)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(p *NavPage, x, y int) {
	p.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func activeControls(p *NavPage) []bool {
	var out []bool
	for _, c := range p.Switcher().Controls() {
		out = append(out, c.Active)
	}
	return out
}

func TestNavPage_NothingActiveOnLoad(t *testing.T) {
	t.Parallel()

	p := newTestPage(t)
	assert.Empty(t, p.Switcher().ActiveID())
	assert.Equal(t, []bool{false, false, false}, activeControls(p))
	assert.Contains(t, p.View(100, 30), "No section selected.")
}

func TestNavPage_FocusDoesNotActivate(t *testing.T) {
	t.Parallel()

	p := newTestPage(t)
	press(p, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, p.cursor)
	assert.Empty(t, p.Switcher().ActiveID())

	press(p, runes("k"))
	assert.Equal(t, 0, p.cursor)

	press(p, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, p.cursor, "focus is clamped at the first control")
}

func TestNavPage_EnterAndSpaceActivateFocusedControl(t *testing.T) {
	t.Parallel()

	p := newTestPage(t)
	press(p, tea.KeyMsg{Type: tea.KeyDown})
	press(p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "usage", p.Switcher().ActiveID())
	assert.Equal(t, []bool{false, true, false}, activeControls(p))

	view := p.View(100, 30)
	assert.Contains(t, view, "Run the script.")
	assert.NotContains(t, view, "Welcome aboard.")

	press(p, tea.KeyMsg{Type: tea.KeyUp})
	press(p, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "intro", p.Switcher().ActiveID())
	assert.Equal(t, []bool{true, false, false}, activeControls(p))
	assert.Contains(t, p.View(100, 30), "Welcome aboard.")
}

func TestNavPage_OtherKeysLeaveStateAlone(t *testing.T) {
	t.Parallel()

	p := newTestPage(t)
	press(p, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "intro", p.Switcher().ActiveID())

	for _, k := range []tea.KeyMsg{runes("x"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEsc}} {
		assert.Nil(t, press(p, k))
	}
	assert.Equal(t, "intro", p.Switcher().ActiveID())
	assert.Equal(t, []bool{true, false, false}, activeControls(p))
}

func TestNavPage_ClickActivatesControl(t *testing.T) {
	t.Parallel()

	p := newTestPage(t)
	click(p, 2, sidebarControlsTop+1)
	assert.Equal(t, "usage", p.Switcher().ActiveID())
	assert.Equal(t, 1, p.cursor, "click also moves focus")

	// Clicks in the content pane or below the links are ignored.
	click(p, 60, sidebarControlsTop)
	click(p, 2, sidebarControlsTop+10)
	assert.Equal(t, "usage", p.Switcher().ActiveID())
}

func TestNavPage_KeyAndClickAgree(t *testing.T) {
	t.Parallel()

	byKey := newTestPage(t)
	press(byKey, tea.KeyMsg{Type: tea.KeyDown})
	press(byKey, tea.KeyMsg{Type: tea.KeyEnter})

	byClick := newTestPage(t)
	click(byClick, 1, sidebarControlsTop+1)

	assert.Equal(t, byClick.Switcher().Sections(), byKey.Switcher().Sections())
	assert.Equal(t, byClick.Switcher().Controls(), byKey.Switcher().Controls())
}

func TestNavPage_UnknownTargetDeactivatesAll(t *testing.T) {
	t.Parallel()

	p := newTestPage(t)
	press(p, tea.KeyMsg{Type: tea.KeyEnter})
	press(p, runes("G"))
	assert.Equal(t, 2, p.cursor)
	press(p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, p.Switcher().ActiveID())
	assert.Equal(t, []bool{false, false, false}, activeControls(p))
	assert.Contains(t, p.View(100, 30), "No section selected.")
}

func TestNavPage_NotWiredBeforeInit(t *testing.T) {
	t.Parallel()

	doc, err := markup.ParseHTML(strings.NewReader(testPage))
	require.NoError(t, err)

	p := NewNavPage(doc, Options{})
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	press(p, tea.KeyMsg{Type: tea.KeyEnter})
	click(p, 2, sidebarControlsTop)
	assert.Empty(t, p.Switcher().ActiveID())

	p.Init()
	p.Init()
	assert.Len(t, p.bindings, 3)
	press(p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "intro", p.Switcher().ActiveID())
}

func TestNavPage_AuthoredActiveSectionShown(t *testing.T) {
	t.Parallel()

	doc, err := markup.ParseHTML(strings.NewReader(strings.Replace(testPage,
		`id="usage" class="section"`, `id="usage" class="section active"`, 1)))
	require.NoError(t, err)

	p := NewNavPage(doc, Options{})
	p.Init()
	assert.Equal(t, "usage", p.Switcher().ActiveID())
	assert.Contains(t, p.View(100, 30), "Run the script.")
}

func TestNavPage_MarkdownBodies(t *testing.T) {
	t.Parallel()

	doc, err := markup.ParseYAML(strings.NewReader("sections:\n  - id: a\n    title: Alpha\n    body: \"Hello from the markdown body\"\n"))
	require.NoError(t, err)

	p := NewNavPage(doc, Options{MarkdownStyle: "ascii"})
	p.Init()
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	press(p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "a", p.Switcher().ActiveID())
	assert.Contains(t, p.View(100, 30), "Hello from the markdown body")
}

func TestNavPage_QuitKey(t *testing.T) {
	t.Parallel()

	p := newTestPage(t)
	cmd := press(p, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNavPage_LongSidebarScrollsWithFocus(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, `<a class="nav-link" data-target="s%02d">Link %02d</a>`, i, i)
	}
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, `<div id="s%02d" class="section"><p>body %02d</p></div>`, i, i)
	}
	doc, err := markup.ParseHTML(strings.NewReader(sb.String()))
	require.NoError(t, err)

	p := NewNavPage(doc, Options{})
	p.Init()
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	view := p.View(100, 20)
	assert.LessOrEqual(t, lipgloss.Height(view), 20, "sidebar must not push the status line off-screen")
	assert.Contains(t, view, "Link 00")
	assert.NotContains(t, view, "Link 39")
	assert.Contains(t, view, "section: none")

	press(p, runes("G"))
	view = p.View(100, 20)
	assert.LessOrEqual(t, lipgloss.Height(view), 20)
	assert.Contains(t, view, "Link 39")
	assert.NotContains(t, view, "Link 00")

	// The top visible row now belongs to a scrolled-in control.
	click(p, 2, sidebarControlsTop)
	want := p.sidebarOffset
	require.Positive(t, want)
	assert.Equal(t, fmt.Sprintf("s%02d", want), p.Switcher().ActiveID())
}
