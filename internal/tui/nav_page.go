package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/tinytelemetry/sectionnav/internal/markup"
	"github.com/tinytelemetry/sectionnav/internal/model"
	"github.com/tinytelemetry/sectionnav/internal/navigation"
)

const (
	NavPageID           = "sections"
	DefaultSidebarWidth = model.DefaultSidebarWidth
	minSidebarWidth     = 12
)

// Options tune a NavPage. Zero values fall back to defaults.
type Options struct {
	SidebarWidth       int
	ReverseScrollWheel bool
	// MarkdownStyle is a glamour standard style ("dark", "light", "ascii",
	// "notty", ...) used for Markdown section bodies.
	MarkdownStyle string
	Logger        *zap.Logger
}

// NavPage shows a document's navigation controls in a sidebar and its active
// section in a scrollable pane. Moving focus never changes the active
// section; only clicks and activation keys do.
type NavPage struct {
	doc      *markup.Document
	sw       *navigation.Switcher
	bindings []navigation.Binding

	keys     KeyMap
	help     help.Model
	opts     Options
	logger   *zap.Logger
	viewport viewport.Model

	cursor int
	// First control shown in the sidebar when the list is taller than the pane.
	sidebarOffset int
	width         int
	height int

	// Rendered body cache, keyed by section id and wrap width.
	renderedID    string
	renderedWidth int
}

// NewNavPage creates the page for doc. Nothing is activated; whatever state
// the document authored is shown until the user picks a section.
func NewNavPage(doc *markup.Document, opts Options) *NavPage {
	if opts.SidebarWidth < minSidebarWidth {
		opts.SidebarWidth = DefaultSidebarWidth
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = model.DefaultMarkdownStyle
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &NavPage{
		doc:      doc,
		sw:       doc.Switcher(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		opts:     opts,
		logger:   logger,
		viewport: viewport.New(0, 0),
	}
	// Start focus on the authored active control, if any.
	for i, c := range p.sw.Controls() {
		if c.Active {
			p.cursor = i
			break
		}
	}
	return p
}

func (p *NavPage) ID() string { return NavPageID }

// Switcher exposes the page's selection state.
func (p *NavPage) Switcher() *navigation.Switcher { return p.sw }

// Init wires every control to the switcher. Bubble Tea calls it once the
// program is ready; later calls keep the existing bindings.
func (p *NavPage) Init() tea.Cmd {
	if p.bindings != nil {
		return nil
	}
	p.bindings = navigation.Bind(p.sw)
	p.logger.Debug("navigation wired",
		zap.Int("controls", len(p.bindings)),
		zap.Int("sections", len(p.sw.Sections())),
		zap.String("initial", p.sw.ActiveID()))
	return nil
}

func (p *NavPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.layout()
		return nil, nil

	case tea.KeyMsg:
		if key.Matches(msg, p.keys.Help) {
			return nil, &PageNav{PageID: HelpPageID}
		}
		return p.handleKeyPress(msg), nil

	case tea.MouseMsg:
		return p.handleMouseEvent(msg), nil
	}
	return nil, nil
}

func (p *NavPage) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	k := p.keys

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Up):
		p.moveCursor(-1)
		return nil
	case key.Matches(msg, k.Down):
		p.moveCursor(1)
		return nil
	case key.Matches(msg, k.Home):
		p.cursor = 0
		p.clampSidebarOffset()
		return nil
	case key.Matches(msg, k.End):
		p.cursor = max(0, len(p.bindings)-1)
		p.clampSidebarOffset()
		return nil
	case key.Matches(msg, k.ScrollUp):
		p.viewport.ScrollUp(1)
		return nil
	case key.Matches(msg, k.ScrollDown):
		p.viewport.ScrollDown(1)
		return nil
	case key.Matches(msg, k.PageUp):
		p.viewport.HalfPageUp()
		return nil
	case key.Matches(msg, k.PageDown):
		p.viewport.HalfPageDown()
		return nil
	}

	// The focused control gets the key; activation keys are consumed here
	// and never reach the viewport.
	if p.cursor < len(p.bindings) {
		if p.bindings[p.cursor].KeyPress(msg.String()) {
			p.activated(p.bindings[p.cursor])
			return nil
		}
	}
	return nil
}

func (p *NavPage) handleMouseEvent(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.X >= p.opts.SidebarWidth {
			return nil
		}
		if idx, ok := p.controlAtMouseRow(msg.Y); ok && idx < len(p.bindings) {
			p.cursor = idx
			p.bindings[idx].Click()
			p.activated(p.bindings[idx])
		}
	case tea.MouseButtonWheelUp:
		if p.opts.ReverseScrollWheel {
			p.viewport.ScrollDown(1)
		} else {
			p.viewport.ScrollUp(1)
		}
	case tea.MouseButtonWheelDown:
		if p.opts.ReverseScrollWheel {
			p.viewport.ScrollUp(1)
		} else {
			p.viewport.ScrollDown(1)
		}
	}
	return nil
}

func (p *NavPage) moveCursor(delta int) {
	n := len(p.bindings)
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), n-1)
	p.clampSidebarOffset()
}

func (p *NavPage) activated(b navigation.Binding) {
	if !p.sw.HasSection(b.Target) {
		p.logger.Warn("navigation target matches no section",
			zap.Int("control", b.Index),
			zap.String("target", b.Target))
	} else {
		p.logger.Debug("section activated",
			zap.Int("control", b.Index),
			zap.String("target", b.Target))
	}
	p.syncContent()
	p.viewport.GotoTop()
}

func (p *NavPage) renderMarkdown(body string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(p.opts.MarkdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(body)
}
