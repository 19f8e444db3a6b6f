package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const HelpPageID = "help"

const helpIntro = `Links in the sidebar select which section is shown.
Moving the focus does not change the section; enter, space
or a mouse click on a link does. A link whose target names no
section leaves nothing selected.`

// HelpPage lists every key binding. Any of ?, esc or q returns to the
// sections page.
type HelpPage struct {
	keys   KeyMap
	help   help.Model
	width  int
	height int
}

func NewHelpPage() *HelpPage {
	h := help.New()
	h.ShowAll = true
	return &HelpPage{keys: DefaultKeyMap(), help: h}
}

func (h *HelpPage) ID() string { return HelpPageID }

func (h *HelpPage) Init() tea.Cmd { return nil }

func (h *HelpPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		h.height = msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Help, h.keys.Back, h.keys.Quit) {
			return nil, &PageNav{PageID: NavPageID}
		}
	}
	return nil, nil
}

func (h *HelpPage) View(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		sectionTitleStyle.Render("Keys"),
		"",
		helpIntro,
		"",
		h.help.View(h.keys),
		"",
		mutedStyle.Render("?/esc/q: back"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(1, 2).
		Render(content)

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
