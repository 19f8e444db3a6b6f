package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Rows above the first control inside the sidebar box: border, heading, gap.
const sidebarControlsTop = 3

func (p *NavPage) sidebarHeading() string {
	if p.doc.Title != "" {
		return p.doc.Title
	}
	return "Sections"
}

func (p *NavPage) buildSidebarLines() []string {
	controls := p.sw.Controls()
	lines := make([]string, 0, len(controls)+2)
	maxLabelWidth := p.opts.SidebarWidth - 4

	lines = append(lines, sidebarHeadingStyle.Render(truncate(p.sidebarHeading(), maxLabelWidth)))
	lines = append(lines, "")

	if len(controls) == 0 {
		lines = append(lines, mutedStyle.Render("(no links)"))
	}

	start, end := p.sidebarWindow(len(controls))
	for i := start; i < end; i++ {
		c := controls[i]
		label := c.Label
		if label == "" {
			label = c.Target
		}
		if c.Active {
			label = fmt.Sprintf("> %s", label)
		} else {
			label = fmt.Sprintf("  %s", label)
		}
		label = truncate(label, maxLabelWidth)

		switch {
		case i == p.cursor:
			label = focusedLinkStyle.Render(label)
		case c.Active:
			label = activeLinkStyle.Render(label)
		}
		lines = append(lines, label)
	}
	return lines
}

// sidebarRows returns how many controls fit in the sidebar, or -1 before the
// first layout when the height is unknown.
func (p *NavPage) sidebarRows() int {
	if p.height <= 0 {
		return -1
	}
	body, _ := p.layoutHeights()
	// Border top and bottom, heading and gap.
	return max(1, body-4)
}

// sidebarWindow returns the range of controls currently rendered.
func (p *NavPage) sidebarWindow(n int) (start, end int) {
	rows := p.sidebarRows()
	if rows < 0 {
		return 0, n
	}
	start = min(p.sidebarOffset, n)
	return start, min(n, start+rows)
}

// clampSidebarOffset scrolls the sidebar so the focused control is visible.
func (p *NavPage) clampSidebarOffset() {
	rows := p.sidebarRows()
	if rows < 0 {
		p.sidebarOffset = 0
		return
	}
	if p.cursor < p.sidebarOffset {
		p.sidebarOffset = p.cursor
	}
	if p.cursor >= p.sidebarOffset+rows {
		p.sidebarOffset = p.cursor - rows + 1
	}
	maxOffset := max(0, len(p.sw.Controls())-rows)
	p.sidebarOffset = min(max(p.sidebarOffset, 0), maxOffset)
}

// controlAtMouseRow maps a screen row to the control rendered on it.
func (p *NavPage) controlAtMouseRow(y int) (int, bool) {
	start, end := p.sidebarWindow(len(p.sw.Controls()))
	idx := start + y - sidebarControlsTop
	if idx < start || idx >= end {
		return 0, false
	}
	return idx, true
}

// renderSidebar renders the navigation controls in the left sidebar.
func (p *NavPage) renderSidebar(height int) string {
	p.clampSidebarOffset()

	style := lipgloss.NewStyle().
		Width(p.opts.SidebarWidth-2).
		Height(max(0, height-2)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 1)

	lines := p.buildSidebarLines()
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "~"
}
