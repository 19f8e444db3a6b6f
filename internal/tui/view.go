package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tinytelemetry/sectionnav/internal/markup"
)

const emptyContent = "No section selected.\n\nPick a link from the sidebar with enter, space or a click."

func (p *NavPage) contentWidth() int {
	return max(0, p.width-p.opts.SidebarWidth)
}

// layoutHeights returns the height of the main area and of the status line.
func (p *NavPage) layoutHeights() (body, status int) {
	p.help.Width = p.width
	status = lipgloss.Height(p.help.View(p.keys)) + 1
	body = max(0, p.height-status)
	return body, status
}

// layout resizes the viewport to the current window and refreshes its content.
func (p *NavPage) layout() {
	body, _ := p.layoutHeights()
	// Content box: border (2) and horizontal padding (2); title and gap (2).
	p.viewport.Width = max(0, p.contentWidth()-4)
	p.viewport.Height = max(0, body-4)
	p.clampSidebarOffset()
	p.syncContent()
}

// syncContent loads the active section's body into the viewport.
func (p *NavPage) syncContent() {
	sec, ok := p.sw.ActiveSection()
	if !ok {
		p.renderedID = ""
		p.viewport.SetContent(mutedStyle.Render(emptyContent))
		return
	}
	if sec.ID == p.renderedID && p.viewport.Width == p.renderedWidth {
		return
	}

	content := sec.Body
	if p.doc.Format == markup.FormatYAML && p.viewport.Width > 0 {
		out, err := p.renderMarkdown(sec.Body, p.viewport.Width)
		if err != nil {
			p.logger.Warn("rendering markdown failed", zap.String("section", sec.ID), zap.Error(err))
		} else {
			content = strings.TrimSpace(out)
		}
	} else if p.viewport.Width > 0 {
		content = lipgloss.NewStyle().Width(p.viewport.Width).Render(content)
	}

	p.renderedID = sec.ID
	p.renderedWidth = p.viewport.Width
	p.viewport.SetContent(content)
}

func (p *NavPage) renderContent(height int) string {
	title := "(none)"
	if sec, ok := p.sw.ActiveSection(); ok {
		title = sec.Title
	}

	inner := lipgloss.JoinVertical(lipgloss.Left,
		sectionTitleStyle.Render(truncate(title, p.viewport.Width)),
		"",
		p.viewport.View(),
	)

	return lipgloss.NewStyle().
		Width(max(0, p.contentWidth()-2)).
		Height(max(0, height-2)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1).
		Render(inner)
}

// renderStatusLine renders the active section and key help.
func (p *NavPage) renderStatusLine() string {
	active := p.sw.ActiveID()
	if active == "" {
		active = "none"
	}
	left := statusStyle.Width(p.width).Render(" section: " + active)
	return lipgloss.JoinVertical(lipgloss.Left, left, p.help.View(p.keys))
}

func (p *NavPage) View(width, height int) string {
	if width != p.width || height != p.height {
		p.width, p.height = width, height
		p.layout()
	}
	if width <= 0 || height <= 0 {
		return "Loading..."
	}

	body, _ := p.layoutHeights()
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		p.renderSidebar(body),
		p.renderContent(body),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, p.renderStatusLine())
}
