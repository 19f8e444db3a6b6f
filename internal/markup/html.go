package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tinytelemetry/sectionnav/internal/navigation"
)

// Class and attribute names of the page markup contract.
const (
	ClassNavLink   = "nav-link"
	ClassSection   = "section"
	ClassActive    = "active"
	AttrDataTarget = "data-target"
)

type htmlTree struct {
	root     *html.Node
	controls []*html.Node
	sections []*html.Node
}

// ParseHTML reads a page whose navigation links carry class "nav-link" and a
// "data-target" attribute, and whose sections carry class "section" and an
// id. Links and sections are collected in document order wherever they sit,
// including inside other sections. A "nav-link" without data-target is not a
// control and is left untouched by Apply.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	tree := &htmlTree{root: root}
	doc := &Document{Format: FormatHTML, html: tree}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "title" && doc.Title == "":
				doc.Title = textOf(n)
			case hasClass(n, ClassNavLink) && hasAttr(n, AttrDataTarget):
				tree.controls = append(tree.controls, n)
				doc.Controls = append(doc.Controls, navigation.Control{
					Label:  textOf(n),
					Target: getAttr(n, AttrDataTarget),
					Active: hasClass(n, ClassActive),
				})
			case hasClass(n, ClassSection):
				id := getAttr(n, "id")
				title := headingOf(n)
				if title == "" {
					title = id
				}
				tree.sections = append(tree.sections, n)
				doc.Sections = append(doc.Sections, navigation.Section{
					ID:     id,
					Title:  title,
					Body:   blockText(n),
					Active: hasClass(n, ClassActive),
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if err := validateSections(doc.Sections); err != nil {
		return nil, err
	}
	return doc, nil
}

func (t *htmlTree) apply(controls []navigation.Control, sections []navigation.Section) {
	for i, n := range t.controls {
		setClass(n, ClassActive, controls[i].Active)
	}
	for i, n := range t.sections {
		setClass(n, ClassActive, sections[i].Active)
	}
}

// RenderHTML writes the document, including any applied state, as HTML.
func (d *Document) RenderHTML(w io.Writer) error {
	if d.html == nil {
		return fmt.Errorf("rendering %s document as html: %w", d.Format, ErrUnsupportedFormat)
	}
	return html.Render(w, d.html.root)
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// setClass adds or removes class from n, leaving other classes in order.
func setClass(n *html.Node, class string, on bool) {
	idx := -1
	for i, a := range n.Attr {
		if a.Key == "class" {
			idx = i
			break
		}
	}

	var kept []string
	if idx >= 0 {
		for _, c := range strings.Fields(n.Attr[idx].Val) {
			if c != class {
				kept = append(kept, c)
			}
		}
	}
	if on {
		kept = append(kept, class)
	}

	switch {
	case idx >= 0:
		n.Attr[idx].Val = strings.Join(kept, " ")
	case on:
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
}

func headingOf(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || hasClass(c, ClassSection) {
			continue
		}
		switch c.Data {
		case "h1", "h2", "h3":
			return textOf(c)
		}
		if t := headingOf(c); t != "" {
			return t
		}
	}
	return ""
}

// textOf returns the element's text with whitespace collapsed.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

var blockElements = map[string]bool{
	"p": true, "div": true, "pre": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "dt": true, "dd": true, "figcaption": true,
}

// blockText renders the readable text of a section, one paragraph per block
// element. The section heading is dropped since it becomes the title.
func blockText(section *html.Node) string {
	var paragraphs []string
	skippedHeading := false

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				if t := strings.Join(strings.Fields(c.Data), " "); t != "" {
					paragraphs = append(paragraphs, t)
				}
			case c.Type != html.ElementNode:
			case c.Data == "script" || c.Data == "style":
			case hasClass(c, ClassSection):
				// Nested sections carry their own body.
			case !skippedHeading && (c.Data == "h1" || c.Data == "h2" || c.Data == "h3"):
				skippedHeading = true
			case c.Data == "li":
				if t := textOf(c); t != "" {
					paragraphs = append(paragraphs, "- "+t)
				}
			case c.Data == "pre":
				paragraphs = append(paragraphs, strings.TrimRight(rawText(c), "\n"))
			case blockElements[c.Data] && !hasBlockChild(c):
				if t := textOf(c); t != "" {
					paragraphs = append(paragraphs, t)
				}
			default:
				walk(c)
			}
		}
	}
	walk(section)
	return strings.Join(paragraphs, "\n\n")
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (blockElements[c.Data] || hasBlockChild(c)) {
			return true
		}
	}
	return false
}

// rawText keeps whitespace, for preformatted blocks.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
