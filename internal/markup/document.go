// Package markup loads navigation controls and sections from authored
// documents and writes switcher state back onto them.
package markup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinytelemetry/sectionnav/internal/navigation"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrDuplicateSection  = errors.New("duplicate section id")
	ErrNoSections        = errors.New("document has no sections")
)

// Format identifies how a document was authored.
type Format int

const (
	FormatHTML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Document is a loaded page: its controls and sections in document order,
// plus whatever is needed to serialize it again.
type Document struct {
	Title    string
	Format   Format
	Controls []navigation.Control
	Sections []navigation.Section

	html *htmlTree
}

// Load reads the document at path, choosing the parser by file extension.
func Load(path string) (*Document, error) {
	var parse func(f *os.File) (*Document, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		parse = func(f *os.File) (*Document, error) { return ParseHTML(f) }
	case ".yaml", ".yml":
		parse = func(f *os.File) (*Document, error) { return ParseYAML(f) }
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	doc, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Switcher returns a navigation.Switcher seeded with the document's
// authored active state.
func (d *Document) Switcher() *navigation.Switcher {
	return navigation.New(d.Controls, d.Sections)
}

// Apply copies the switcher's active flags onto the document. The switcher
// must have been created from this document.
func (d *Document) Apply(sw *navigation.Switcher) {
	d.Controls = sw.Controls()
	d.Sections = sw.Sections()
	if d.html != nil {
		d.html.apply(d.Controls, d.Sections)
	}
}

func validateSections(sections []navigation.Section) error {
	if len(sections) == 0 {
		return ErrNoSections
	}
	seen := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSection, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
