package markup

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/sectionnav/internal/navigation"
)

type yamlDocument struct {
	Title    string        `yaml:"title"`
	Controls []yamlControl `yaml:"controls,omitempty"`
	Sections []yamlSection `yaml:"sections"`
}

type yamlControl struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
	Active bool   `yaml:"active,omitempty"`
}

type yamlSection struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title,omitempty"`
	Body   string `yaml:"body"`
	Active bool   `yaml:"active,omitempty"`
}

// ParseYAML reads a document of the form
//
//	title: Guide
//	controls:
//	  - {label: Intro, target: intro}
//	sections:
//	  - {id: intro, title: Introduction, body: "markdown..."}
//
// When controls is omitted, one control per section is generated.
func ParseYAML(r io.Reader) (*Document, error) {
	var raw yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSections
		}
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	doc := &Document{Title: raw.Title, Format: FormatYAML}
	for _, s := range raw.Sections {
		title := s.Title
		if title == "" {
			title = s.ID
		}
		doc.Sections = append(doc.Sections, navigation.Section{
			ID:     s.ID,
			Title:  title,
			Body:   s.Body,
			Active: s.Active,
		})
	}
	if err := validateSections(doc.Sections); err != nil {
		return nil, err
	}

	if raw.Controls == nil {
		for _, s := range doc.Sections {
			doc.Controls = append(doc.Controls, navigation.Control{
				Label:  s.Title,
				Target: s.ID,
				Active: s.Active,
			})
		}
		return doc, nil
	}
	for _, c := range raw.Controls {
		doc.Controls = append(doc.Controls, navigation.Control{
			Label:  c.Label,
			Target: c.Target,
			Active: c.Active,
		})
	}
	return doc, nil
}

// RenderYAML writes the document, including any applied state, as YAML.
func (d *Document) RenderYAML(w io.Writer) error {
	raw := yamlDocument{Title: d.Title}
	for _, c := range d.Controls {
		raw.Controls = append(raw.Controls, yamlControl{Label: c.Label, Target: c.Target, Active: c.Active})
	}
	for _, s := range d.Sections {
		raw.Sections = append(raw.Sections, yamlSection{ID: s.ID, Title: s.Title, Body: s.Body, Active: s.Active})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// Render writes the document in the format it was loaded from.
func (d *Document) Render(w io.Writer) error {
	if d.Format == FormatYAML {
		return d.RenderYAML(w)
	}
	return d.RenderHTML(w)
}
