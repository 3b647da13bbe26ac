package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SectionType identifies a layout section variant. The set is closed:
// the renderer dispatches over these values and treats anything else as
// a no-op.
type SectionType string

const (
	SectionBio       SectionType = "bio"
	SectionLinks     SectionType = "links"
	SectionWidget    SectionType = "widget"
	SectionSpacer    SectionType = "spacer"
	SectionCustom    SectionType = "custom"
	SectionForm      SectionType = "form"
	SectionEcommerce SectionType = "ecommerce"
	SectionTab       SectionType = "tab"
	SectionColumn    SectionType = "column"
	SectionAPI       SectionType = "api"
	SectionCalendar  SectionType = "calendar"
	SectionPage      SectionType = "page"
)

// Known reports whether t is one of the supported section variants.
func (t SectionType) Known() bool {
	switch t {
	case SectionBio, SectionLinks, SectionWidget, SectionSpacer,
		SectionCustom, SectionForm, SectionEcommerce, SectionTab,
		SectionColumn, SectionAPI, SectionCalendar, SectionPage:
		return true
	}
	return false
}

// IsContainer reports whether the variant carries child sections.
func (t SectionType) IsContainer() bool {
	return t == SectionTab || t == SectionColumn
}

// LayoutSection is one node of a profile's layout tree. Children are
// only meaningful for container variants (tab, column). Styling entries
// are CSS-like property/value pairs applied verbatim by the frontend.
type LayoutSection struct {
	ID       string            `json:"id"`
	Type     SectionType       `json:"type"`
	WidgetID string            `json:"widgetId,omitempty"`
	Content  string            `json:"content,omitempty"`
	Height   int               `json:"height,omitempty"`
	Children []LayoutSection   `json:"children,omitempty"`
	PagePath string            `json:"pagePath,omitempty"`
	Styling  map[string]string `json:"styling,omitempty"`
}

const (
	// MaxLayoutDepth bounds nesting so a stored document can never
	// recurse the renderer into the ground. Real layouts are shallow.
	MaxLayoutDepth = 16
	// MaxLayoutSections bounds the total node count of one tree.
	MaxLayoutSections = 500
)

var (
	ErrLayoutTooDeep  = errors.New("layout tree exceeds maximum depth")
	ErrLayoutTooLarge = errors.New("layout tree exceeds maximum section count")
)

// DecodeLayout parses a stored layout document into an ordered section
// list and validates that it forms a bounded tree. Sibling order is
// preserved exactly as stored. An empty or null document decodes to an
// empty layout.
func DecodeLayout(raw []byte) ([]LayoutSection, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var sections []LayoutSection
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("invalid layout document: %w", err)
	}
	count := 0
	if err := validateSections(sections, 1, &count); err != nil {
		return nil, err
	}
	return sections, nil
}

// EncodeLayout validates and serializes a layout for storage.
func EncodeLayout(sections []LayoutSection) ([]byte, error) {
	count := 0
	if err := validateSections(sections, 1, &count); err != nil {
		return nil, err
	}
	return json.Marshal(sections)
}

func validateSections(sections []LayoutSection, depth int, count *int) error {
	if depth > MaxLayoutDepth {
		return ErrLayoutTooDeep
	}
	for i := range sections {
		*count++
		if *count > MaxLayoutSections {
			return ErrLayoutTooLarge
		}
		if len(sections[i].Children) > 0 {
			if err := validateSections(sections[i].Children, depth+1, count); err != nil {
				return err
			}
		}
	}
	return nil
}
