package model

import (
	"fmt"
	"strings"
)

// PanelRecord is one already-resolved content panel handed to the navigator.
// Order in the slice defines the panel index.
type PanelRecord struct {
	ID               string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title            string    `json:"title" yaml:"title"`
	Description      string    `json:"description" yaml:"description"`
	Theme            Theme     `json:"theme,omitempty" yaml:"theme,omitempty"`
	Features         []Feature `json:"features,omitempty" yaml:"features,omitempty"`
	ImageRef         string    `json:"image_ref,omitempty" yaml:"image_ref,omitempty"`
	NavigationTarget string    `json:"navigation_target,omitempty" yaml:"navigation_target,omitempty"`
}

// Feature is a single bullet in a panel's feature list.
type Feature struct {
	Text string `json:"text" yaml:"text"`
}

// HasImage reports whether the panel carries an image for parallax.
func (p PanelRecord) HasImage() bool {
	return strings.TrimSpace(p.ImageRef) != ""
}

// Normalize resolves the theme default and replaces a nil feature list
// with the empty sequence.
func (p PanelRecord) Normalize() PanelRecord {
	p.Theme = p.Theme.OrDefault()
	if p.Features == nil {
		p.Features = []Feature{}
	}
	return p
}

// Clone creates a deep copy of the panel
func (p PanelRecord) Clone() PanelRecord {
	clone := p
	if p.Features != nil {
		clone.Features = make([]Feature, len(p.Features))
		copy(clone.Features, p.Features)
	}
	return clone
}

// Validate checks if the panel data is usable
func (p *PanelRecord) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("panel title cannot be empty")
	}
	if p.Theme != "" && !p.Theme.IsValid() {
		return fmt.Errorf("invalid theme: %s", p.Theme)
	}
	return nil
}

// Theme selects the panel's color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// DefaultTheme applies when the content omits a theme.
	DefaultTheme = ThemeLight
)

// IsValid returns true if the theme is a recognized value
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	}
	return false
}

// OrDefault maps empty or unknown themes to DefaultTheme.
func (t Theme) OrDefault() Theme {
	if t.IsValid() {
		return t
	}
	return DefaultTheme
}

// IsDark returns true for the dark variant
func (t Theme) IsDark() bool {
	return t.OrDefault() == ThemeDark
}

// ClonePanels deep-copies and normalizes a panel slice. The navigator keeps
// its own snapshot so callers cannot mutate panels after handing them over.
func ClonePanels(panels []PanelRecord) []PanelRecord {
	out := make([]PanelRecord, len(panels))
	for i, p := range panels {
		out[i] = p.Clone().Normalize()
	}
	return out
}
