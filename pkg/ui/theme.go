package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired chrome, light/dark panel surfaces
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorMuted       = lipgloss.Color("#6272A4")
	ColorSuccess     = lipgloss.Color("#50FA7B")
	ColorWarning     = lipgloss.Color("#FFB86C")
)

// Theme carries the chrome colors of the control bar and overlays.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor

	Base lipgloss.Style
}

// DefaultTheme builds the chrome theme for renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#5A5A5A", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#777777", Dark: "#BFBFBF"},
		Border:    lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#44475A"},
		Success:   lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#50FA7B"},
	}
	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: "#F8F8F2"})
	return t
}

// panelPalette is the surface of one panel, picked by its content theme.
type panelPalette struct {
	Bg     lipgloss.Color
	Fg     lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	lightPanel = panelPalette{
		Bg:     lipgloss.Color("#F5F5F0"),
		Fg:     lipgloss.Color("#1C1C1C"),
		Accent: lipgloss.Color("#7D56F4"),
		Muted:  lipgloss.Color("#777777"),
	}
	darkPanel = panelPalette{
		Bg:     lipgloss.Color("#1E1F29"),
		Fg:     ColorText,
		Accent: ColorSuccess,
		Muted:  ColorMuted,
	}
)

// PanelPalette returns the surface colors for a panel theme.
func PanelPalette(t model.Theme) panelPalette {
	if t.IsDark() {
		return darkPanel
	}
	return lightPanel
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// RenderProgressBar renders a horizontal bar for a value between 0 and 1
func RenderProgressBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value*float64(width) + 0.5)
	if filled > width {
		filled = width
	}

	done := t.Renderer.NewStyle().Foreground(t.Primary).Render(strings.Repeat("━", filled))
	rest := t.Renderer.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", width-filled))
	return done + rest
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
