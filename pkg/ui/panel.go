package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

type markdownKey struct {
	text  string
	width int
	dark  bool
}

type glamourKey struct {
	width int
	dark  bool
}

// panelRenderer turns panel records into fixed-size blocks of styled rows.
// Markdown output is cached per text, width and theme.
type panelRenderer struct {
	theme     Theme
	markdown  map[markdownKey]string
	renderers map[glamourKey]*glamour.TermRenderer
}

func newPanelRenderer(theme Theme) *panelRenderer {
	return &panelRenderer{
		theme:     theme,
		markdown:  make(map[markdownKey]string),
		renderers: make(map[glamourKey]*glamour.TermRenderer),
	}
}

func (r *panelRenderer) reset() {
	r.markdown = make(map[markdownKey]string)
}

func (r *panelRenderer) termRenderer(width int, dark bool) (*glamour.TermRenderer, error) {
	k := glamourKey{width: width, dark: dark}
	if tr, ok := r.renderers[k]; ok {
		return tr, nil
	}
	style := "light"
	if dark {
		style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[k] = tr
	return tr, nil
}

// description renders markdown to width, falling back to plain wrapping.
func (r *panelRenderer) description(text string, width int, dark bool) string {
	if strings.TrimSpace(text) == "" || width <= 0 {
		return ""
	}
	k := markdownKey{text: text, width: width, dark: dark}
	if s, ok := r.markdown[k]; ok {
		return s
	}
	out := wordwrap.String(text, width)
	if tr, err := r.termRenderer(width, dark); err == nil {
		if md, err := tr.Render(text); err == nil {
			out = strings.Trim(md, "\n")
		}
	}
	out = clampWidth(out, width)
	r.markdown[k] = out
	return out
}

// body is the text column: title, description, features and link. dim
// mutes everything but the markdown so the block keeps its height.
func (r *panelRenderer) body(p model.PanelRecord, width int, dim bool) string {
	pal := PanelPalette(p.Theme)
	accent, fg := pal.Accent, pal.Fg
	if dim {
		accent, fg = pal.Muted, pal.Muted
	}
	rs := r.theme.Renderer

	parts := []string{
		rs.NewStyle().Bold(true).Foreground(accent).Render(runewidth.Truncate(p.Title, width, "…")),
	}
	if d := r.description(p.Description, width, p.Theme.IsDark()); d != "" {
		parts = append(parts, d)
	}
	if len(p.Features) > 0 {
		featureStyle := rs.NewStyle().Foreground(fg)
		lines := make([]string, 0, len(p.Features))
		for _, f := range p.Features {
			lines = append(lines, featureStyle.Render(wordwrap.String("• "+f.Text, width)))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if p.NavigationTarget != "" {
		link := rs.NewStyle().Foreground(accent).Underline(true).
			Render(runewidth.Truncate("→ "+p.NavigationTarget, width, "…"))
		parts = append(parts, link)
	}
	return clampWidth(strings.Join(parts, "\n\n"), width)
}

// image renders the placeholder box for the panel's image, shifted inside
// its slot by the parallax offset.
func (r *panelRenderer) image(p model.PanelRecord, geo panelGeometry, offset float64) string {
	if !p.HasImage() || geo.BoxWidth < 3 {
		return ""
	}
	pal := PanelPalette(p.Theme)
	box := r.theme.Renderer.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(pal.Muted).
		Foreground(pal.Muted).
		Width(geo.BoxWidth-2).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Render(runewidth.Truncate("▨ "+p.ImageRef, geo.BoxWidth-4, "…"))

	pad := strings.Repeat(" ", geo.imageLeft(offset))
	lines := strings.Split(box, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (r *panelRenderer) content(p model.PanelRecord, w int, imageOffset float64, dim bool) string {
	geo := geometryFor(w)
	text := r.body(p, geo.TextWidth, dim)
	img := r.image(p, geo, imageOffset)
	switch {
	case img == "":
		return text
	case geo.Beside:
		col := r.theme.Renderer.NewStyle().Width(geo.TextWidth).Render(text)
		return lipgloss.JoinHorizontal(lipgloss.Top, col, strings.Repeat(" ", SpaceSM), img)
	default:
		return text + "\n\n" + img
	}
}

func (r *panelRenderer) surface(p model.PanelRecord) lipgloss.Style {
	pal := PanelPalette(p.Theme)
	return r.theme.Renderer.NewStyle().
		Background(pal.Bg).
		Foreground(pal.Fg).
		Padding(panelPadY, panelPadX)
}

// pinned renders a panel as exactly h rows of width w for the track.
func (r *panelRenderer) pinned(p model.PanelRecord, pf nav.PanelFrame, w, h int) []string {
	block := r.surface(p).Width(w).Height(h).MaxHeight(h).Render(r.content(p, w, pf.ImageOffset, false))
	return fitBlock(block, w, h)
}

// stacked renders a panel at its natural height, applying the reveal:
// hidden before it starts, dimmed while fading in, and shifted down by the
// remaining translate.
func (r *panelRenderer) stacked(p model.PanelRecord, pf nav.PanelFrame, w int) []string {
	dim := pf.Opacity < 1
	block := r.surface(p).Width(w).Faint(dim).Render(r.content(p, w, 0, dim))
	lines := fitBlock(block, w, lipgloss.Height(block))

	if pf.Opacity <= 0 {
		blank := strings.Repeat(" ", w)
		for i := range lines {
			lines[i] = blank
		}
		return lines
	}
	if k := roundCells(pf.TranslateY); k > 0 && k < len(lines) {
		shifted := make([]string, 0, len(lines))
		for i := 0; i < k; i++ {
			shifted = append(shifted, strings.Repeat(" ", w))
		}
		lines = append(shifted, lines[:len(lines)-k]...)
	}
	return lines
}

func (r *panelRenderer) naturalHeight(p model.PanelRecord, w int) int {
	if w <= 0 {
		return 1
	}
	return lipgloss.Height(r.surface(p).Width(w).Render(r.content(p, w, 0, false)))
}

// fitBlock splits s into exactly h rows of display width w.
func fitBlock(s string, w, h int) []string {
	src := strings.Split(s, "\n")
	out := make([]string, h)
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		out[i] = fitLine(line, w)
	}
	return out
}

func fitLine(line string, w int) string {
	lw := ansi.StringWidth(line)
	switch {
	case lw > w:
		return ansi.Truncate(line, w, "")
	case lw < w:
		return line + strings.Repeat(" ", w-lw)
	}
	return line
}

func clampWidth(s string, w int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if ansi.StringWidth(l) > w {
			lines[i] = ansi.Truncate(l, w, "")
		}
	}
	return strings.Join(lines, "\n")
}

// trackRows translates the horizontal track: blocks are the panels' rows
// side by side and the visible window starts trackOffset cells to the left.
func trackRows(blocks func(i int) []string, n int, trackOffset float64, w, h int) []string {
	rows := make([]string, h)
	if w <= 0 {
		return rows
	}
	left := roundCells(-trackOffset)
	if left < 0 {
		left = 0
	}
	first := left / w
	shift := left - first*w

	var visible [][]string
	for i := first; i <= first+1 && i < n; i++ {
		visible = append(visible, blocks(i))
	}
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for _, b := range visible {
			if y < len(b) {
				sb.WriteString(b[y])
			}
		}
		rows[y] = fitLine(ansi.Cut(sb.String(), shift, shift+w), w)
	}
	return rows
}
