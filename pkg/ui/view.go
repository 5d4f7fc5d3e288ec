package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

// View implements tea.Model. Everything on screen comes from the last
// published Frame so a paint never mixes two ticks.
func (m Model) View() string {
	if !m.ready {
		return "Loading panels..."
	}
	if m.quitting {
		return ""
	}
	if m.helpOverlay.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpOverlay.View())
	}

	fr := m.inst.Last()
	var rows []string
	if fr.Mode == model.ModePinned {
		rows = m.pinnedRows(fr)
	} else {
		rows = m.stackedRows(fr)
	}
	return strings.Join(rows, "\n") + "\n" + m.controlBar(fr)
}

func (m Model) heroRows(w int) []string {
	n := len(m.inst.Panels())
	title := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary).
		Render(runewidth.Truncate(m.title, w, "…"))
	hint := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).
		Render(runewidth.Truncate(fmt.Sprintf("%d panels · scroll or press → to browse", n), w, "…"))
	return []string{fitLine(title, w), fitLine(hint, w), RenderDivider(w)}
}

func (m Model) outroRows(w int) []string {
	end := m.theme.Renderer.NewStyle().Faint(true).Render("end")
	return []string{RenderDivider(w), fitLine(end, w), strings.Repeat(" ", w)}
}

// pinnedRows composes the document around a sticky section: intro rows
// scroll away above it, the section holds still while the scroll offset is
// inside the region, and the outro follows once the region is passed.
func (m Model) pinnedRows(fr nav.Frame) []string {
	w, h := m.host.width, m.host.height
	panels := m.inst.Panels()

	sectionTop := 0
	switch {
	case fr.ScrollOffset < fr.Region.Start:
		sectionTop = roundCells(fr.Region.Start - fr.ScrollOffset)
	case fr.ScrollOffset > fr.Region.End:
		sectionTop = -roundCells(fr.ScrollOffset - fr.Region.End)
	}

	block := func(i int) []string {
		var pf nav.PanelFrame
		if i < len(fr.Panels) {
			pf = fr.Panels[i]
		}
		return m.render.pinned(panels[i], pf, w, h)
	}
	section := trackRows(block, len(panels), fr.TrackOffset, w, h)

	hero := m.heroRows(w)
	outro := m.outroRows(w)
	heroStart := roundCells(fr.ScrollOffset)
	rows := make([]string, h)
	for y := range rows {
		switch {
		case y < sectionTop:
			if i := heroStart + y; i >= 0 && i < len(hero) {
				rows[y] = hero[i]
			} else {
				rows[y] = strings.Repeat(" ", w)
			}
		case y < sectionTop+h:
			rows[y] = section[y-sectionTop]
		default:
			if i := y - sectionTop - h; i < len(outro) {
				rows[y] = outro[i]
			} else {
				rows[y] = strings.Repeat(" ", w)
			}
		}
	}
	return rows
}

// stackedRows lays the intro, every panel at its natural height and the
// outro in a vertical document and shows it through a viewport at the
// frame's scroll offset.
func (m Model) stackedRows(fr nav.Frame) []string {
	w, h := m.host.width, m.host.height
	panels := m.inst.Panels()

	doc := m.heroRows(w)
	for i, p := range panels {
		var pf nav.PanelFrame
		if i < len(fr.Panels) {
			pf = fr.Panels[i]
		}
		doc = append(doc, m.render.stacked(p, pf, w)...)
	}
	doc = append(doc, m.outroRows(w)...)

	vp := viewport.New(w, h)
	vp.SetContent(strings.Join(doc, "\n"))
	vp.SetYOffset(roundCells(fr.ScrollOffset))
	return fitBlock(vp.View(), w, h)
}

// controlBar renders the counter, prev/next state and progress on the
// first row, and the help, search prompt or status on the second.
func (m Model) controlBar(fr nav.Frame) string {
	w := m.width
	ctrl := m.inst.Controls()
	rs := m.theme.Renderer

	enabled := rs.NewStyle().Foreground(m.theme.Primary).Bold(true)
	disabled := rs.NewStyle().Foreground(m.theme.Border)
	prev, next := disabled.Render("◀"), disabled.Render("▶")
	if ctrl.CanPrev() {
		prev = enabled.Render("◀")
	}
	if ctrl.CanNext() {
		next = enabled.Render("▶")
	}

	var top string
	panels := m.inst.Panels()
	if fr.Mode == model.ModePinned && ctrl.Total() > 1 {
		counter := fmt.Sprintf(" %d / %d ", ctrl.ActiveIndex()+1, ctrl.Total())
		title := ""
		if i := ctrl.ActiveIndex(); i < len(panels) {
			title = panels[i].Title
		}
		barWidth := w / 4
		if barWidth > 30 {
			barWidth = 30
		}
		titleWidth := w - barWidth - runewidth.StringWidth(counter) - 8
		if titleWidth < 0 {
			titleWidth = 0
		}
		top = prev + counter + next + "  " +
			m.theme.Base.Render(runewidth.Truncate(title, titleWidth, "…")) + "  "
		top = fitLine(top, w-barWidth) + RenderProgressBar(ctrl.Progress(), barWidth, m.theme)
	} else {
		label := fmt.Sprintf("%d panels", len(panels))
		if len(panels) == 1 {
			label = "1 panel"
		}
		top = prev + " " + next + "  " + rs.NewStyle().Foreground(m.theme.Subtext).Render(label)
	}

	var bottom string
	switch {
	case m.searching:
		bottom = m.search.View(w)
	case m.status != "":
		bottom = rs.NewStyle().Foreground(ColorWarning).Render(runewidth.Truncate(m.status, w, "…"))
	default:
		bottom = m.help.View(m.keys)
	}
	return fitLine(top, w) + "\n" + fitLine(bottom, w)
}
