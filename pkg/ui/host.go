package ui

import (
	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

// termHost adapts the terminal to nav.Host. One scroll unit is one row;
// one track unit is one column.
type termHost struct {
	width, height int
	offset        float64

	render *panelRenderer
	inst   *nav.Instance

	// layout is the most recent measurement; the stacked document is
	// built from its Top/Height boxes.
	layout    nav.Layout
	docHeight float64

	frameRequested bool
}

func (h *termHost) Viewport() nav.Viewport {
	return nav.Viewport{Width: float64(h.width), Height: float64(h.height)}
}

func (h *termHost) ScrollOffset() float64 { return h.offset }

func (h *termHost) ScrollTo(offset float64) {
	h.offset = h.clamp(offset)
}

func (h *termHost) RequestFrame() { h.frameRequested = true }

// Measure lays panels side by side at full viewport width for the pinned
// track, and one after another at their natural height for the stacked
// document. The section starts below the hero rows.
func (h *termHost) Measure(panels []model.PanelRecord, vp nav.Viewport) nav.Layout {
	w := int(vp.Width)
	geo := geometryFor(w)
	l := nav.Layout{
		RegionStart: HeroHeight,
		TrackWidth:  float64(len(panels)) * vp.Width,
		Panels:      make([]nav.PanelBox, len(panels)),
	}
	top := float64(HeroHeight)
	for i, p := range panels {
		height := float64(h.render.naturalHeight(p, w))
		l.Panels[i] = nav.PanelBox{
			Left:       float64(i) * vp.Width,
			Width:      vp.Width,
			Top:        top,
			Height:     height,
			ImageWidth: float64(geo.BoxWidth),
		}
		top += height
	}
	h.layout = l
	h.docHeight = top + OutroHeight
	return l
}

// maxOffset is the furthest the document can scroll in the active mode.
func (h *termHost) maxOffset() float64 {
	if h.inst != nil && h.inst.Mode() == model.ModePinned {
		return h.inst.Region().End + OutroHeight
	}
	m := h.docHeight - float64(h.height)
	if m < 0 {
		return 0
	}
	return m
}

func (h *termHost) clamp(offset float64) float64 {
	if offset < 0 {
		return 0
	}
	if m := h.maxOffset(); offset > m {
		return m
	}
	return offset
}

// panelTop returns the stacked document row of panel i.
func (h *termHost) panelTop(i int) (float64, bool) {
	if i < 0 || i >= len(h.layout.Panels) {
		return 0, false
	}
	return h.layout.Panels[i].Top, true
}

// stackedIndex is the last panel whose top is in the upper third of the
// viewport.
func (h *termHost) stackedIndex() int {
	line := h.offset + float64(h.height)/3
	idx := 0
	for i, b := range h.layout.Panels {
		if b.Top <= line {
			idx = i
		}
	}
	return idx
}
