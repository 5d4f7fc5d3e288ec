package ui

// Layout constants for the terminal host, in terminal cells.
const (
	// BreakpointNarrow is the default pinned-mode breakpoint: below this
	// width panels stack vertically.
	BreakpointNarrow = 80

	// ControlBarHeight is the rows reserved below the navigator viewport.
	ControlBarHeight = 2

	// HeroHeight is the rows of intro content above the pinned section.
	HeroHeight = 3

	// OutroHeight is the rows of closing content below the section.
	OutroHeight = 3

	// MinContentHeight is the minimum height of the navigator viewport.
	MinContentHeight = 5

	// MinTwoColumnWidth is the panel width from which the image sits beside
	// the text instead of below it.
	MinTwoColumnWidth = 60

	panelPadX = SpaceSM
	panelPadY = SpaceXS
)

// panelGeometry splits a panel of width w into a text column and an image
// slot. The image box is narrower than its slot so parallax drift stays
// inside the slot.
type panelGeometry struct {
	TextWidth int
	SlotWidth int
	BoxWidth  int
	// Beside is true when the image column sits right of the text.
	Beside bool
}

func geometryFor(w int) panelGeometry {
	inner := w - 2*panelPadX
	if inner < 1 {
		inner = 1
	}
	g := panelGeometry{TextWidth: inner, SlotWidth: inner}
	if w >= MinTwoColumnWidth {
		g.Beside = true
		g.TextWidth = inner * 55 / 100
		g.SlotWidth = inner - g.TextWidth - SpaceSM
	}
	g.BoxWidth = g.SlotWidth * 8 / 10
	if g.BoxWidth < 4 {
		g.BoxWidth = g.SlotWidth
	}
	return g
}

// imageLeft places the image box inside its slot for a parallax offset in
// cells, clamped to the slot.
func (g panelGeometry) imageLeft(offset float64) int {
	base := (g.SlotWidth - g.BoxWidth) / 2
	left := base + roundCells(offset)
	if left < 0 {
		left = 0
	}
	if limit := g.SlotWidth - g.BoxWidth; left > limit {
		left = limit
	}
	return left
}

func roundCells(v float64) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}
