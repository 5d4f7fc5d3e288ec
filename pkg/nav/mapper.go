// Package nav implements the scroll-synchronized horizontal panel navigator.
//
// A single vertical scroll position is mapped to normalized progress, the
// progress to a horizontal track offset, and the track offset to per-panel
// parallax offsets. The package is headless: it reads measurements and the
// scroll position from a Host and publishes Frames of transform values.
package nav

import "math"

// ScrollRegion is the absolute scroll range the navigator owns while pinned.
type ScrollRegion struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewScrollRegion derives the region from the track's horizontal overflow.
// Content that fits the viewport yields a degenerate region (End == Start).
func NewScrollRegion(start, trackContentWidth, viewportWidth float64) ScrollRegion {
	travel := trackContentWidth - viewportWidth
	if travel < 0 || math.IsNaN(travel) {
		travel = 0
	}
	return ScrollRegion{Start: start, End: start + travel}
}

// Travel returns End-Start, or 0 for a degenerate region.
func (r ScrollRegion) Travel() float64 {
	if r.Degenerate() {
		return 0
	}
	return r.End - r.Start
}

// Degenerate reports whether there is nothing to traverse horizontally.
func (r ScrollRegion) Degenerate() bool {
	return !(r.End > r.Start)
}

// Contains reports whether the viewport is pinned at this offset.
func (r ScrollRegion) Contains(offset float64) bool {
	return !r.Degenerate() && offset >= r.Start && offset <= r.End
}

// Progress maps a scroll offset into [0,1] across the region.
func Progress(r ScrollRegion, scrollOffset float64) float64 {
	if r.Degenerate() {
		return 0
	}
	return clamp01((scrollOffset - r.Start) / (r.End - r.Start))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
