package nav

// Viewport is the visible area in navigator units.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PanelBox is the measured geometry of a single panel.
//
// Left/Width place the panel inside the horizontal track (pinned mode).
// Top/Height place it in the natural vertical document (stacked mode).
type PanelBox struct {
	Left       float64 `json:"left"`
	Width      float64 `json:"width"`
	Top        float64 `json:"top"`
	Height     float64 `json:"height"`
	ImageWidth float64 `json:"image_width"`
}

// Layout is everything the host measures for the navigator.
type Layout struct {
	// RegionStart is the absolute scroll offset at which the section
	// reaches the top of the viewport.
	RegionStart float64    `json:"region_start"`
	TrackWidth  float64    `json:"track_width"`
	Panels      []PanelBox `json:"panels"`
}

// UniformLayout lays out n viewport-sized panels side by side (and stacked
// vertically for the natural flow), starting at regionStart.
func UniformLayout(n int, vp Viewport, regionStart float64) Layout {
	l := Layout{
		RegionStart: regionStart,
		TrackWidth:  float64(n) * vp.Width,
		Panels:      make([]PanelBox, n),
	}
	for i := range l.Panels {
		l.Panels[i] = PanelBox{
			Left:       float64(i) * vp.Width,
			Width:      vp.Width,
			Top:        regionStart + float64(i)*vp.Height,
			Height:     vp.Height,
			ImageWidth: vp.Width,
		}
	}
	return l
}

// panel returns the box for index i, or a zero box when the layout is
// stale (fewer boxes than panels).
func (l Layout) panel(i int) (PanelBox, bool) {
	if i < 0 || i >= len(l.Panels) {
		return PanelBox{}, false
	}
	return l.Panels[i], true
}
