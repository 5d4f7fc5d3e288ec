package nav

// DefaultParallaxAmplitude is the image drift as a fraction of image width,
// applied symmetrically (-8% .. +8%).
const DefaultParallaxAmplitude = 0.08

// ParallaxWindow is a panel's own visibility window in track-travel
// coordinates. EnterOffset is the travel at which the panel's leading edge
// meets the viewport's trailing edge; ExitOffset is the travel at which the
// panel's trailing edge passes the viewport's leading edge.
type ParallaxWindow struct {
	EnterOffset float64 `json:"enter_offset"`
	ExitOffset  float64 `json:"exit_offset"`
}

// NewParallaxWindow builds the window for a panel positioned at panelLeft
// within the track.
func NewParallaxWindow(panelLeft, panelWidth, viewportWidth float64) ParallaxWindow {
	return ParallaxWindow{
		EnterOffset: panelLeft - viewportWidth,
		ExitOffset:  panelLeft + panelWidth,
	}
}

// LocalProgress is the clamped fraction of the window traversed once the
// track has travelled the given distance.
func (w ParallaxWindow) LocalProgress(travelled float64) float64 {
	span := w.ExitOffset - w.EnterOffset
	if span <= 0 {
		return 0
	}
	return clamp01((travelled - w.EnterOffset) / span)
}

// ImageOffset maps local progress onto [-amplitude, +amplitude] of the
// image width. The image drifts right while its panel moves left.
func ImageOffset(local, imageWidth, amplitude float64) float64 {
	if imageWidth <= 0 || amplitude <= 0 {
		return 0
	}
	local = clamp01(local)
	return (-amplitude + 2*amplitude*local) * imageWidth
}
