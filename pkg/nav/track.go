package nav

// TrackOffset is the horizontal offset applied to the panel track.
// It is negative-going: progress 1 moves the track left by the full travel.
func TrackOffset(progress, travel float64) float64 {
	if travel <= 0 {
		return 0
	}
	off := -clamp01(progress) * travel
	if off == 0 {
		// avoid -0 leaking into rendered output
		return 0
	}
	return off
}
