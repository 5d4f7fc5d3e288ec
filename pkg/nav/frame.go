package nav

import "github.com/Dicklesworthstone/panelnav/pkg/model"

// Frame is the complete visual output of one tick. Hosts apply it as
// transform and opacity values; nothing else is written.
type Frame struct {
	Mode         model.Mode   `json:"mode"`
	ScrollOffset float64      `json:"scroll_offset"`
	Region       ScrollRegion `json:"region"`
	// Pinned is true while the scroll offset is inside the region and the
	// viewport should stay fixed.
	Pinned      bool         `json:"pinned"`
	Progress    float64      `json:"progress"`
	ActiveIndex int          `json:"active_index"`
	Total       int          `json:"total"`
	TrackOffset float64      `json:"track_offset"`
	Panels      []PanelFrame `json:"panels"`
}

// PanelFrame carries the per-panel values of a Frame.
type PanelFrame struct {
	Index         int     `json:"index"`
	LocalProgress float64 `json:"local_progress"`
	HasImage      bool    `json:"has_image"`
	ImageOffset   float64 `json:"image_offset"`
	Opacity       float64 `json:"opacity"`
	TranslateY    float64 `json:"translate_y"`
}

// State returns the navigation projection of the frame.
func (f Frame) State() model.NavigationState {
	return model.NavigationState{ActiveIndex: f.ActiveIndex, Progress: f.Progress}
}
