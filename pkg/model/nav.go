package model

// Mode is the responsive strategy the navigator runs in.
type Mode int

const (
	// ModeStacked lets panels flow vertically with a per-panel reveal.
	ModeStacked Mode = iota
	// ModePinned pins the viewport and translates the track horizontally.
	ModePinned
)

func (m Mode) String() string {
	switch m {
	case ModePinned:
		return "pinned"
	case ModeStacked:
		return "stacked"
	}
	return "unknown"
}

// NavigationState is the projection of progress shown by the control bar.
type NavigationState struct {
	ActiveIndex int     `json:"active_index"`
	Progress    float64 `json:"progress"`
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name; unknown names decode as stacked.
func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pinned":
		*m = ModePinned
	default:
		*m = ModeStacked
	}
	return nil
}
