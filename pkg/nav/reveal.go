package nav

import (
	"time"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

const (
	// DefaultRevealThreshold reveals a panel once its top is 80% down the viewport.
	DefaultRevealThreshold = 0.8
	DefaultRevealDuration  = 700 * time.Millisecond
	DefaultRevealDistance  = 2
)

// stackedStrategy lets panels flow vertically and fades each one in the
// first time it scrolls into view. There is no pinning or translation.
type stackedStrategy struct {
	inst       *Instance
	layout     Layout
	vp         Viewport
	revealedAt []time.Time
}

func (s *stackedStrategy) Mode() model.Mode { return model.ModeStacked }

func (s *stackedStrategy) setup(l Layout, vp Viewport) {
	s.measure(l, vp)
	ev := s.inst.events
	ev.Add(EventScroll, ownerStacked, func(Event) {
		s.inst.markDirty()
	})
	ev.Add(EventResize, ownerStacked, func(e Event) {
		if e.Layout != nil {
			s.measure(*e.Layout, e.Viewport)
		}
		s.inst.markDirty()
	})
}

func (s *stackedStrategy) measure(l Layout, vp Viewport) {
	s.layout = l
	s.vp = vp
	n := len(s.inst.panels)
	if len(s.revealedAt) != n {
		next := make([]time.Time, n)
		copy(next, s.revealedAt)
		s.revealedAt = next
	}
}

func (s *stackedStrategy) teardown() {
	s.inst.events.RemoveOwner(ownerStacked)
	s.layout = Layout{}
	s.revealedAt = nil
}

func (s *stackedStrategy) animating(now time.Time) bool {
	d := s.inst.cfg.revealDuration
	for _, at := range s.revealedAt {
		if !at.IsZero() && now.Sub(at) < d {
			return true
		}
	}
	return false
}

func (s *stackedStrategy) frame(offset float64, now time.Time) Frame {
	n := len(s.inst.panels)
	state := frozenState(s.inst.state, n)
	fr := Frame{
		Mode:         model.ModeStacked,
		ScrollOffset: offset,
		Progress:     state.Progress,
		ActiveIndex:  state.ActiveIndex,
		Total:        n,
		Panels:       make([]PanelFrame, n),
	}
	cfg := s.inst.cfg
	line := offset + s.vp.Height*cfg.revealThreshold
	for i := 0; i < n; i++ {
		if i < len(s.revealedAt) && s.revealedAt[i].IsZero() {
			if box, ok := s.layout.panel(i); ok && box.Top <= line {
				s.revealedAt[i] = now
			}
		}
		var t float64
		if i < len(s.revealedAt) && !s.revealedAt[i].IsZero() {
			if cfg.revealDuration <= 0 {
				t = 1
			} else {
				t = float64(now.Sub(s.revealedAt[i])) / float64(cfg.revealDuration)
			}
		}
		eased := EaseOutCubic(t)
		fr.Panels[i] = PanelFrame{
			Index:      i,
			HasImage:   s.inst.panels[i].HasImage(),
			Opacity:    eased,
			TranslateY: cfg.revealDistance * (1 - eased),
		}
	}
	return fr
}
