package nav

import "time"

// DefaultSmoothScrollDuration is how long a jump animates.
const DefaultSmoothScrollDuration = 600 * time.Millisecond

// SmoothScroll animates the host scroll position toward a jump target.
// Only the most recent request is live; starting a new one or cancelling
// discards the previous target.
type SmoothScroll struct {
	duration  time.Duration
	gen       uint64
	active    bool
	from      float64
	to        float64
	startedAt time.Time
}

// NewSmoothScroll creates an idle animator.
func NewSmoothScroll(d time.Duration) *SmoothScroll {
	if d < 0 {
		d = 0
	}
	return &SmoothScroll{duration: d}
}

// Start begins a new animation, superseding any in flight, and returns its
// generation.
func (s *SmoothScroll) Start(from, to float64, now time.Time) uint64 {
	s.gen++
	s.active = true
	s.from = from
	s.to = to
	s.startedAt = now
	return s.gen
}

// Cancel drops the running animation without applying its target.
func (s *SmoothScroll) Cancel() {
	if s.active {
		s.gen++
	}
	s.active = false
}

// Active reports whether an animation is in flight.
func (s *SmoothScroll) Active() bool { return s.active }

// Target returns the live animation's target.
func (s *SmoothScroll) Target() (float64, bool) {
	return s.to, s.active
}

// Generation returns the id of the most recent request.
func (s *SmoothScroll) Generation() uint64 { return s.gen }

// Step returns the eased position for now. done is true on the step that
// lands exactly on the target; the animator is idle afterwards.
func (s *SmoothScroll) Step(now time.Time) (pos float64, done bool) {
	if !s.active {
		return s.to, true
	}
	elapsed := now.Sub(s.startedAt)
	if s.duration <= 0 || elapsed >= s.duration {
		s.active = false
		return s.to, true
	}
	t := float64(elapsed) / float64(s.duration)
	if t < 0 {
		t = 0
	}
	return s.from + (s.to-s.from)*EaseInOutCubic(t), false
}

// EaseInOutCubic eases t in [0,1].
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseOutCubic eases t in [0,1], used by the stacked reveal.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}
