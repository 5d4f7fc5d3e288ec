package nav

import (
	"time"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// Host is the viewport/device boundary the navigator runs against.
type Host interface {
	// Viewport returns the current visible size.
	Viewport() Viewport
	// ScrollOffset returns the current absolute vertical scroll offset.
	ScrollOffset() float64
	// ScrollTo moves the scroll position instantly. The navigator calls it
	// for each smooth-scroll step.
	ScrollTo(offset float64)
	// Measure lays out the panels for the given viewport.
	Measure(panels []model.PanelRecord, vp Viewport) Layout
	// RequestFrame asks the host to call Instance.Frame on its next paint.
	RequestFrame()
}

type settings struct {
	breakpoint      float64
	amplitude       float64
	smoothDuration  time.Duration
	revealThreshold float64
	revealDuration  time.Duration
	revealDistance  float64
	clock           func() time.Time
	onFrame         func(Frame)
}

func defaultSettings() settings {
	return settings{
		breakpoint:      DefaultBreakpoint,
		amplitude:       DefaultParallaxAmplitude,
		smoothDuration:  DefaultSmoothScrollDuration,
		revealThreshold: DefaultRevealThreshold,
		revealDuration:  DefaultRevealDuration,
		revealDistance:  DefaultRevealDistance,
		clock:           time.Now,
	}
}

// Option configures an Instance.
type Option func(*settings)

// WithBreakpoint sets the minimum viewport width for pinned mode.
func WithBreakpoint(width float64) Option {
	return func(s *settings) {
		if width > 0 {
			s.breakpoint = width
		}
	}
}

// WithParallaxAmplitude sets the image drift as a fraction of image width.
func WithParallaxAmplitude(a float64) Option {
	return func(s *settings) {
		if a >= 0 {
			s.amplitude = a
		}
	}
}

// WithSmoothScroll sets the jump animation duration. Zero jumps instantly.
func WithSmoothScroll(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.smoothDuration = d
		}
	}
}

// WithReveal configures the stacked-mode entrance reveal.
func WithReveal(threshold float64, d time.Duration, distance float64) Option {
	return func(s *settings) {
		if threshold > 0 {
			s.revealThreshold = threshold
		}
		if d >= 0 {
			s.revealDuration = d
		}
		if distance >= 0 {
			s.revealDistance = distance
		}
	}
}

// WithClock overrides time.Now, used to start jump animations.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithFrameHandler receives every published Frame.
func WithFrameHandler(fn func(Frame)) Option {
	return func(s *settings) {
		s.onFrame = fn
	}
}

// Instance is one mounted navigator. It owns its listeners, cached
// measurements and animations; nothing is shared between instances.
type Instance struct {
	host   Host
	cfg    settings
	panels []model.PanelRecord

	events *Dispatcher
	modes  *ModeManager
	smooth *SmoothScroll
	ctrl   *Controller

	state          model.NavigationState
	jumpIndex      int // panel the jump in flight is heading for
	last           Frame
	dirty          bool
	animating      bool
	frameRequested bool
	closed         bool
}

// New mounts a navigator for panels against host and activates the mode
// for the current viewport.
func New(host Host, panels []model.PanelRecord, opts ...Option) *Instance {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	inst := &Instance{
		host:   host,
		cfg:    cfg,
		panels: model.ClonePanels(panels),
		events:    NewDispatcher(),
		smooth:    NewSmoothScroll(cfg.smoothDuration),
		jumpIndex: -1,
	}
	inst.modes = newModeManager(inst)
	inst.ctrl = &Controller{inst: inst}
	inst.reevaluate()
	return inst
}

// Controls returns the control-bar surface.
func (inst *Instance) Controls() Controls { return inst.ctrl }

// Mode returns the active mode.
func (inst *Instance) Mode() model.Mode {
	m, _ := inst.modes.Active()
	return m
}

// State returns the navigation projection published by the last tick.
func (inst *Instance) State() model.NavigationState { return inst.state }

// Last returns the most recently published Frame.
func (inst *Instance) Last() Frame { return inst.last }

// Panels returns the instance's panel snapshot. Callers must not modify it.
func (inst *Instance) Panels() []model.PanelRecord { return inst.panels }

// Region returns the cached pinned region; zero outside pinned mode.
func (inst *Instance) Region() ScrollRegion {
	if p, ok := inst.modes.pinned(); ok {
		return p.region
	}
	return ScrollRegion{}
}

// ListenerCount reports registered listeners for kind.
func (inst *Instance) ListenerCount(kind EventKind) int {
	return inst.events.Count(kind)
}

// Animating reports whether a jump is in flight.
func (inst *Instance) Animating() bool { return inst.smooth.Active() }

// Scroll notifies the navigator that the scroll position changed.
func (inst *Instance) Scroll() {
	if inst.closed {
		return
	}
	inst.events.Dispatch(Event{Kind: EventScroll, Offset: inst.host.ScrollOffset(), Viewport: inst.host.Viewport()})
}

// UserScroll is Scroll for direct user input; it cancels a running jump.
func (inst *Instance) UserScroll() {
	if inst.closed {
		return
	}
	inst.smooth.Cancel()
	inst.Scroll()
}

// Resize re-resolves the mode for the new viewport and invalidates cached
// measurements.
func (inst *Instance) Resize() {
	if inst.closed {
		return
	}
	inst.reevaluate()
}

// SetPanels replaces the content snapshot and re-measures.
func (inst *Instance) SetPanels(panels []model.PanelRecord) {
	if inst.closed {
		return
	}
	inst.panels = model.ClonePanels(panels)
	inst.state = frozenState(inst.state, len(inst.panels))
	inst.reevaluate()
}

// reevaluate is the Mode Manager's measuring pass. It either switches
// strategies or hands the fresh layout to the active strategy's resize
// listeners.
func (inst *Instance) reevaluate() {
	vp := inst.host.Viewport()
	layout := inst.host.Measure(inst.panels, vp)
	region := NewScrollRegion(layout.RegionStart, layout.TrackWidth, vp.Width)
	mode := ResolveMode(vp.Width, inst.cfg.breakpoint, len(inst.panels), region.Travel())

	if inst.modes.Activate(mode, layout, vp) {
		inst.markDirty()
		return
	}
	inst.events.Dispatch(Event{
		Kind:     EventResize,
		Offset:   inst.host.ScrollOffset(),
		Viewport: vp,
		Layout:   &layout,
	})
}

// requestScroll starts a smooth scroll toward target, superseding any
// jump in flight.
func (inst *Instance) requestScroll(target float64) {
	inst.smooth.Start(inst.host.ScrollOffset(), target, inst.cfg.clock())
	inst.requestFrame()
}

func (inst *Instance) markDirty() {
	inst.dirty = true
	inst.requestFrame()
}

func (inst *Instance) requestFrame() {
	if inst.frameRequested || inst.closed {
		return
	}
	inst.frameRequested = true
	inst.host.RequestFrame()
}

// Frame runs one frame-synchronized tick: it advances a jump in flight,
// recomputes from the current scroll offset and publishes at most one
// Frame. It is the single writer of progress, index and transforms.
func (inst *Instance) Frame(now time.Time) Frame {
	inst.frameRequested = false
	if inst.closed {
		return inst.last
	}

	if inst.smooth.Active() {
		pos, done := inst.smooth.Step(now)
		inst.host.ScrollTo(pos)
		inst.dirty = true
		if !done {
			inst.requestFrame()
		}
	}

	s := inst.modes.active
	if s == nil {
		return inst.last
	}
	// One more frame after an animation ends lands it on its final value.
	if !inst.dirty && !inst.animating && !s.animating(now) {
		return inst.last
	}
	inst.dirty = false

	fr := s.frame(inst.host.ScrollOffset(), now)
	if fr.Mode == model.ModePinned {
		inst.state = fr.State()
	}
	inst.last = fr
	inst.animating = s.animating(now)
	if inst.animating {
		inst.requestFrame()
	}
	if inst.cfg.onFrame != nil {
		inst.cfg.onFrame(fr)
	}
	return fr
}

// Close tears down the active strategy and stops all animations. The
// instance ignores every call afterwards.
func (inst *Instance) Close() {
	if inst.closed {
		return
	}
	inst.smooth.Cancel()
	inst.modes.Deactivate()
	inst.closed = true
}
