package nav

import (
	"log"
	"time"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// DefaultBreakpoint is the minimum viewport width for pinned mode.
const DefaultBreakpoint = 80

const (
	ownerPinned  = "pinned"
	ownerStacked = "stacked"
)

// ResolveMode picks the strategy for the current viewport. Pinned needs a
// wide enough viewport and something to traverse: at least two panels and
// a positive horizontal travel.
func ResolveMode(viewportWidth, breakpoint float64, panelCount int, travel float64) model.Mode {
	if viewportWidth < breakpoint || panelCount < 2 || travel <= 0 {
		return model.ModeStacked
	}
	return model.ModePinned
}

// strategy owns the listeners and cached measurements of one mode.
type strategy interface {
	Mode() model.Mode
	setup(l Layout, vp Viewport)
	teardown()
	frame(offset float64, now time.Time) Frame
	animating(now time.Time) bool
}

// ModeManager activates exactly one strategy at a time.
type ModeManager struct {
	inst     *Instance
	active   strategy
	switches int
}

func newModeManager(inst *Instance) *ModeManager {
	return &ModeManager{inst: inst}
}

// Active returns the current mode, if any strategy is active.
func (m *ModeManager) Active() (model.Mode, bool) {
	if m.active == nil {
		return model.ModeStacked, false
	}
	return m.active.Mode(), true
}

// Switches counts completed activations, for diagnostics.
func (m *ModeManager) Switches() int { return m.switches }

// Activate tears down the previous strategy before setting up the new one.
// Activating the mode that is already active is a no-op and returns false.
func (m *ModeManager) Activate(mode model.Mode, l Layout, vp Viewport) bool {
	if m.active != nil && m.active.Mode() == mode {
		return false
	}
	from := "none"
	if m.active != nil {
		from = m.active.Mode().String()
		m.active.teardown()
		m.active = nil
	}

	var s strategy
	switch mode {
	case model.ModePinned:
		s = &pinnedStrategy{inst: m.inst}
	default:
		s = &stackedStrategy{inst: m.inst}
	}
	s.setup(l, vp)
	m.active = s
	m.switches++
	log.Printf("[nav] mode %s -> %s (width=%.0f panels=%d)", from, mode, vp.Width, len(m.inst.panels))
	return true
}

// Deactivate tears down the active strategy, if any.
func (m *ModeManager) Deactivate() {
	if m.active == nil {
		return
	}
	m.active.teardown()
	m.active = nil
}

func (m *ModeManager) pinned() (*pinnedStrategy, bool) {
	p, ok := m.active.(*pinnedStrategy)
	return p, ok
}

// pinnedStrategy drives the mapper, translator and parallax driver.
type pinnedStrategy struct {
	inst    *Instance
	layout  Layout
	vp      Viewport
	region  ScrollRegion
	windows []ParallaxWindow
}

func (p *pinnedStrategy) Mode() model.Mode { return model.ModePinned }

func (p *pinnedStrategy) setup(l Layout, vp Viewport) {
	p.measure(l, vp)
	ev := p.inst.events
	ev.Add(EventScroll, ownerPinned, func(Event) {
		p.inst.markDirty()
	})
	ev.Add(EventResize, ownerPinned, func(e Event) {
		if e.Layout != nil {
			p.measure(*e.Layout, e.Viewport)
		}
		p.retargetJump()
		p.inst.markDirty()
	})
}

// measure is the only writer of the cached region and windows.
func (p *pinnedStrategy) measure(l Layout, vp Viewport) {
	p.layout = l
	p.vp = vp
	p.region = NewScrollRegion(l.RegionStart, l.TrackWidth, vp.Width)
	p.windows = make([]ParallaxWindow, len(l.Panels))
	for i, box := range l.Panels {
		p.windows[i] = NewParallaxWindow(box.Left, box.Width, vp.Width)
	}
}

// retargetJump points a jump in flight at its panel's position in the
// freshly measured region, continuing from the current offset.
func (p *pinnedStrategy) retargetJump() {
	inst := p.inst
	if !inst.smooth.Active() || inst.jumpIndex < 0 {
		return
	}
	inst.requestScroll(JumpTarget(p.region, inst.jumpIndex, len(inst.panels)))
}

func (p *pinnedStrategy) teardown() {
	p.inst.events.RemoveOwner(ownerPinned)
	p.inst.smooth.Cancel()
	p.layout = Layout{}
	p.windows = nil
	p.region = ScrollRegion{}
}

func (p *pinnedStrategy) animating(time.Time) bool { return false }

func (p *pinnedStrategy) frame(offset float64, _ time.Time) Frame {
	n := len(p.inst.panels)
	progress := Progress(p.region, offset)
	travel := p.region.Travel()
	track := TrackOffset(progress, travel)
	travelled := -track

	fr := Frame{
		Mode:         model.ModePinned,
		ScrollOffset: offset,
		Region:       p.region,
		Pinned:       p.region.Contains(offset),
		Progress:     progress,
		ActiveIndex:  ActiveIndex(progress, n),
		Total:        n,
		TrackOffset:  track,
		Panels:       make([]PanelFrame, n),
	}
	for i, rec := range p.inst.panels {
		pf := PanelFrame{Index: i, Opacity: 1}
		box, ok := p.layout.panel(i)
		if ok && i < len(p.windows) {
			pf.LocalProgress = p.windows[i].LocalProgress(travelled)
			if rec.HasImage() {
				pf.HasImage = true
				pf.ImageOffset = ImageOffset(pf.LocalProgress, box.ImageWidth, p.inst.cfg.amplitude)
			}
		}
		fr.Panels[i] = pf
	}
	return fr
}
