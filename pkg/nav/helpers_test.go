package nav

import (
	"fmt"
	"time"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// fakeHost is an in-memory viewport with a scripted scroll position.
type fakeHost struct {
	vp          Viewport
	offset      float64
	regionStart float64
	trackWidth  float64 // overrides the uniform track width when > 0
	requests    int
	scrollTos   []float64
}

func (h *fakeHost) Viewport() Viewport      { return h.vp }
func (h *fakeHost) ScrollOffset() float64   { return h.offset }
func (h *fakeHost) ScrollTo(offset float64) { h.offset = offset; h.scrollTos = append(h.scrollTos, offset) }
func (h *fakeHost) RequestFrame()           { h.requests++ }

func (h *fakeHost) Measure(panels []model.PanelRecord, vp Viewport) Layout {
	l := UniformLayout(len(panels), vp, h.regionStart)
	if h.trackWidth > 0 {
		l.TrackWidth = h.trackWidth
	}
	return l
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func makePanels(n int) []model.PanelRecord {
	panels := make([]model.PanelRecord, n)
	for i := range panels {
		panels[i] = model.PanelRecord{
			Title:    fmt.Sprintf("Panel %d", i),
			ImageRef: fmt.Sprintf("img/%d.png", i),
		}
	}
	return panels
}

// newScenario mounts 4 panels in a 1000x600 viewport; the region starts at 200.
func newScenario(n int, opts ...Option) (*Instance, *fakeHost, *fakeClock) {
	host := &fakeHost{vp: Viewport{Width: 1000, Height: 600}, regionStart: 200}
	clock := newFakeClock()
	opts = append([]Option{WithClock(clock.Now), WithBreakpoint(768)}, opts...)
	inst := New(host, makePanels(n), opts...)
	inst.Frame(clock.now)
	return inst, host, clock
}

// scrollTo simulates a user scroll followed by a paint.
func scrollTo(inst *Instance, host *fakeHost, clock *fakeClock, offset float64) Frame {
	host.offset = offset
	inst.UserScroll()
	return inst.Frame(clock.advance(16 * time.Millisecond))
}

// settle runs frames until any jump in flight has landed.
func settle(inst *Instance, clock *fakeClock) Frame {
	fr := inst.Last()
	for i := 0; i < 200; i++ {
		fr = inst.Frame(clock.advance(16 * time.Millisecond))
		if !inst.Animating() {
			break
		}
	}
	return fr
}
