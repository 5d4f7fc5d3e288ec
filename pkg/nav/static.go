package nav

import (
	"time"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// StaticHost is a Host with a fixed viewport and a uniform layout. It backs
// robot output and storyboard rendering, where no terminal is attached.
type StaticHost struct {
	VP          Viewport
	RegionStart float64
	Offset      float64
}

func (h *StaticHost) Viewport() Viewport      { return h.VP }
func (h *StaticHost) ScrollOffset() float64   { return h.Offset }
func (h *StaticHost) ScrollTo(offset float64) { h.Offset = offset }
func (h *StaticHost) RequestFrame()           {}

func (h *StaticHost) Measure(panels []model.PanelRecord, vp Viewport) Layout {
	return UniformLayout(len(panels), vp, h.RegionStart)
}

// Snapshot mounts panels on a StaticHost scrolled to offset and returns the
// settled Frame. Reveal animations are run to completion.
func Snapshot(panels []model.PanelRecord, vp Viewport, regionStart, offset float64, opts ...Option) Frame {
	host := &StaticHost{VP: vp, RegionStart: regionStart, Offset: offset}
	epoch := time.Unix(0, 0).UTC()
	opts = append(opts, WithClock(func() time.Time { return epoch }))
	inst := New(host, panels, opts...)
	defer inst.Close()

	inst.Frame(epoch)
	inst.cfg.onFrame = nil
	settled := epoch.Add(inst.cfg.revealDuration + time.Second)
	inst.markDirty()
	return inst.Frame(settled)
}
