package nav

import (
	"math"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// Controls is the surface exposed to the host's control bar.
type Controls interface {
	ActiveIndex() int
	Total() int
	Progress() float64
	CanPrev() bool
	CanNext() bool
	Next()
	Prev()
	Jump(index int)
}

// tieEpsilon is how far below .5 a fraction may land from floating point
// error and still count as a midpoint.
const tieEpsilon = 1e-12

// ActiveIndex projects progress onto a panel index, rounding half up.
func ActiveIndex(progress float64, n int) int {
	if n <= 1 {
		return 0
	}
	x := clamp01(progress) * float64(n-1)
	idx := math.Floor(x)
	if x-idx >= 0.5-tieEpsilon {
		idx++
	}
	return clampIndex(int(idx), n)
}

// JumpTarget is the absolute scroll offset that shows panel index.
// Out-of-range indexes are clamped.
func JumpTarget(r ScrollRegion, index, n int) float64 {
	if n < 2 || r.Degenerate() {
		return r.Start
	}
	index = clampIndex(index, n)
	if index == n-1 {
		return r.End
	}
	return r.Start + r.Travel()*float64(index)/float64(n-1)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// Controller implements Controls for an Instance. It only ever requests a
// scroll; the tick publishes progress and index.
type Controller struct {
	inst *Instance
}

var _ Controls = (*Controller)(nil)

func (c *Controller) ActiveIndex() int  { return c.inst.state.ActiveIndex }
func (c *Controller) Total() int        { return len(c.inst.panels) }
func (c *Controller) Progress() float64 { return c.inst.state.Progress }

// enabled is false in stacked mode, for degenerate content and after Close.
func (c *Controller) enabled() bool {
	if c.inst.closed || len(c.inst.panels) < 2 {
		return false
	}
	_, ok := c.inst.modes.pinned()
	return ok
}

func (c *Controller) CanPrev() bool {
	return c.enabled() && c.ActiveIndex() > 0
}

func (c *Controller) CanNext() bool {
	return c.enabled() && c.ActiveIndex() < c.Total()-1
}

// Next requests the following panel; no-op at the last one.
func (c *Controller) Next() {
	if !c.CanNext() {
		return
	}
	c.Jump(c.ActiveIndex() + 1)
}

// Prev requests the preceding panel; no-op at the first one.
func (c *Controller) Prev() {
	if !c.CanPrev() {
		return
	}
	c.Jump(c.ActiveIndex() - 1)
}

// Jump requests a smooth scroll to the panel's position.
func (c *Controller) Jump(index int) {
	if !c.enabled() {
		return
	}
	p, _ := c.inst.modes.pinned()
	index = clampIndex(index, c.Total())
	c.inst.requestScroll(JumpTarget(p.region, index, c.Total()))
	c.inst.jumpIndex = index
}

// frozenState is used by the stacked strategy to keep the last pinned
// projection frozen, clamped to the current panel count.
func frozenState(s model.NavigationState, n int) model.NavigationState {
	if n <= 1 {
		return model.NavigationState{}
	}
	s.ActiveIndex = clampIndex(s.ActiveIndex, n)
	return s
}
