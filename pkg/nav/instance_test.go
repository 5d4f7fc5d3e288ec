package nav

import (
	"reflect"
	"testing"
	"time"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

func TestScenario1_HalfwayScroll(t *testing.T) {
	inst, host, clock := newScenario(4)
	if inst.Mode() != model.ModePinned {
		t.Fatalf("expected pinned mode, got %s", inst.Mode())
	}
	r := inst.Region()
	if r.Travel() != 3000 {
		t.Fatalf("total travel = %v, want 3000", r.Travel())
	}

	fr := scrollTo(inst, host, clock, r.Start+1500)
	if fr.Progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", fr.Progress)
	}
	if fr.TrackOffset != -1500 {
		t.Errorf("track offset = %v, want -1500", fr.TrackOffset)
	}
	if fr.ActiveIndex != 2 {
		t.Errorf("active index = %d, want 2", fr.ActiveIndex)
	}
	if !fr.Pinned {
		t.Error("viewport should be pinned inside the region")
	}
}

func TestScenario2_NextToLast(t *testing.T) {
	inst, host, clock := newScenario(4)
	scrollTo(inst, host, clock, inst.Region().Start+1500)
	ctrl := inst.Controls()
	if ctrl.ActiveIndex() != 2 {
		t.Fatalf("precondition: index %d", ctrl.ActiveIndex())
	}

	ctrl.Next()
	target, ok := inst.smooth.Target()
	if !ok || target != inst.Region().End {
		t.Fatalf("Next should request the region end, got %v (active=%v)", target, ok)
	}
	fr := settle(inst, clock)
	if fr.Progress != 1 || fr.ActiveIndex != 3 {
		t.Errorf("settled at progress %v index %d, want 1 and 3", fr.Progress, fr.ActiveIndex)
	}

	ctrl.Next()
	if inst.Animating() {
		t.Error("a further Next should be a no-op")
	}
	if ctrl.CanNext() {
		t.Error("Next should report disabled")
	}
}

func TestScenario3_PanelCountDropsToOne(t *testing.T) {
	inst, host, clock := newScenario(4)
	scrollTo(inst, host, clock, inst.Region().Start+1500)

	inst.SetPanels(makePanels(1))
	fr := inst.Frame(clock.advance(16 * time.Millisecond))

	if inst.Mode() != model.ModeStacked {
		t.Errorf("mode = %s, want stacked", inst.Mode())
	}
	ctrl := inst.Controls()
	if ctrl.CanNext() || ctrl.CanPrev() {
		t.Error("next/prev should be disabled with one panel")
	}
	if ctrl.Progress() != 0 || fr.Progress != 0 {
		t.Errorf("progress should stay 0, got %v / %v", ctrl.Progress(), fr.Progress)
	}
	if fr.Pinned || !inst.Region().Degenerate() {
		t.Error("no pinning should be active")
	}
	ctrl.Jump(0)
	if inst.Animating() {
		t.Error("jump should be ignored with one panel")
	}
}

func TestZeroPanels(t *testing.T) {
	inst, _, clock := newScenario(0)
	fr := inst.Frame(clock.advance(time.Millisecond))
	if inst.Mode() != model.ModeStacked {
		t.Errorf("mode = %s, want stacked", inst.Mode())
	}
	if fr.Total != 0 || len(fr.Panels) != 0 {
		t.Errorf("unexpected frame %+v", fr)
	}
	inst.Controls().Next()
	inst.Controls().Prev()
}

func TestDeterminism_JumpVersusDirectScroll(t *testing.T) {
	jumped, _, jClock := newScenario(4)
	jumped.Controls().Jump(2)
	viaJump := settle(jumped, jClock)

	direct, dHost, dClock := newScenario(4)
	viaScroll := scrollTo(direct, dHost, dClock, JumpTarget(direct.Region(), 2, 4))

	if !reflect.DeepEqual(viaJump, viaScroll) {
		t.Errorf("frames differ:\njump:   %+v\nscroll: %+v", viaJump, viaScroll)
	}
}

func TestDeterminism_ReturningToOffset(t *testing.T) {
	inst, host, clock := newScenario(4)
	start := inst.Region().Start
	a := scrollTo(inst, host, clock, start+777)
	scrollTo(inst, host, clock, start+2900)
	scrollTo(inst, host, clock, 0)
	b := scrollTo(inst, host, clock, start+777)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same offset produced different frames:\n%+v\n%+v", a, b)
	}
}

func TestJump_NewerRequestWins(t *testing.T) {
	inst, _, clock := newScenario(4)
	ctrl := inst.Controls()

	ctrl.Jump(3)
	inst.Frame(clock.advance(100 * time.Millisecond))
	gen := inst.smooth.Generation()
	ctrl.Jump(1)
	if inst.smooth.Generation() == gen {
		t.Fatal("second jump should start a new generation")
	}
	fr := settle(inst, clock)
	if fr.ActiveIndex != 1 {
		t.Errorf("settled on %d, want 1", fr.ActiveIndex)
	}
}

func TestJump_CancelledByUserScroll(t *testing.T) {
	inst, host, clock := newScenario(4)
	inst.Controls().Jump(3)
	inst.Frame(clock.advance(50 * time.Millisecond))

	fr := scrollTo(inst, host, clock, inst.Region().Start+100)
	if inst.Animating() {
		t.Fatal("user scroll should cancel the jump")
	}
	settled := settle(inst, clock)
	if settled.ScrollOffset != fr.ScrollOffset || settled.ActiveIndex != 0 {
		t.Errorf("stale jump target applied: %+v", settled)
	}
}

func TestFrame_CoalescesScrollEvents(t *testing.T) {
	inst, host, clock := newScenario(4)
	before := host.requests
	for i := 0; i < 10; i++ {
		host.offset = float64(300 + i*10)
		inst.Scroll()
	}
	if host.requests != before+1 {
		t.Errorf("expected one frame request for 10 scrolls, got %d", host.requests-before)
	}

	published := 0
	inst.cfg.onFrame = func(Frame) { published++ }
	inst.Frame(clock.advance(16 * time.Millisecond))
	inst.Frame(clock.advance(16 * time.Millisecond))
	if published != 1 {
		t.Errorf("expected one published frame, got %d", published)
	}
	if inst.Last().ScrollOffset != 390 {
		t.Errorf("frame should use the latest offset, got %v", inst.Last().ScrollOffset)
	}
}

func TestResize_RecomputesTravel(t *testing.T) {
	inst, host, clock := newScenario(4)
	scrollTo(inst, host, clock, inst.Region().Start+1500)

	host.vp = Viewport{Width: 800, Height: 600}
	inst.Resize()
	fr := inst.Frame(clock.advance(16 * time.Millisecond))

	if got := inst.Region().Travel(); got != 2400 {
		t.Errorf("travel after resize = %v, want 2400", got)
	}
	if fr.Progress != 1500.0/2400 {
		t.Errorf("progress after resize = %v", fr.Progress)
	}
}

func TestResize_RetargetsJumpInFlight(t *testing.T) {
	inst, host, clock := newScenario(4)
	inst.Controls().Jump(2)
	inst.Frame(clock.advance(100 * time.Millisecond))
	if !inst.Animating() {
		t.Fatal("jump should still be animating")
	}

	host.vp = Viewport{Width: 800, Height: 600}
	inst.Resize()
	fr := settle(inst, clock)

	want := JumpTarget(inst.Region(), 2, 4)
	if fr.ScrollOffset != want || fr.ActiveIndex != 2 {
		t.Errorf("settled at offset %v index %d, want %v index 2", fr.ScrollOffset, fr.ActiveIndex, want)
	}
	if want != 1800 {
		t.Errorf("target after resize = %v, want 1800", want)
	}
}

func TestSetPanels_RetargetsJumpToClampedIndex(t *testing.T) {
	inst, _, clock := newScenario(5)
	inst.Controls().Jump(4)
	inst.Frame(clock.advance(100 * time.Millisecond))

	inst.SetPanels(makePanels(3))
	fr := settle(inst, clock)
	if fr.ScrollOffset != inst.Region().End || fr.ActiveIndex != 2 {
		t.Errorf("settled at offset %v index %d, want end %v index 2", fr.ScrollOffset, fr.ActiveIndex, inst.Region().End)
	}
}

func TestResize_StaleMetricsClamp(t *testing.T) {
	inst, host, clock := newScenario(4)
	scrollTo(inst, host, clock, inst.Region().End)

	host.trackWidth = 2000 // content shrank; old offset is now beyond the region
	inst.Resize()
	fr := inst.Frame(clock.advance(16 * time.Millisecond))
	if fr.Progress != 1 || fr.ActiveIndex != 3 {
		t.Errorf("expected clamped progress 1 / index 3, got %v / %d", fr.Progress, fr.ActiveIndex)
	}
	if fr.TrackOffset != -1000 {
		t.Errorf("track offset = %v, want -1000", fr.TrackOffset)
	}
}

func TestModeIdempotence(t *testing.T) {
	inst, host, _ := newScenario(4)
	l := host.Measure(inst.panels, host.vp)

	if inst.modes.Activate(model.ModePinned, l, host.vp) {
		t.Error("re-activating pinned should be a no-op")
	}
	if inst.ListenerCount(EventScroll) != 1 || inst.ListenerCount(EventResize) != 1 {
		t.Errorf("listeners: scroll=%d resize=%d, want 1/1",
			inst.ListenerCount(EventScroll), inst.ListenerCount(EventResize))
	}
}

func TestModeThrash_NoDuplicateListeners(t *testing.T) {
	inst, host, clock := newScenario(4)
	widths := []float64{500, 1000, 700, 1200, 300, 300, 1000, 1000}
	switches := inst.modes.Switches()
	for _, w := range widths {
		host.vp.Width = w
		inst.Resize()
		inst.Frame(clock.advance(time.Millisecond))
		if inst.ListenerCount(EventScroll) != 1 || inst.ListenerCount(EventResize) != 1 {
			t.Fatalf("width %v: scroll=%d resize=%d", w,
				inst.ListenerCount(EventScroll), inst.ListenerCount(EventResize))
		}
		owners := inst.events.Owners()
		if len(owners) != 1 || owners[0] != inst.Mode().String() {
			t.Fatalf("width %v: owners %v for mode %s", w, owners, inst.Mode())
		}
	}
	// 1000 after 1000 and 300 after 300 keep the active strategy
	if got := inst.modes.Switches() - switches; got != 6 {
		t.Errorf("mode switches = %d, want 6", got)
	}
}

func TestModeSwitch_CancelsJump(t *testing.T) {
	inst, host, clock := newScenario(4)
	inst.Controls().Jump(3)
	inst.Frame(clock.advance(50 * time.Millisecond))

	host.vp.Width = 500
	inst.Resize()
	if inst.Animating() {
		t.Error("leaving pinned mode should cancel the jump")
	}
	if inst.Controls().CanNext() {
		t.Error("controls should be disabled in stacked mode")
	}
}

func TestStacked_RevealFadesInOnce(t *testing.T) {
	host := &fakeHost{vp: Viewport{Width: 60, Height: 20}}
	clock := newFakeClock()
	inst := New(host, makePanels(4), WithClock(clock.Now), WithReveal(0.8, 700*time.Millisecond, 2))

	fr := inst.Frame(clock.now)
	if inst.Mode() != model.ModeStacked {
		t.Fatalf("mode = %s", inst.Mode())
	}
	if fr.Panels[0].Opacity != 0 || fr.Panels[0].TranslateY != 2 {
		t.Errorf("panel 0 should start its reveal, got %+v", fr.Panels[0])
	}
	if fr.TrackOffset != 0 || fr.Pinned {
		t.Error("stacked mode must not translate or pin")
	}

	fr = inst.Frame(clock.advance(700 * time.Millisecond))
	if fr.Panels[0].Opacity != 1 || fr.Panels[0].TranslateY != 0 {
		t.Errorf("panel 0 should be fully revealed, got %+v", fr.Panels[0])
	}
	if fr.Panels[1].Opacity != 0 {
		t.Errorf("panel 1 is below the fold, got %+v", fr.Panels[1])
	}

	host.offset = 10 // line at 26 reaches panel 1 (top 20)
	inst.UserScroll()
	inst.Frame(clock.advance(16 * time.Millisecond))
	fr = inst.Frame(clock.advance(time.Second))
	if fr.Panels[1].Opacity != 1 {
		t.Errorf("panel 1 should be revealed, got %+v", fr.Panels[1])
	}

	host.offset = 0
	inst.UserScroll()
	fr = inst.Frame(clock.advance(16 * time.Millisecond))
	if fr.Panels[1].Opacity != 1 {
		t.Error("reveal should not replay when scrolling back")
	}
}

func TestMissingImageIsSkipped(t *testing.T) {
	host := &fakeHost{vp: Viewport{Width: 1000, Height: 600}}
	clock := newFakeClock()
	panels := makePanels(3)
	panels[1].ImageRef = ""
	inst := New(host, panels, WithClock(clock.Now))

	fr := scrollTo(inst, host, clock, 1000)
	if fr.Panels[1].HasImage || fr.Panels[1].ImageOffset != 0 {
		t.Errorf("panel without image should have no offset: %+v", fr.Panels[1])
	}
	if !fr.Panels[0].HasImage || !fr.Panels[2].HasImage {
		t.Error("panels with images should report HasImage")
	}
	if fr.ActiveIndex != 1 || fr.Total != 3 {
		t.Errorf("imageless panel still participates: index %d total %d", fr.ActiveIndex, fr.Total)
	}
}

func TestClose_DisposesEverything(t *testing.T) {
	inst, _, clock := newScenario(4)
	inst.Controls().Jump(2)
	inst.Close()

	if inst.ListenerCount(EventScroll) != 0 || inst.ListenerCount(EventResize) != 0 {
		t.Error("Close should remove all listeners")
	}
	if inst.Animating() {
		t.Error("Close should cancel the jump")
	}
	last := inst.Last()
	inst.Scroll()
	inst.Resize()
	if fr := inst.Frame(clock.advance(time.Second)); !reflect.DeepEqual(fr, last) {
		t.Error("closed instance should not publish new frames")
	}
}

func TestNew_ClonesPanels(t *testing.T) {
	panels := makePanels(2)
	host := &fakeHost{vp: Viewport{Width: 1000, Height: 600}}
	inst := New(host, panels)
	panels[0].Title = "changed"
	if inst.Panels()[0].Title == "changed" {
		t.Error("instance should keep its own snapshot")
	}
}
