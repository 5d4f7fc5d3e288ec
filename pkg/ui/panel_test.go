package ui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

func TestGeometryFor(t *testing.T) {
	tests := []struct {
		width  int
		beside bool
	}{
		{40, false},
		{59, false},
		{60, true},
		{120, true},
	}
	for _, tt := range tests {
		g := geometryFor(tt.width)
		if g.Beside != tt.beside {
			t.Errorf("width %d: Beside = %v, want %v", tt.width, g.Beside, tt.beside)
		}
		if g.BoxWidth > g.SlotWidth {
			t.Errorf("width %d: box %d wider than slot %d", tt.width, g.BoxWidth, g.SlotWidth)
		}
	}
}

func TestImageLeft_ClampedToSlot(t *testing.T) {
	g := panelGeometry{SlotWidth: 30, BoxWidth: 24}
	if got := g.imageLeft(0); got != 3 {
		t.Errorf("centered left = %d, want 3", got)
	}
	if got := g.imageLeft(-1.6); got != 1 {
		t.Errorf("left at -1.6 = %d, want 1", got)
	}
	if got := g.imageLeft(100); got != 6 {
		t.Errorf("left clamped = %d, want 6", got)
	}
	if got := g.imageLeft(-100); got != 0 {
		t.Errorf("left clamped = %d, want 0", got)
	}
}

func TestTrackRows_TranslatesWindow(t *testing.T) {
	blocks := [][]string{
		{"AAAAA", "aaaaa"},
		{"BBBBB", "bbbbb"},
		{"CCCCC", "ccccc"},
	}
	get := func(i int) []string { return blocks[i] }

	tests := []struct {
		offset float64
		want   []string
	}{
		{0, []string{"AAAAA", "aaaaa"}},
		{-2, []string{"AAABB", "aaabb"}},
		{-5, []string{"BBBBB", "bbbbb"}},
		{-9.6, []string{"CCCCC", "ccccc"}},
		{-10, []string{"CCCCC", "ccccc"}},
		{-12, []string{"CCC  ", "ccc  "}},
	}
	for _, tt := range tests {
		got := trackRows(get, len(blocks), tt.offset, 5, 2)
		for y := range tt.want {
			if got[y] != tt.want[y] {
				t.Errorf("offset %v row %d = %q, want %q", tt.offset, y, got[y], tt.want[y])
			}
		}
	}
}

func TestFitBlock(t *testing.T) {
	rows := fitBlock("ab\nlonger line", 4, 3)
	want := []string{"ab  ", "long", "    "}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestPanelRenderer_PinnedBlockSize(t *testing.T) {
	r := newPanelRenderer(DefaultTheme(lipgloss.NewRenderer(io.Discard)))
	p := model.PanelRecord{
		Title:       "Corporate",
		Description: "Seals for **companies** with a long description that has to wrap.",
		Features:    []model.Feature{{Text: "Fast"}, {Text: "Registered"}},
		ImageRef:    "img/corp.png",
	}
	rows := r.pinned(p, nav.PanelFrame{HasImage: true, ImageOffset: 2}, 90, 20)
	if len(rows) != 20 {
		t.Fatalf("rows = %d, want 20", len(rows))
	}
	for i, row := range rows {
		if w := ansi.StringWidth(row); w != 90 {
			t.Errorf("row %d width = %d, want 90", i, w)
		}
	}
	joined := strings.Join(rows, "\n")
	if !strings.Contains(joined, "Corporate") || !strings.Contains(joined, "img/corp.png") {
		t.Error("panel block missing title or image placeholder")
	}
}

func TestPanelRenderer_StackedReveal(t *testing.T) {
	r := newPanelRenderer(DefaultTheme(lipgloss.NewRenderer(io.Discard)))
	p := model.PanelRecord{Title: "Seal", Features: []model.Feature{{Text: "Hand carved"}}}
	natural := r.naturalHeight(p, 40)

	hidden := r.stacked(p, nav.PanelFrame{Opacity: 0}, 40)
	if len(hidden) != natural {
		t.Errorf("hidden rows = %d, want %d", len(hidden), natural)
	}
	if strings.TrimSpace(strings.Join(hidden, "")) != "" {
		t.Error("unrevealed panel should render blank")
	}

	shown := r.stacked(p, nav.PanelFrame{Opacity: 1}, 40)
	if len(shown) != natural || !strings.Contains(strings.Join(shown, "\n"), "Seal") {
		t.Error("revealed panel should render at natural height")
	}

	rising := r.stacked(p, nav.PanelFrame{Opacity: 0.5, TranslateY: 1}, 40)
	if len(rising) != natural {
		t.Errorf("rising rows = %d, want %d", len(rising), natural)
	}
	if titleRow(rising) != titleRow(shown)+1 {
		t.Errorf("title row = %d, want %d", titleRow(rising), titleRow(shown)+1)
	}
}

func titleRow(rows []string) int {
	for i, r := range rows {
		if strings.Contains(r, "Seal") {
			return i
		}
	}
	return -1
}
