package history

import (
	"path/filepath"
	"testing"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoad(t *testing.T) {
	db := openTestDB(t)

	if _, ok, err := db.Load("/site/panels.yaml"); err != nil || ok {
		t.Fatalf("Expected no position yet, got ok=%v err=%v", ok, err)
	}

	if err := db.Save("/site/panels.yaml", "bank", model.NavigationState{ActiveIndex: 1, Progress: 0.5}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := db.Save("/site/panels.yaml", "corp", model.NavigationState{ActiveIndex: 2, Progress: 1}); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	pos, ok, err := db.Load("/site/panels.yaml")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if pos.PanelID != "corp" || pos.ActiveIndex != 2 || pos.Progress != 1 {
		t.Errorf("Unexpected position: %+v", pos)
	}
	if pos.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}
}

func TestForgetAndRecent(t *testing.T) {
	db := openTestDB(t)
	for _, src := range []string{"a", "b", "c"} {
		if err := db.Save(src, "", model.NavigationState{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Forget("b"); err != nil {
		t.Fatal(err)
	}
	recent, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(recent))
	}
	for _, p := range recent {
		if p.Source == "b" {
			t.Error("Forgotten source still listed")
		}
	}
}

func TestResumeIndex(t *testing.T) {
	panels := []model.PanelRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		name string
		pos  Position
		want int
	}{
		{"by id", Position{PanelID: "c", ActiveIndex: 0}, 2},
		{"id moved", Position{PanelID: "b", ActiveIndex: 2}, 1},
		{"unknown id falls back to index", Position{PanelID: "zz", ActiveIndex: 1}, 1},
		{"index clamped high", Position{ActiveIndex: 9}, 2},
		{"index clamped low", Position{ActiveIndex: -3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResumeIndex(tt.pos, panels); got != tt.want {
				t.Errorf("ResumeIndex = %d, want %d", got, tt.want)
			}
		})
	}
	if got := ResumeIndex(Position{ActiveIndex: 3}, nil); got != 0 {
		t.Errorf("ResumeIndex with no panels = %d", got)
	}
}
