package model

import "testing"

func TestPanelRecord_Normalize(t *testing.T) {
	p := PanelRecord{Title: "Stamps"}.Normalize()

	if p.Theme != ThemeLight {
		t.Errorf("Expected default theme light, got %q", p.Theme)
	}
	if p.Features == nil {
		t.Fatal("Expected empty feature sequence, got nil")
	}
	if len(p.Features) != 0 {
		t.Errorf("Expected 0 features, got %d", len(p.Features))
	}
}

func TestTheme_OrDefault(t *testing.T) {
	tests := []struct {
		in   Theme
		want Theme
	}{
		{"", ThemeLight},
		{"light", ThemeLight},
		{"dark", ThemeDark},
		{"sepia", ThemeLight},
	}
	for _, tt := range tests {
		if got := tt.in.OrDefault(); got != tt.want {
			t.Errorf("Theme(%q).OrDefault() = %q, want %q", tt.in, got, tt.want)
		}
	}
	if !ThemeDark.IsDark() || ThemeLight.IsDark() {
		t.Error("IsDark mismatch")
	}
}

func TestPanelRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		panel   PanelRecord
		wantErr bool
	}{
		{"valid", PanelRecord{Title: "A", Theme: ThemeDark}, false},
		{"no theme is fine", PanelRecord{Title: "A"}, false},
		{"empty title", PanelRecord{Title: "  "}, true},
		{"bad theme", PanelRecord{Title: "A", Theme: "neon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.panel.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClonePanels_DeepCopy(t *testing.T) {
	src := []PanelRecord{{Title: "A", Features: []Feature{{Text: "one"}}}}
	out := ClonePanels(src)

	src[0].Features[0].Text = "mutated"
	if out[0].Features[0].Text != "one" {
		t.Errorf("Clone shares feature storage with source")
	}
	if out[0].Theme != ThemeLight {
		t.Errorf("Expected normalized theme, got %q", out[0].Theme)
	}
}

func TestPanelRecord_HasImage(t *testing.T) {
	if (PanelRecord{ImageRef: " "}).HasImage() {
		t.Error("Blank image ref should not count as an image")
	}
	if !(PanelRecord{ImageRef: "img/a.png"}).HasImage() {
		t.Error("Expected image")
	}
}

func TestMode_String(t *testing.T) {
	if ModePinned.String() != "pinned" || ModeStacked.String() != "stacked" {
		t.Errorf("unexpected mode names: %s %s", ModePinned, ModeStacked)
	}
}
