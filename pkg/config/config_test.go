package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Dicklesworthstone/panelnav/pkg/model"
	"github.com/Dicklesworthstone/panelnav/pkg/nav"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Nav.Breakpoint != 80 {
		t.Errorf("Expected breakpoint 80, got %d", cfg.Nav.Breakpoint)
	}
	if cfg.Parallax.Amplitude != 0.08 {
		t.Errorf("Expected amplitude 0.08, got %v", cfg.Parallax.Amplitude)
	}
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[nav]
breakpoint = 120
smooth_scroll = "250ms"

[parallax]
amplitude = 0.1

[content]
path = "site/panels.yaml"
watch = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Nav.Breakpoint != 120 {
		t.Errorf("breakpoint = %d, want 120", cfg.Nav.Breakpoint)
	}
	if cfg.Nav.SmoothScroll.Duration != 250*time.Millisecond {
		t.Errorf("smooth_scroll = %v", cfg.Nav.SmoothScroll)
	}
	if cfg.Parallax.Amplitude != 0.1 {
		t.Errorf("amplitude = %v", cfg.Parallax.Amplitude)
	}
	if cfg.Content.Path != "site/panels.yaml" || cfg.Content.Watch {
		t.Errorf("content = %+v", cfg.Content)
	}
	// untouched sections keep defaults
	if cfg.Scroll.Step != 6 {
		t.Errorf("scroll.step = %d, want default 6", cfg.Scroll.Step)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad duration", "[nav]\nsmooth_scroll = \"soon\"\n", "invalid duration"},
		{"bad breakpoint", "[nav]\nbreakpoint = 0\n", "nav.breakpoint"},
		{"bad amplitude", "[parallax]\namplitude = 0.9\n", "parallax.amplitude"},
		{"bad page step", "[scroll]\npage_step = 0\n", "scroll.page_step"},
		{"bad toml", "[nav\n", "decoding config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestValidate_DoesNotRewriteValues(t *testing.T) {
	cfg := Default()
	cfg.Scroll.PageStep = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative page_step")
	}
	if cfg.Scroll.PageStep != -1 {
		t.Errorf("Validate changed page_step to %d", cfg.Scroll.PageStep)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing explicit config")
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Nav.Breakpoint != 80 {
		t.Errorf("Expected defaults, got %+v", cfg.Nav)
	}
}

func TestPrint_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), `smooth_scroll = "600ms"`) {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}

func TestNavOptions(t *testing.T) {
	cfg := Default()
	cfg.Nav.Breakpoint = 120
	opts := cfg.NavOptions()
	if len(opts) != 4 {
		t.Fatalf("Expected 4 options, got %d", len(opts))
	}

	fr := nav.Snapshot([]model.PanelRecord{{Title: "a"}, {Title: "b"}}, nav.Viewport{Width: 100, Height: 20}, 0, 0, opts...)
	if fr.Mode != model.ModeStacked {
		t.Errorf("Expected stacked below a 120-column breakpoint, got %v", fr.Mode)
	}
}
