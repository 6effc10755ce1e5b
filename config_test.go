package reveal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPresetDoc = `
effects:
  hero:
    kind: fade-bottom-right
    duration: 0.8
    ease: out-cubic
    trigger: 0.4
  shake:
    kind: move-scroll-random
    radius: 30
    debounce: 150ms
  card:
    kind: perspective-card
    gateOnVisibility: true
`

func TestLoadPresets(t *testing.T) {
	p, err := LoadPresets([]byte(testPresetDoc))
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if len(p) != 3 {
		t.Fatalf("presets = %d, want 3", len(p))
	}

	hero := p["hero"]
	if hero.Kind != EffectFadeBottomRight {
		t.Errorf("hero kind = %s", hero.Kind)
	}
	if hero.Config.Duration != 0.8 || hero.Config.Ease != "out-cubic" || hero.Config.Trigger != 0.4 {
		t.Errorf("hero config = %+v", hero.Config)
	}

	shake := p["shake"]
	if shake.Kind != EffectMoveScrollRandom || shake.Config.Radius != 30 {
		t.Errorf("shake = %+v", shake)
	}
	if shake.Config.Debounce != 150*time.Millisecond {
		t.Errorf("shake debounce = %v, want 150ms", shake.Config.Debounce)
	}

	card := p["card"]
	if card.Config.GateOnVisibility == nil || !*card.Config.GateOnVisibility {
		t.Error("card gateOnVisibility should decode to true")
	}
}

func TestLoadPresetsErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		target  error
		message string
	}{
		{
			name:    "unknown kind",
			doc:     "effects:\n  a:\n    kind: wobble\n",
			target:  ErrUnknownEffect,
			message: "line 3",
		},
		{
			name:    "trigger out of range",
			doc:     "effects:\n  a:\n    kind: fade\n    trigger: 2\n",
			target:  ErrInvalidConfig,
			message: `preset "a"`,
		},
		{
			name:    "unknown ease",
			doc:     "effects:\n  a:\n    kind: fade\n    ease: bouncy\n",
			target:  ErrInvalidConfig,
			message: "bouncy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresets([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("error %v does not wrap %v", err, tt.target)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}

func TestLoadPresetsMalformed(t *testing.T) {
	if _, err := LoadPresets([]byte("effects: [1, 2")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadPresetsFile(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadPresetsFile(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if len(p) != 0 {
		t.Errorf("missing file presets = %d, want 0", len(p))
	}

	path := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(path, []byte(testPresetDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadPresetsFile(path)
	if err != nil {
		t.Fatalf("LoadPresetsFile: %v", err)
	}
	if len(p) != 3 {
		t.Errorf("presets = %d, want 3", len(p))
	}
}

func TestPresetsNames(t *testing.T) {
	p, err := LoadPresets([]byte(testPresetDoc))
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Join(p.Names(), ",")
	if got != "card,hero,shake" {
		t.Errorf("Names = %s", got)
	}
}

func TestPresetsMount(t *testing.T) {
	p, err := LoadPresets([]byte(testPresetDoc))
	if err != nil {
		t.Fatal(err)
	}
	s := newTestScene(800, 600)
	n := addBox(s, "n", 0, 0, 100, 100)

	e, err := p.Mount(s, n, "hero")
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if e.Kind() != EffectFadeBottomRight || e.Config().Duration != 0.8 {
		t.Errorf("mounted %s with %+v", e.Kind(), e.Config())
	}

	if _, err := p.Mount(s, n, "nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("unknown preset error = %v", err)
	}
	if len(s.Effects()) != 1 {
		t.Errorf("effects = %d, want 1", len(s.Effects()))
	}
}

func TestPresetsMarshalRoundTrip(t *testing.T) {
	p, err := LoadPresets([]byte(testPresetDoc))
	if err != nil {
		t.Fatal(err)
	}
	data, err := p.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "kind: move-scroll-random") {
		t.Errorf("kind not encoded by name:\n%s", data)
	}
	back, err := LoadPresets(data)
	if err != nil {
		t.Fatalf("reload: %v\n%s", err, data)
	}
	if back["shake"].Config.Debounce != 150*time.Millisecond {
		t.Errorf("debounce after round trip = %v", back["shake"].Config.Debounce)
	}
	if back["hero"].Kind != EffectFadeBottomRight {
		t.Errorf("hero kind after round trip = %s", back["hero"].Kind)
	}
}

func TestEffectKindMarshalYAMLInvalid(t *testing.T) {
	if _, err := EffectKind(200).MarshalYAML(); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("err = %v", err)
	}
}

func TestExamplePresetsFile(t *testing.T) {
	p, err := LoadPresetsFile(filepath.Join("examples", "presets", "presets.yaml"))
	if err != nil {
		t.Fatalf("LoadPresetsFile: %v", err)
	}
	if got := strings.Join(p.Names(), ","); got != "drift,hero,shake,tilt" {
		t.Fatalf("Names = %s", got)
	}
	// move-scroll-x is driven by radius alone.
	drift := p["drift"]
	if drift.Kind != EffectMoveScrollX || drift.Config.Radius != 80 || drift.Config.MaxTranslate != 0 {
		t.Errorf("drift = %+v", drift)
	}
}
