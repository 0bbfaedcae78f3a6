package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/rig"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Smoothing != 0.1 {
		t.Errorf("expected smoothing 0.1, got %f", cfg.Smoothing)
	}
	if cfg.Camera.Position != [3]float64{4, 4, 4} {
		t.Errorf("expected camera at (4,4,4), got %v", cfg.Camera.Position)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.yaml")
	data := []byte("smoothing: 0.2\nlimits:\n  elbow: 45\nconstraint: cone\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Smoothing != 0.2 {
		t.Errorf("expected smoothing 0.2, got %f", cfg.Smoothing)
	}
	if cfg.Limits.Elbow != 45 || cfg.Limits.Shoulder != DefaultShoulderDeg {
		t.Errorf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.Dimensions().Constraint != rig.ConstraintCone {
		t.Errorf("expected cone constraint, got %s", cfg.Dimensions().Constraint)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.yaml")
	cfg := GetPreset("stiff")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Limits != cfg.Limits || got.Smoothing != cfg.Smoothing {
		t.Errorf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero smoothing", "smoothing: 0\n"},
		{"zero epsilon", "epsilon: 0\n"},
		{"bad constraint", "constraint: ball\n"},
		{"bad rotator", "rotator: ik\n"},
		{"bad policy", "press_policy: toggle\n"},
		{"negative bone", "arm:\n  upper_length: -1\n"},
		{"wide limit", "limits:\n  shoulder: 270\n"},
		{"camera on target", "camera:\n  position: [0, 0, 0]\n"},
		{"malformed", "smoothing: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "arm.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rotator != animate.KindDelta {
		t.Errorf("expected delta rotator, got %s", cfg.Rotator)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
		if _, err := cfg.NewRotator(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestNewRotatorKinds(t *testing.T) {
	cfg := DefaultConfig()
	rot, err := cfg.NewRotator()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rot.(*animate.Controller); !ok {
		t.Errorf("expected raycast controller, got %T", rot)
	}

	cfg.Rotator = animate.KindDelta
	rot, err = cfg.NewRotator()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rot.(*animate.DeltaController); !ok {
		t.Errorf("expected delta controller, got %T", rot)
	}
}
