package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningValidates(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("Default tuning must validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero tick rate", func(c *Tuning) { c.TickRate = 0 }},
		{"smoothing too high", func(c *Tuning) { c.Smoothing = 1 }},
		{"weights off", func(c *Tuning) { c.BaseWeight = 0.5 }},
		{"negative gaze distance", func(c *Tuning) { c.MaxGazeDistance = -1 }},
	}

	for _, tc := range cases {
		cfg := DefaultTuning()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadTuningPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("smoothing: 0.1\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning failed: %v", err)
	}
	if cfg.Smoothing != 0.1 {
		t.Errorf("Expected smoothing override 0.1, got %v", cfg.Smoothing)
	}
	if cfg.TickRate != DefaultTickRate {
		t.Errorf("Expected untouched fields to keep defaults, got %v", cfg.TickRate)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	os.WriteFile(path, []byte("base_weight: 0.9\n"), 0o600)

	if _, err := LoadTuning(path); err == nil {
		t.Error("Expected error for weights not summing to 1.0")
	}
}
