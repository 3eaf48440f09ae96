// Package config provides configuration helpers for go-visage commands.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default daemon configuration.
const (
	DefaultPort     = "8420"
	DefaultDataDir  = ".visage"
	DefaultTickRate = 60.0
)

// Port returns the dashboard port from VISAGE_PORT env var.
// Falls back to the default if not set.
func Port() string {
	if p := os.Getenv("VISAGE_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// DataDir returns the data directory from VISAGE_DATA_DIR env var.
func DataDir() string {
	if d := os.Getenv("VISAGE_DATA_DIR"); d != "" {
		return d
	}
	return DefaultDataDir
}

// LogLevel returns the log level from VISAGE_LOG_LEVEL env var.
func LogLevel() string {
	if l := os.Getenv("VISAGE_LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}

// Tuning holds the empirically tuned animation constants. The reference
// values work well at 60Hz; they are deliberately not hard-coded in the
// engine so they can be adjusted per deployment.
type Tuning struct {
	// TickRate is the animation loop frequency in Hz.
	TickRate float64 `yaml:"tick_rate"`

	// Smoothing is the per-tick exponential smoothing factor for the
	// emotional state, in (0,1).
	Smoothing float64 `yaml:"smoothing"`

	// Layer blend weights. Must sum to 1.0.
	BaseWeight    float64 `yaml:"base_weight"`
	EmotionWeight float64 `yaml:"emotion_weight"`
	LipsyncWeight float64 `yaml:"lipsync_weight"`
	GestureWeight float64 `yaml:"gesture_weight"`

	// MaxGazeDistance is the gaze IK distance ceiling in rig units.
	MaxGazeDistance float64 `yaml:"max_gaze_distance"`
}

// DefaultTuning returns the reference tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		TickRate:        DefaultTickRate,
		Smoothing:       0.05,
		BaseWeight:      0.3,
		EmotionWeight:   0.4,
		LipsyncWeight:   0.2,
		GestureWeight:   0.1,
		MaxGazeDistance: 200,
	}
}

// LoadTuning reads a YAML tuning file. Missing fields keep their defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning file: %w", err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning file: %w", err)
	}

	if err := t.Validate(); err != nil {
		return DefaultTuning(), err
	}

	return t, nil
}

// Validate checks that tuned values are usable.
func (t Tuning) Validate() error {
	if t.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %v", t.TickRate)
	}
	if t.Smoothing <= 0 || t.Smoothing >= 1 {
		return fmt.Errorf("smoothing must be in (0,1), got %v", t.Smoothing)
	}
	sum := t.BaseWeight + t.EmotionWeight + t.LipsyncWeight + t.GestureWeight
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("layer weights must sum to 1.0, got %v", sum)
	}
	if t.MaxGazeDistance <= 0 {
		return fmt.Errorf("max_gaze_distance must be positive, got %v", t.MaxGazeDistance)
	}
	return nil
}
