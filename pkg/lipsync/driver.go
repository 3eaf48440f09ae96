// Package lipsync turns speech audio levels into mouth and head motion.
//
// A smoothed envelope follows the reported audio level while the speech
// pipeline says the character is talking; low-frequency sine oscillators
// add the gentle head sway of a speaking face. The produced pose feeds
// the lipsync layer of the blender.
package lipsync

import (
	"math"
	"sync"

	"github.com/visagelabs/go-visage/pkg/pose"
)

// Tunable parameters.
const (
	// EnvFollowGain smooths the envelope toward the current level.
	EnvFollowGain = 0.65

	// Release decay per second once speech stops.
	releasePerSecond = 6.0

	// Sway oscillator frequencies (Hz) — deliberately unrelated so the
	// motion never visibly loops.
	swayFreqRotation = 0.6
	swayFreqTilt     = 1.3

	// Sway amplitudes in degrees at full envelope.
	swayAmpRotation = 7.5
	swayAmpTilt     = 2.25

	// Fixed starting phases keep the motion deterministic.
	phaseRotation = 2.1
	phaseTilt     = 4.2
)

// Driver consumes SetSpeaking/SetLevel writes from the speech pipeline
// and produces the lipsync layer pose each tick.
type Driver struct {
	mu       sync.Mutex
	speaking bool
	level    float64
	env      float64
	t        float64
}

// NewDriver creates an idle driver.
func NewDriver() *Driver {
	return &Driver{}
}

// SetSpeaking flags whether the speech pipeline is producing audio.
func (d *Driver) SetSpeaking(speaking bool) {
	d.mu.Lock()
	d.speaking = speaking
	d.mu.Unlock()
}

// SetLevel reports the current audio level. Values are clamped to [0,1];
// non-finite input keeps the previous level.
func (d *Driver) SetLevel(level float64) {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return
	}
	d.mu.Lock()
	d.level = clamp01(level)
	d.mu.Unlock()
}

// Speaking reports the current speaking flag.
func (d *Driver) Speaking() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.speaking
}

// Tick advances the envelope by dt seconds and returns the lipsync pose.
func (d *Driver) Tick(dt float64) pose.Pose {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dt < 0 {
		dt = 0
	}
	d.t += dt

	if d.speaking {
		d.env += EnvFollowGain * (d.level - d.env)
	} else {
		d.env -= releasePerSecond * d.env * dt
	}
	d.env = clamp01(d.env)

	return pose.Pose{
		MouthOpen: d.env,
		HeadRotation: swayAmpRotation * d.env *
			math.Sin(2*math.Pi*swayFreqRotation*d.t+phaseRotation),
		HeadTilt: swayAmpTilt * d.env *
			math.Sin(2*math.Pi*swayFreqTilt*d.t+phaseTilt),
		EyeOpenness: 0.8 * d.env, // talking faces keep their eyes engaged
	}
}

// Reset clears all envelope state.
func (d *Driver) Reset() {
	d.mu.Lock()
	d.speaking = false
	d.level = 0
	d.env = 0
	d.t = 0
	d.mu.Unlock()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
