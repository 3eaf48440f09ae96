// Package pad models a continuous emotional state on the
// Pleasure-Arousal-Dominance axes.
//
// The PAD representation places every emotion in a three-dimensional cube
// with each axis in [-1, 1]. Named presets act as interpolation targets;
// the State type smooths the live value toward a target each tick.
package pad

import "math"

// Emotion is a point in PAD space. All components live in [-1, 1].
type Emotion struct {
	Pleasure  float64 `json:"pleasure"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// Named presets used as interpolation targets.
var (
	Neutral   = Emotion{0, 0, 0}
	Happy     = Emotion{Pleasure: 0.8, Arousal: 0.5, Dominance: 0.4}
	Sad       = Emotion{Pleasure: -0.6, Arousal: -0.4, Dominance: -0.3}
	Angry     = Emotion{Pleasure: -0.5, Arousal: 0.7, Dominance: 0.6}
	Fearful   = Emotion{Pleasure: -0.6, Arousal: 0.6, Dominance: -0.7}
	Surprised = Emotion{Pleasure: 0.4, Arousal: 0.8, Dominance: -0.1}
	Bored     = Emotion{Pleasure: -0.4, Arousal: -0.6, Dominance: -0.2}
	Excited   = Emotion{Pleasure: 0.7, Arousal: 0.9, Dominance: 0.5}
	Relaxed   = Emotion{Pleasure: 0.6, Arousal: -0.5, Dominance: 0.3}
)

// Clamped returns the emotion with every component forced into [-1, 1].
// Non-finite components collapse to 0 so a bad sensor reading can never
// poison the state.
func (e Emotion) Clamped() Emotion {
	return Emotion{
		Pleasure:  clampComponent(e.Pleasure),
		Arousal:   clampComponent(e.Arousal),
		Dominance: clampComponent(e.Dominance),
	}
}

// Lerp interpolates component-wise toward target by factor t.
func (e Emotion) Lerp(target Emotion, t float64) Emotion {
	return Emotion{
		Pleasure:  e.Pleasure + (target.Pleasure-e.Pleasure)*t,
		Arousal:   e.Arousal + (target.Arousal-e.Arousal)*t,
		Dominance: e.Dominance + (target.Dominance-e.Dominance)*t,
	}
}

// DistanceTo returns the Euclidean distance between two PAD points.
func (e Emotion) DistanceTo(other Emotion) float64 {
	dp := e.Pleasure - other.Pleasure
	da := e.Arousal - other.Arousal
	dd := e.Dominance - other.Dominance
	return math.Sqrt(dp*dp + da*da + dd*dd)
}

func clampComponent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
