package animator

import (
	"math"
	"time"

	"github.com/visagelabs/go-visage/pkg/pose"
)

// Gesture is a discrete, self-timed animation that owns the gesture pose
// layer while it plays. Gestures are procedural: each evaluates a pose
// from elapsed time alone, so preempting one mid-flight cannot corrupt
// rig state.
type Gesture interface {
	// Name identifies the gesture.
	Name() string

	// Duration is the total playback time.
	Duration() time.Duration

	// Evaluate returns the gesture-layer pose at elapsed time t.
	Evaluate(t time.Duration) pose.Pose

	// IsComplete reports whether the gesture has finished at time t.
	IsComplete(t time.Duration) bool
}

// timedGesture implements the common duration bookkeeping.
type timedGesture struct {
	name     string
	duration time.Duration
}

func (g timedGesture) Name() string            { return g.name }
func (g timedGesture) Duration() time.Duration { return g.duration }
func (g timedGesture) IsComplete(t time.Duration) bool {
	return t >= g.duration
}

// envelope ramps 0→1→0 over the gesture so it always hands the layer
// back at neutral.
func (g timedGesture) envelope(t time.Duration) float64 {
	if g.duration <= 0 {
		return 0
	}
	alpha := t.Seconds() / g.duration.Seconds()
	if alpha <= 0 || alpha >= 1 {
		return 0
	}
	return smoothstep(1 - math.Abs(2*alpha-1))
}

// NodGesture bobs the head vertically (tilt oscillation).
type NodGesture struct{ timedGesture }

// NewNodGesture creates a nod of the given duration.
func NewNodGesture(d time.Duration) *NodGesture {
	return &NodGesture{timedGesture{name: "nod", duration: d}}
}

// Evaluate returns the nod pose at time t.
func (g *NodGesture) Evaluate(t time.Duration) pose.Pose {
	env := g.envelope(t)
	return pose.Pose{
		HeadTilt:    12 * env * math.Sin(2*math.Pi*2.0*t.Seconds()),
		EyeOpenness: env * 0.8,
	}
}

// ShakeGesture swings the head side to side.
type ShakeGesture struct{ timedGesture }

// NewShakeGesture creates a head shake of the given duration.
func NewShakeGesture(d time.Duration) *ShakeGesture {
	return &ShakeGesture{timedGesture{name: "shake", duration: d}}
}

// Evaluate returns the shake pose at time t.
func (g *ShakeGesture) Evaluate(t time.Duration) pose.Pose {
	env := g.envelope(t)
	return pose.Pose{
		HeadRotation: 18 * env * math.Sin(2*math.Pi*2.5*t.Seconds()),
	}
}

// TiltGesture leans the head over with raised brows — the curious look.
type TiltGesture struct{ timedGesture }

// NewTiltGesture creates a curious tilt of the given duration.
func NewTiltGesture(d time.Duration) *TiltGesture {
	return &TiltGesture{timedGesture{name: "tilt", duration: d}}
}

// Evaluate returns the tilt pose at time t.
func (g *TiltGesture) Evaluate(t time.Duration) pose.Pose {
	env := g.envelope(t)
	return pose.Pose{
		HeadTilt:    15 * env,
		BrowRaise:   env,
		EyeOpenness: env,
	}
}

// BounceGesture is an excited full-face bounce.
type BounceGesture struct{ timedGesture }

// NewBounceGesture creates a bounce of the given duration.
func NewBounceGesture(d time.Duration) *BounceGesture {
	return &BounceGesture{timedGesture{name: "bounce", duration: d}}
}

// Evaluate returns the bounce pose at time t.
func (g *BounceGesture) Evaluate(t time.Duration) pose.Pose {
	env := g.envelope(t)
	wave := math.Abs(math.Sin(2 * math.Pi * 3.0 * t.Seconds()))
	return pose.Pose{
		MouthSmile:  env,
		MouthOpen:   0.4 * env * wave,
		EyeOpenness: env,
		BrowRaise:   0.6 * env * wave,
	}
}

// LookupGesture maps a gesture name to a fresh instance with its default
// duration. Unknown names return nil.
func LookupGesture(name string) Gesture {
	switch name {
	case "nod":
		return NewNodGesture(1200 * time.Millisecond)
	case "shake":
		return NewShakeGesture(1200 * time.Millisecond)
	case "tilt":
		return NewTiltGesture(1500 * time.Millisecond)
	case "bounce":
		return NewBounceGesture(1800 * time.Millisecond)
	default:
		return nil
	}
}

// smoothstep provides smooth easing (slow start/end).
func smoothstep(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
