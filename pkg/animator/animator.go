// Package animator orchestrates the fixed-rate animation tick for the
// face rig: advance the emotional state, produce the four layer poses,
// solve IK, blend, apply to bones and blend shapes, and enforce
// constraints — in that order, synchronously, with no I/O.
package animator

import (
	"math"
	"sync"
	"time"

	"github.com/visagelabs/go-visage/internal/log"
	"github.com/visagelabs/go-visage/pkg/ik"
	"github.com/visagelabs/go-visage/pkg/lipsync"
	"github.com/visagelabs/go-visage/pkg/pad"
	"github.com/visagelabs/go-visage/pkg/pose"
	"github.com/visagelabs/go-visage/pkg/rig"
)

// State is the animator's coarse activity state.
type State int

const (
	// StateIdle means only base and emotion layers are active.
	StateIdle State = iota

	// StateSpeaking means the lipsync layer is live.
	StateSpeaking

	// StateGesturing means a discrete gesture owns the gesture layer.
	StateGesturing

	// StateTransitioning means the reveal choreography is overriding.
	StateTransitioning
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpeaking:
		return "speaking"
	case StateGesturing:
		return "gesturing"
	case StateTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Snapshot is the immutable result of one tick: world transforms and
// blend-shape weights for a renderer, plus observer state.
type Snapshot struct {
	Bones  map[string]rig.Affine `json:"bones"`
	Shapes map[string]float64    `json:"shapes"`
	Pose   pose.Pose             `json:"pose"`
	State  string                `json:"state"`
	Tick   uint64                `json:"tick"`
}

// Animator drives the rig. It is the single logical owner of rig state;
// external producers only write into the emotion state, pose layers, IK
// targets and the lipsync driver, all of which carry their own locks.
type Animator struct {
	rig     *rig.Rig
	layers  *pose.Layers
	emotion *pad.State
	solver  *ik.Solver
	lips    *lipsync.Driver
	weights pose.Weights

	mu           sync.Mutex
	elapsed      float64
	gesture      Gesture
	gestureStart float64
	reveal       *Reveal
	tickCount    uint64
}

// New wires an animator over its collaborators.
func New(r *rig.Rig, layers *pose.Layers, emotion *pad.State, solver *ik.Solver, lips *lipsync.Driver, weights pose.Weights) *Animator {
	return &Animator{
		rig:     r,
		layers:  layers,
		emotion: emotion,
		solver:  solver,
		lips:    lips,
		weights: weights,
	}
}

// TriggerGesture starts a gesture, preempting any in-flight gesture or
// reveal choreography. Partial application of the preempted animation is
// fine; both only write pose fields. An aroused face exaggerates the
// gesture's onset; the constraint pass bounds the result.
func (a *Animator) TriggerGesture(g Gesture) {
	if g == nil {
		return
	}
	a.mu.Lock()
	a.gesture = g
	a.gestureStart = a.elapsed
	a.reveal = nil
	ik.ApplyExaggeration(a.rig, a.emotion.Current().Arousal*0.5)
	a.mu.Unlock()
	log.Debug("gesture triggered", "gesture", g.Name(), "duration", g.Duration())
}

// Impulse winds the head up against direction and lets it overshoot with
// follow-through, scaled by amount in rig units. Used for sharp external
// events such as an arousal spike.
func (a *Animator) Impulse(direction rig.Vec2, amount float64) {
	a.mu.Lock()
	ik.ApplyAnticipation(a.rig, direction, amount*0.5)
	ik.ApplyFollowThrough(a.rig, rig.BoneHead, direction.Scale(amount), 0.6)
	a.mu.Unlock()
}

// StartReveal begins the lock-to-life choreography.
func (a *Animator) StartReveal() {
	a.mu.Lock()
	a.reveal = NewReveal()
	a.mu.Unlock()
	log.Debug("reveal choreography started")
}

// State derives the current activity state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *Animator) stateLocked() State {
	switch {
	case a.reveal != nil:
		return StateTransitioning
	case a.gesture != nil:
		return StateGesturing
	case a.lips.Speaking():
		return StateSpeaking
	default:
		return StateIdle
	}
}

// Tick runs one animation frame. dt is the frame delta in seconds; now
// drives override expiry. The tick is synchronous and non-suspending.
func (a *Animator) Tick(dt float64, now time.Time) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	a.elapsed += dt
	a.tickCount++

	// Gather layer inputs.
	a.emotion.Tick(now)
	a.layers.Set(pose.LayerBase, basePose(a.elapsed))
	a.layers.Set(pose.LayerEmotion, emotionPose(a.emotion.Current()))
	a.layers.Set(pose.LayerLipsync, a.lips.Tick(dt))

	if a.gesture != nil {
		t := time.Duration((a.elapsed - a.gestureStart) * float64(time.Second))
		if a.gesture.IsComplete(t) {
			log.Debug("gesture completed", "gesture", a.gesture.Name())
			a.gesture = nil
			a.layers.Set(pose.LayerGesture, pose.Pose{})
		} else {
			a.layers.Set(pose.LayerGesture, a.gesture.Evaluate(t))
		}
	}

	// 1. Solve IK against external targets.
	headIK := a.solver.Solve(a.rig)

	// 2. Blend the four layers.
	blended := pose.BlendLayers(a.layers, a.weights)

	// 3. Choreography override, advanced by this same tick.
	if a.reveal != nil {
		blended = a.reveal.Apply(blended)
		if a.reveal.Advance(dt) {
			log.Debug("reveal choreography finished")
			a.reveal = nil
		}
	}

	// 4. Apply the pose: blend shapes plus direct head rotation. The
	// head angle composes the IK solution with the blended offsets so
	// flourishes ride on top of the pointed direction.
	a.rig.SetBlendShape(rig.ShapeEyeOpen, blended.EyeOpenness)
	a.rig.SetBlendShape(rig.ShapeEyeSquint, blended.EyeSquint)
	a.rig.SetBlendShape(rig.ShapeMouthSmile, blended.MouthSmile)
	a.rig.SetBlendShape(rig.ShapeMouthOpen, blended.MouthOpen)
	a.rig.SetBlendShape(rig.ShapeBrowRaise, blended.BrowRaise)
	a.rig.SetRotation(rig.BoneHead, headIK+blended.HeadRotation+blended.HeadTilt*0.5)

	// 5. Enforce constraints last.
	a.rig.ApplyConstraints()

	if a.tickCount%600 == 0 {
		log.Debug("animator heartbeat",
			"ticks", a.tickCount, "state", a.stateLocked().String(), "pad", a.emotion.Current())
	}

	return Snapshot{
		Bones:  a.rig.WorldTransforms(),
		Shapes: a.rig.BlendShapes(),
		Pose:   blended,
		State:  a.stateLocked().String(),
		Tick:   a.tickCount,
	}
}

// basePose is the idle breathing layer: a slow head-tilt cycle with a
// deterministic blink every few seconds.
func basePose(elapsed float64) pose.Pose {
	breath := math.Sin(2 * math.Pi * 0.3 * elapsed)

	// The sine hump runs 0→1→0 across the blink window, so openness dips
	// to zero mid-window and returns to fully open at both edges.
	openness := 1.0
	const blinkPeriod = 4.2
	if phase := math.Mod(elapsed, blinkPeriod); phase < 0.15 {
		openness = 1 - math.Abs(math.Sin(math.Pi*phase/0.15))
	}

	return pose.Pose{
		HeadTilt:    1.5 * breath,
		EyeOpenness: openness,
		MouthSmile:  0.1,
	}
}

// emotionPose maps the live PAD value to facial intent. Pleasure curves
// the mouth, arousal opens the eyes and lifts the brows, dominance
// steadies the head.
func emotionPose(e pad.Emotion) pose.Pose {
	return pose.Pose{
		MouthSmile:  clamp01(e.Pleasure),
		EyeSquint:   clamp01(-e.Pleasure * 0.5),
		EyeOpenness: clamp01(0.6 + e.Arousal*0.4),
		MouthOpen:   clamp01(e.Arousal * 0.3),
		BrowRaise:   clamp01(0.3 + e.Arousal*0.4 - e.Dominance*0.2),
		HeadTilt:    e.Pleasure*4 - e.Dominance*2,
	}
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
