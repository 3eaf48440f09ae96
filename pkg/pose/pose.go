// Package pose defines facial pose records and the fixed-weight layer
// blender that reconciles idle, emotional, speech and gesture animation.
//
// Four layers exist simultaneously, each written exclusively by one
// producer. The blender folds them into a single target pose every tick:
// rotational fields are weight-summed then wrapped into (-180°, 180°],
// bounded fields are weight-summed then clamped into [0,1].
package pose

import (
	"math"
	"sync"

	"github.com/visagelabs/go-visage/pkg/rig"
)

// Pose is one layer's animation intent for a single frame.
type Pose struct {
	HeadRotation float64 `json:"head_rotation"` // degrees
	HeadTilt     float64 `json:"head_tilt"`     // degrees
	EyeOpenness  float64 `json:"eye_openness"`  // [0,1]
	EyeSquint    float64 `json:"eye_squint"`    // [0,1]
	MouthSmile   float64 `json:"mouth_smile"`   // [0,1]
	MouthOpen    float64 `json:"mouth_open"`    // [0,1]
	BrowRaise    float64 `json:"brow_raise"`    // [0,1]
}

// Layer identifies one of the four pose layers.
type Layer int

const (
	LayerBase Layer = iota
	LayerEmotion
	LayerLipsync
	LayerGesture

	layerCount
)

// String returns the layer's producer name.
func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "base"
	case LayerEmotion:
		return "emotion"
	case LayerLipsync:
		return "lipsync"
	case LayerGesture:
		return "gesture"
	default:
		return "unknown"
	}
}

// Weights holds the per-layer blend weights. They must sum to 1.0.
type Weights struct {
	Base    float64
	Emotion float64
	Lipsync float64
	Gesture float64
}

// DefaultWeights returns the reference blend weights.
func DefaultWeights() Weights {
	return Weights{Base: 0.3, Emotion: 0.4, Lipsync: 0.2, Gesture: 0.1}
}

// Sum returns the total of all four weights. The terms are paired so the
// reference weights add up to exactly 1.0: left-to-right accumulation of
// 0.3+0.4+0.2+0.1 rounds to 0.9999999999999999, while (0.3+0.2) and
// (0.4+0.1) are both exactly 0.5.
func (w Weights) Sum() float64 {
	return (w.Base + w.Lipsync) + (w.Emotion + w.Gesture)
}

// Layers is the serialization boundary between concurrent producers and
// the animation tick. Producers write whole poses into their own slot;
// the tick snapshots all four at once, so it never observes a torn pose.
type Layers struct {
	mu    sync.RWMutex
	poses [layerCount]Pose
}

// NewLayers creates an empty layer set.
func NewLayers() *Layers {
	return &Layers{}
}

// Set replaces one layer's pose atomically. Unknown layers are ignored.
func (ls *Layers) Set(l Layer, p Pose) {
	if l < 0 || l >= layerCount {
		return
	}
	ls.mu.Lock()
	ls.poses[l] = p
	ls.mu.Unlock()
}

// Get returns one layer's current pose.
func (ls *Layers) Get(l Layer) Pose {
	if l < 0 || l >= layerCount {
		return Pose{}
	}
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.poses[l]
}

// Snapshot returns a consistent copy of all four layers.
func (ls *Layers) Snapshot() (base, emotion, lipsync, gesture Pose) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.poses[LayerBase], ls.poses[LayerEmotion], ls.poses[LayerLipsync], ls.poses[LayerGesture]
}

// Blend folds the four layers into one pose using the given weights.
func Blend(base, emotion, lipsync, gesture Pose, w Weights) Pose {
	angle := func(b, e, l, g float64) float64 {
		return rig.NormalizeAngle(b*w.Base + e*w.Emotion + l*w.Lipsync + g*w.Gesture)
	}
	bounded := func(b, e, l, g float64) float64 {
		return clamp01(b*w.Base + e*w.Emotion + l*w.Lipsync + g*w.Gesture)
	}

	return Pose{
		HeadRotation: angle(base.HeadRotation, emotion.HeadRotation, lipsync.HeadRotation, gesture.HeadRotation),
		HeadTilt:     angle(base.HeadTilt, emotion.HeadTilt, lipsync.HeadTilt, gesture.HeadTilt),
		EyeOpenness:  bounded(base.EyeOpenness, emotion.EyeOpenness, lipsync.EyeOpenness, gesture.EyeOpenness),
		EyeSquint:    bounded(base.EyeSquint, emotion.EyeSquint, lipsync.EyeSquint, gesture.EyeSquint),
		MouthSmile:   bounded(base.MouthSmile, emotion.MouthSmile, lipsync.MouthSmile, gesture.MouthSmile),
		MouthOpen:    bounded(base.MouthOpen, emotion.MouthOpen, lipsync.MouthOpen, gesture.MouthOpen),
		BrowRaise:    bounded(base.BrowRaise, emotion.BrowRaise, lipsync.BrowRaise, gesture.BrowRaise),
	}
}

// BlendLayers snapshots the layer set and blends it in one step.
func BlendLayers(ls *Layers, w Weights) Pose {
	base, emotion, lipsync, gesture := ls.Snapshot()
	return Blend(base, emotion, lipsync, gesture, w)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
