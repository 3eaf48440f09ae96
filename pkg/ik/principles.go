package ik

import (
	"github.com/visagelabs/go-visage/pkg/rig"
)

// Classic animation principles applied procedurally on discrete events.
// These are pure functions over rig state, independent of the layer blend
// pipeline; gesture and expression triggers invoke them explicitly.

// followThroughLimit bounds accumulated position offsets in rig units.
const followThroughLimit = 50.0

// ApplyAnticipation offsets the head position opposite the upcoming
// motion direction, winding up before a move.
func ApplyAnticipation(r *rig.Rig, direction rig.Vec2, amount float64) {
	head := r.Bone(rig.BoneHead)
	if head == nil {
		return
	}

	offset := direction.Normalized().Scale(-clampAbs(amount, followThroughLimit))
	head.Position = head.Position.Add(offset)
}

// ApplyFollowThrough integrates a damped velocity into a bone's position.
// The accumulated offset from the bind pose is clamped to ±50 units on
// each axis so repeated impulses cannot fling a feature off the face.
func ApplyFollowThrough(r *rig.Rig, boneID string, velocity rig.Vec2, damping float64) {
	b := r.Bone(boneID)
	if b == nil {
		return
	}

	damping = clampAbs(damping, 1)
	next := b.Position.Add(velocity.Scale(damping))

	bind := b.BindPosition()
	b.Position = rig.Vec2{
		X: bind.X + clampAbs(next.X-bind.X, followThroughLimit),
		Y: bind.Y + clampAbs(next.Y-bind.Y, followThroughLimit),
	}
}

// exaggerationGain holds the per-bone scale and rotation responsiveness
// to exaggeration. Features exaggerate harder than the skull.
type exaggerationGain struct {
	scale    float64
	rotation float64
}

var exaggerationGains = map[string]exaggerationGain{
	rig.BoneRoot:     {scale: 0.05, rotation: 0.05},
	rig.BoneHead:     {scale: 0.15, rotation: 0.2},
	rig.BoneLeftEye:  {scale: 0.4, rotation: 0.1},
	rig.BoneRightEye: {scale: 0.4, rotation: 0.1},
	rig.BoneNose:     {scale: 0.2, rotation: 0.1},
	rig.BoneMouth:    {scale: 0.5, rotation: 0.3},
}

// ApplyExaggeration multiplicatively scales every bone's scale and
// rotation by (1 + factor·k), with component-specific gains k. Constraint
// clamping at the end of the tick bounds the result.
func ApplyExaggeration(r *rig.Rig, factor float64) {
	factor = clampAbs(factor, 1)

	for _, id := range r.BoneIDs() {
		b := r.Bone(id)
		gain, ok := exaggerationGains[id]
		if !ok {
			gain = exaggerationGain{scale: 0.1, rotation: 0.1}
		}
		b.Scale.X *= 1 + factor*gain.scale
		b.Scale.Y *= 1 + factor*gain.scale
		b.Rotation *= 1 + factor*gain.rotation
	}
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
