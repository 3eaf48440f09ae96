package ik

import (
	"math"
	"testing"

	"github.com/visagelabs/go-visage/pkg/rig"
)

func TestApplyAnticipation(t *testing.T) {
	r := rig.NewFaceRig()
	head := r.Bone(rig.BoneHead)
	startY := head.Position.Y

	// Winding up for an upward move pushes the head down first.
	ApplyAnticipation(r, rig.Vec2{X: 0, Y: 1}, 5)

	if got := head.Position.Y; math.Abs(got-(startY-5)) > 1e-9 {
		t.Errorf("Expected head offset opposite the motion, y=%f want %f", got, startY-5)
	}
}

func TestApplyFollowThroughClamped(t *testing.T) {
	r := rig.NewFaceRig()
	bind := r.Bone(rig.BoneMouth).BindPosition()

	// Repeated large impulses accumulate but saturate at ±50 units.
	for i := 0; i < 20; i++ {
		ApplyFollowThrough(r, rig.BoneMouth, rig.Vec2{X: 30, Y: -30}, 0.5)
	}

	pos := r.Bone(rig.BoneMouth).Position
	if math.Abs(pos.X-bind.X) > 50+1e-9 || math.Abs(pos.Y-bind.Y) > 50+1e-9 {
		t.Errorf("Follow-through escaped the ±50 clamp: %+v (bind %+v)", pos, bind)
	}
	if math.Abs(pos.X-(bind.X+50)) > 1e-9 {
		t.Errorf("Expected saturation at bind.X+50, got %f", pos.X)
	}
}

func TestApplyFollowThroughUnknownBone(t *testing.T) {
	r := rig.NewFaceRig()
	ApplyFollowThrough(r, "tail", rig.Vec2{X: 10, Y: 10}, 1) // must not panic
}

func TestApplyExaggeration(t *testing.T) {
	r := rig.NewFaceRig()
	r.SetRotation(rig.BoneMouth, 10)
	mouthBefore := *r.Bone(rig.BoneMouth)
	headBefore := *r.Bone(rig.BoneHead)

	ApplyExaggeration(r, 0.5)

	mouth := r.Bone(rig.BoneMouth)
	if math.Abs(mouth.Scale.X-mouthBefore.Scale.X*1.25) > 1e-9 {
		t.Errorf("Expected mouth scale ×1.25, got %f", mouth.Scale.X)
	}
	if math.Abs(mouth.Rotation-mouthBefore.Rotation*1.15) > 1e-9 {
		t.Errorf("Expected mouth rotation ×1.15, got %f", mouth.Rotation)
	}

	// Head exaggerates less than the mouth.
	head := r.Bone(rig.BoneHead)
	mouthGain := mouth.Scale.X / mouthBefore.Scale.X
	headGain := head.Scale.X / headBefore.Scale.X
	if headGain >= mouthGain {
		t.Errorf("Expected head gain (%f) below mouth gain (%f)", headGain, mouthGain)
	}
}

func TestApplyExaggerationDeterministic(t *testing.T) {
	a := rig.NewFaceRig()
	b := rig.NewFaceRig()

	ApplyExaggeration(a, 0.3)
	ApplyExaggeration(b, 0.3)

	for _, id := range a.BoneIDs() {
		if *a.Bone(id) != *b.Bone(id) {
			t.Errorf("Exaggeration not deterministic for bone %s", id)
		}
	}
}
