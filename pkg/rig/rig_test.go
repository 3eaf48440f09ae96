package rig

import (
	"errors"
	"math"
	"testing"
)

func TestNewFaceRig(t *testing.T) {
	r := NewFaceRig()

	ids := r.BoneIDs()
	if len(ids) != 6 {
		t.Fatalf("Expected 6 bones, got %d", len(ids))
	}

	if r.RootID() != BoneRoot {
		t.Errorf("Expected root id %q, got %q", BoneRoot, r.RootID())
	}

	// Parents must appear before children in traversal order.
	seen := make(map[string]bool)
	for _, id := range ids {
		if parent := r.Bone(id).ParentID; parent != "" && !seen[parent] {
			t.Errorf("Bone %s ordered before its parent %s", id, parent)
		}
		seen[id] = true
	}
}

func TestNewValidation(t *testing.T) {
	one := Vec2{1, 1}

	_, err := New([]*Bone{{ID: "a", ParentID: "b", Scale: one}})
	if !errors.Is(err, ErrNoRoot) {
		t.Errorf("Expected ErrNoRoot, got %v", err)
	}

	_, err = New([]*Bone{{ID: "a", Scale: one}, {ID: "b", Scale: one}})
	if !errors.Is(err, ErrMultipleRoots) {
		t.Errorf("Expected ErrMultipleRoots, got %v", err)
	}

	_, err = New([]*Bone{{ID: "a", Scale: one}, {ID: "b", ParentID: "ghost", Scale: one}})
	if !errors.Is(err, ErrMissingParent) {
		t.Errorf("Expected ErrMissingParent, got %v", err)
	}

	_, err = New([]*Bone{{ID: "a", Scale: one}, {ID: "a", Scale: one}})
	if !errors.Is(err, ErrDuplicateBone) {
		t.Errorf("Expected ErrDuplicateBone, got %v", err)
	}
}

func TestWorldTransformIdentityAtBind(t *testing.T) {
	r := NewFaceRig()

	// With no rotation, unit scale and no deformation, every bone's world
	// transform maps its own pivot to itself.
	for _, id := range r.BoneIDs() {
		b := r.Bone(id)
		got := r.WorldTransform(id).Apply(b.Position)
		if math.Abs(got.X-b.Position.X) > 1e-9 || math.Abs(got.Y-b.Position.Y) > 1e-9 {
			t.Errorf("Bone %s pivot moved at bind pose: %+v -> %+v", id, b.Position, got)
		}
	}
}

func TestWorldTransformInheritsParentRotation(t *testing.T) {
	r := NewFaceRig()

	// Rotate the head 90° about its pivot; the mouth pivot (0,-27) sits 7
	// units below the head pivot (0,-20) and should swing to its side.
	r.SetRotation(BoneHead, 90)

	world := r.WorldTransforms()
	mouth := r.Bone(BoneMouth)
	got := world[BoneMouth].Apply(mouth.Position)

	if math.Abs(got.X-7) > 1e-9 || math.Abs(got.Y-(-20)) > 1e-9 {
		t.Errorf("Expected mouth pivot at (7,-20) after 90° head turn, got (%f,%f)", got.X, got.Y)
	}
}

func TestSquashStretchPreservesArea(t *testing.T) {
	b := &Bone{Squash: 0.5, Stretch: 0.5}
	sx, sy := b.squashStretchFactors()

	// (1+0.15)(1-0.1) · (1-0.15)(1+0.2) ≈ 1.056 — bounded near unity.
	area := sx * sy
	if area < 0.9 || area > 1.15 {
		t.Errorf("Combined squash+stretch area drifted too far from 1: %f", area)
	}
}

func TestApplyConstraintsClampsRotation(t *testing.T) {
	r := NewFaceRig()
	r.SetRotation(BoneHead, 80)
	r.ApplyConstraints()

	if got := r.Bone(BoneHead).Rotation; got != 45 {
		t.Errorf("Expected head rotation clamped to 45, got %f", got)
	}
}

func TestApplyConstraintsVolumeCeiling(t *testing.T) {
	r := NewFaceRig()
	head := r.Bone(BoneHead)
	head.Scale = Vec2{1.3, 1.3} // volume 1.69 > 1.5

	r.ApplyConstraints()

	volume := head.Scale.X * head.Scale.Y
	if math.Abs(volume-1.5) > 1e-9 {
		t.Errorf("Expected volume rescaled to exactly 1.5, got %f", volume)
	}
	if math.Abs(head.Scale.X-head.Scale.Y) > 1e-9 {
		t.Errorf("Expected aspect ratio preserved, got (%f,%f)", head.Scale.X, head.Scale.Y)
	}
}

func TestSetRotationUnknownBoneIsNoop(t *testing.T) {
	r := NewFaceRig()
	r.SetRotation("antenna", 45) // must not panic

	if got := r.WorldTransform("antenna"); got != Identity() {
		t.Errorf("Expected identity transform for unknown bone, got %+v", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {180, 180}, {-180, 180}, {190, -170}, {-190, 170}, {540, 180}, {360, 0},
	}
	for _, c := range cases {
		if got := NormalizeAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestNormalizedDegenerate(t *testing.T) {
	v := Vec2{0, 0}.Normalized()
	if v.X != 1 || v.Y != 0 {
		t.Errorf("Expected epsilon-floor normalization to +X axis, got %+v", v)
	}
}
