// Package rig implements a hierarchical 2D bone rig with blend-shape
// driven deformation for a synthetic character's face.
//
// The rig is a tree of named bones (root → head → eyes/nose/mouth). Each
// bone carries position, rotation, scale and squash/stretch deformation;
// blend-shape weights deterministically rewrite bone fields. World
// transforms pivot each bone's deformation about its own position and
// concatenate down the tree.
package rig

import (
	"fmt"
	"math"

	"github.com/visagelabs/go-visage/internal/log"
)

// Rig owns the bone tree and the blend-shape weight map. It is not safe
// for concurrent mutation; a single animation tick owns it (the pose
// layers are the concurrent write surface, not the rig).
type Rig struct {
	bones  map[string]*Bone
	order  []string // parents strictly before children
	rootID string
	shapes map[string]float64
}

// New builds a rig from a bone list and validates the tree: exactly one
// root, every parent resolvable, no cycles.
func New(bones []*Bone) (*Rig, error) {
	r := &Rig{
		bones:  make(map[string]*Bone, len(bones)),
		shapes: make(map[string]float64, len(shapeNames)),
	}

	for _, b := range bones {
		if _, exists := r.bones[b.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBone, b.ID)
		}
		b.bindPosition = b.Position
		b.bindScale = b.Scale
		r.bones[b.ID] = b

		if b.ParentID == "" {
			if r.rootID != "" {
				return nil, fmt.Errorf("%w: %s and %s", ErrMultipleRoots, r.rootID, b.ID)
			}
			r.rootID = b.ID
		}
	}

	if r.rootID == "" {
		return nil, ErrNoRoot
	}

	for _, b := range r.bones {
		if b.ParentID == "" {
			continue
		}
		if _, ok := r.bones[b.ParentID]; !ok {
			return nil, fmt.Errorf("%w: bone %s references %s", ErrMissingParent, b.ID, b.ParentID)
		}
	}

	order, err := r.topoSort()
	if err != nil {
		return nil, err
	}
	r.order = order

	for _, name := range shapeNames {
		r.shapes[name] = 0
	}

	return r, nil
}

// NewFaceRig builds the standard face rig:
// root → head → {leftEye, rightEye, nose, mouth}.
// Bone positions are deformation pivots in rig space.
func NewFaceRig() *Rig {
	one := Vec2{1, 1}
	bones := []*Bone{
		{
			ID: BoneRoot, Position: Vec2{0, 0}, Scale: one,
			RotationLimit: Limit{-15, 15}, ScaleLimit: Limit{0.5, 1.5},
		},
		{
			ID: BoneHead, ParentID: BoneRoot, Position: Vec2{0, -20}, Scale: one,
			RotationLimit: Limit{-45, 45}, ScaleLimit: Limit{0.5, 1.4},
		},
		{
			ID: BoneLeftEye, ParentID: BoneHead, Position: Vec2{-8, -14}, Scale: one,
			RotationLimit: Limit{-30, 30}, ScaleLimit: Limit{0.05, 1.5},
		},
		{
			ID: BoneRightEye, ParentID: BoneHead, Position: Vec2{8, -14}, Scale: one,
			RotationLimit: Limit{-30, 30}, ScaleLimit: Limit{0.05, 1.5},
		},
		{
			ID: BoneNose, ParentID: BoneHead, Position: Vec2{0, -20}, Scale: one,
			RotationLimit: Limit{-10, 10}, ScaleLimit: Limit{0.6, 1.3},
		},
		{
			ID: BoneMouth, ParentID: BoneHead, Position: Vec2{0, -27}, Scale: one,
			RotationLimit: Limit{-20, 20}, ScaleLimit: Limit{0.2, 1.8},
		},
	}

	r, err := New(bones)
	if err != nil {
		// The built-in bone table is static; a validation failure here is
		// a programming error, not a runtime condition.
		panic(err)
	}
	return r
}

// topoSort orders bone ids parents-first and detects cycles.
func (r *Rig) topoSort() ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	state := make(map[string]int, len(r.bones))
	order := make([]string, 0, len(r.bones))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: at bone %s", ErrCycle, id)
		}
		state[id] = visiting
		if parent := r.bones[id].ParentID; parent != "" {
			if err := visit(parent); err != nil {
				return err
			}
		}
		state[id] = done
		order = append(order, id)
		return nil
	}

	for id := range r.bones {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Bone returns the named bone, or nil if it does not exist.
func (r *Rig) Bone(id string) *Bone {
	return r.bones[id]
}

// RootID returns the id of the root bone.
func (r *Rig) RootID() string {
	return r.rootID
}

// BoneIDs returns all bone ids, parents before children.
func (r *Rig) BoneIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// SetRotation writes a bone rotation in degrees. Unknown bone ids are
// no-ops; non-finite values keep the previous rotation.
func (r *Rig) SetRotation(id string, degrees float64) {
	b := r.bones[id]
	if b == nil {
		log.Debug("rig: rotation for unknown bone", "bone", id)
		return
	}
	if !finite(degrees) {
		return
	}
	b.Rotation = NormalizeAngle(degrees)
}

// WorldTransform returns the bone's transform concatenated through its
// parent chain. The root's parent transform is the identity. Unknown ids
// return the identity.
func (r *Rig) WorldTransform(id string) Affine {
	b := r.bones[id]
	if b == nil {
		log.Debug("rig: world transform for unknown bone", "bone", id)
		return Identity()
	}
	if b.ParentID == "" {
		return b.localTransform()
	}
	return r.WorldTransform(b.ParentID).Mul(b.localTransform())
}

// WorldTransforms computes every bone's world transform in one pass.
func (r *Rig) WorldTransforms() map[string]Affine {
	world := make(map[string]Affine, len(r.order))
	for _, id := range r.order {
		b := r.bones[id]
		local := b.localTransform()
		if b.ParentID == "" {
			world[id] = local
		} else {
			world[id] = world[b.ParentID].Mul(local)
		}
	}
	return world
}

// ApplyConstraints clamps every bone to its configured rotation and scale
// limits, then enforces the volume-preservation ceiling: if
// scale.x·scale.y exceeds 1.5 both axes are rescaled by sqrt(1.5/volume),
// preserving aspect ratio.
func (r *Rig) ApplyConstraints() {
	for _, b := range r.bones {
		b.Rotation = b.RotationLimit.Clamp(b.Rotation)
		b.Scale.X = b.ScaleLimit.Clamp(b.Scale.X)
		b.Scale.Y = b.ScaleLimit.Clamp(b.Scale.Y)

		if volume := b.Scale.X * b.Scale.Y; volume > volumeCeiling {
			f := math.Sqrt(volumeCeiling / volume)
			b.Scale.X *= f
			b.Scale.Y *= f
		}

		b.Squash = clamp01(b.Squash)
		b.Stretch = clamp01(b.Stretch)
	}
}

// volumeCeiling bounds the product of a bone's scale axes.
const volumeCeiling = 1.5
