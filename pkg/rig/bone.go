package rig

// Well-known bone ids for the face rig.
const (
	BoneRoot     = "root"
	BoneHead     = "head"
	BoneLeftEye  = "leftEye"
	BoneRightEye = "rightEye"
	BoneNose     = "nose"
	BoneMouth    = "mouth"
)

// Limit is a closed [Min, Max] range.
type Limit struct {
	Min float64
	Max float64
}

// Clamp forces v into the limit.
func (l Limit) Clamp(v float64) float64 {
	return clamp(v, l.Min, l.Max)
}

// Bone is one node in the rig's transform tree. Bones are created once at
// rig setup and mutated every tick by pose application; they are never
// destroyed during a session.
type Bone struct {
	ID       string
	ParentID string // empty for the root

	Position Vec2
	Rotation float64 // degrees
	Scale    Vec2

	// Squash and Stretch are deformation weights in [0,1] that trade
	// horizontal for vertical scale while approximately preserving area.
	Squash  float64
	Stretch float64

	RotationLimit Limit // degrees
	ScaleLimit    Limit // per-axis

	// bind pose, captured at rig construction
	bindPosition Vec2
	bindScale    Vec2
}

// squashStretchFactors returns the per-axis deformation multipliers.
// The coefficients bound extremes while keeping the silhouette area
// roughly constant under combined squash+stretch.
func (b *Bone) squashStretchFactors() (sx, sy float64) {
	sx = (1 + b.Squash*0.3) * (1 - b.Stretch*0.2)
	sy = (1 - b.Squash*0.3) * (1 + b.Stretch*0.4)
	return sx, sy
}

// localTransform composes the bone's deformation about its own position:
// translate(p) · rotate(θ) · scale(s·ss) · translate(−p).
func (b *Bone) localTransform() Affine {
	ssx, ssy := b.squashStretchFactors()
	t := Translation(b.Position)
	t = t.Mul(Rotation(b.Rotation))
	t = t.Mul(Scaling(b.Scale.X*ssx, b.Scale.Y*ssy))
	t = t.Mul(Translation(Vec2{-b.Position.X, -b.Position.Y}))
	return t
}

// BindPosition returns the position captured at rig construction.
func (b *Bone) BindPosition() Vec2 {
	return b.bindPosition
}

// BindScale returns the scale captured at rig construction.
func (b *Bone) BindScale() Vec2 {
	return b.bindScale
}
