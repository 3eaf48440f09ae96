package rig

import "github.com/visagelabs/go-visage/internal/log"

// Blend shape names. Each shape deterministically rewrites specific bone
// fields; the full rule table lives in applyShapes.
const (
	ShapeEyeOpen     = "eyeOpen"
	ShapeEyeClosed   = "eyeClosed"
	ShapeEyeSquint   = "eyeSquint"
	ShapeEyeWide     = "eyeWide"
	ShapeBlinkLeft   = "blinkLeft"
	ShapeBlinkRight  = "blinkRight"
	ShapeBrowRaise   = "browRaise"
	ShapeBrowFurrow  = "browFurrow"
	ShapeMouthSmile  = "mouthSmile"
	ShapeMouthFrown  = "mouthFrown"
	ShapeMouthOpen   = "mouthOpen"
	ShapeMouthPucker = "mouthPucker"
	ShapeMouthWide   = "mouthWide"
	ShapeNoseScrunch = "noseScrunch"
	ShapeCheekPuff   = "cheekPuff"
	ShapeJawDrop     = "jawDrop"
	ShapeHeadSquash  = "headSquash"
	ShapeHeadStretch = "headStretch"
)

var shapeNames = []string{
	ShapeEyeOpen, ShapeEyeClosed, ShapeEyeSquint, ShapeEyeWide,
	ShapeBlinkLeft, ShapeBlinkRight, ShapeBrowRaise, ShapeBrowFurrow,
	ShapeMouthSmile, ShapeMouthFrown, ShapeMouthOpen, ShapeMouthPucker,
	ShapeMouthWide, ShapeNoseScrunch, ShapeCheekPuff, ShapeJawDrop,
	ShapeHeadSquash, ShapeHeadStretch,
}

// ShapeNames returns the closed set of blend shape names.
func ShapeNames() []string {
	out := make([]string, len(shapeNames))
	copy(out, shapeNames)
	return out
}

// SetBlendShape stores a weight (clamped to [0,1]) and reapplies the shape
// rules. Unknown names are a no-op, not an error. The bone state is a pure
// function of the current weight map and the bind pose, so setting the
// same value twice leaves the rig unchanged.
func (r *Rig) SetBlendShape(name string, value float64) {
	if _, ok := r.shapes[name]; !ok {
		log.Debug("rig: unknown blend shape", "shape", name)
		return
	}
	if !finite(value) {
		return
	}
	r.shapes[name] = clamp01(value)
	r.applyShapes()
}

// BlendShape returns the current weight for a shape (0 for unknown names).
func (r *Rig) BlendShape(name string) float64 {
	return r.shapes[name]
}

// BlendShapes returns a copy of the weight map.
func (r *Rig) BlendShapes() map[string]float64 {
	out := make(map[string]float64, len(r.shapes))
	for k, v := range r.shapes {
		out[k] = v
	}
	return out
}

// applyShapes rewrites bone fields from the full weight map.
//
// Rule table (all weights in [0,1], bind pose as the base):
//
//	eyeOpen/eyeClosed  openness = clamp01(eyeOpen − eyeClosed);
//	                   eye scaleY = 0.1 + openness·0.9
//	blinkLeft/Right    per-eye openness multiplier (1 − blink)
//	eyeSquint          eye squash = eyeSquint·0.5
//	eyeWide            eye scaleX = 1 + eyeWide·0.2, eye stretch = eyeWide·0.3
//	browRaise          eyes shift up by browRaise·2 units
//	browFurrow         eyes shift toward nose by browFurrow·1.5
//	mouthSmile/Frown   mouth rotation = (smile − frown)·15°, scaleX factor 1 + smile·0.3
//	mouthOpen          mouth scaleY = 0.3 + open·0.7, mouth stretch = open·0.4
//	mouthPucker        mouth scaleX factor 1 − pucker·0.4, mouth squash = pucker·0.3
//	mouthWide          mouth scaleX factor 1 + wide·0.4
//	noseScrunch        nose squash = scrunch·0.6, nose shifts up by scrunch·1
//	cheekPuff          nose scaleX = 1 + puff·0.15
//	jawDrop            mouth shifts down by jaw·4
//	headSquash/Stretch head squash/stretch set directly
func (r *Rig) applyShapes() {
	s := r.shapes

	openness := clamp01(s[ShapeEyeOpen] - s[ShapeEyeClosed])

	browLift := s[ShapeBrowRaise] * 2
	furrow := s[ShapeBrowFurrow]

	if left := r.bones[BoneLeftEye]; left != nil {
		o := openness * (1 - s[ShapeBlinkLeft])
		left.Scale.Y = 0.1 + o*0.9
		left.Scale.X = left.bindScale.X * (1 + s[ShapeEyeWide]*0.2)
		left.Squash = s[ShapeEyeSquint] * 0.5
		left.Stretch = s[ShapeEyeWide] * 0.3
		// Rotation is left alone: the gaze IK solver owns that channel.
		left.Position.X = left.bindPosition.X + furrow*1.5
		left.Position.Y = left.bindPosition.Y + browLift
	}
	if right := r.bones[BoneRightEye]; right != nil {
		o := openness * (1 - s[ShapeBlinkRight])
		right.Scale.Y = 0.1 + o*0.9
		right.Scale.X = right.bindScale.X * (1 + s[ShapeEyeWide]*0.2)
		right.Squash = s[ShapeEyeSquint] * 0.5
		right.Stretch = s[ShapeEyeWide] * 0.3
		right.Position.X = right.bindPosition.X - furrow*1.5
		right.Position.Y = right.bindPosition.Y + browLift
	}

	if mouth := r.bones[BoneMouth]; mouth != nil {
		smile := s[ShapeMouthSmile]
		frown := s[ShapeMouthFrown]
		open := s[ShapeMouthOpen]

		mouth.Rotation = (smile - frown) * 15
		mouth.Scale.X = mouth.bindScale.X *
			(1 + smile*0.3) * (1 - s[ShapeMouthPucker]*0.4) * (1 + s[ShapeMouthWide]*0.4)
		mouth.Scale.Y = 0.3 + open*0.7
		mouth.Stretch = open * 0.4
		mouth.Squash = s[ShapeMouthPucker] * 0.3
		mouth.Position.Y = mouth.bindPosition.Y - s[ShapeJawDrop]*4
	}

	if nose := r.bones[BoneNose]; nose != nil {
		scrunch := s[ShapeNoseScrunch]
		nose.Squash = scrunch * 0.6
		nose.Position.Y = nose.bindPosition.Y + scrunch*1
		nose.Scale.X = nose.bindScale.X * (1 + s[ShapeCheekPuff]*0.15)
	}

	if head := r.bones[BoneHead]; head != nil {
		head.Squash = s[ShapeHeadSquash]
		head.Stretch = s[ShapeHeadStretch]
	}
}
