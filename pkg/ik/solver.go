// Package ik solves eye and head orientation toward 2D targets and hosts
// the procedural animation embellishments (anticipation, follow-through,
// exaggeration) that run on discrete events.
package ik

import (
	"math"
	"sync"

	"github.com/visagelabs/go-visage/pkg/rig"
)

const (
	// DefaultMaxGazeDistance is the gaze distance ceiling in rig units.
	DefaultMaxGazeDistance = 200.0

	// convergenceCeiling caps the binocular convergence factor.
	convergenceCeiling = 0.3

	// HeadYawLimit bounds the head IK solution in degrees.
	HeadYawLimit = 45.0
)

// Solver computes eye and head rotations that point at external targets.
// Targets are input slots written by upstream producers at arbitrary
// rates; Solve consumes them on the animation tick.
type Solver struct {
	mu          sync.RWMutex
	gazeTarget  rig.Vec2
	headTarget  rig.Vec2
	hasGaze     bool
	hasHead     bool
	maxDistance float64
}

// NewSolver creates a solver with the given gaze distance ceiling.
// Non-positive ceilings fall back to the default.
func NewSolver(maxGazeDistance float64) *Solver {
	if maxGazeDistance <= 0 || math.IsNaN(maxGazeDistance) {
		maxGazeDistance = DefaultMaxGazeDistance
	}
	return &Solver{maxDistance: maxGazeDistance}
}

// SetGazeTarget updates the gaze target in rig-local space.
func (s *Solver) SetGazeTarget(target rig.Vec2) {
	if !finiteVec(target) {
		return
	}
	s.mu.Lock()
	s.gazeTarget = target
	s.hasGaze = true
	s.mu.Unlock()
}

// SetHeadTarget updates the head-look target in rig-local space.
func (s *Solver) SetHeadTarget(target rig.Vec2) {
	if !finiteVec(target) {
		return
	}
	s.mu.Lock()
	s.headTarget = target
	s.hasHead = true
	s.mu.Unlock()
}

// ClearTargets drops both targets; subsequent solves leave rotations alone.
func (s *Solver) ClearTargets() {
	s.mu.Lock()
	s.hasGaze = false
	s.hasHead = false
	s.mu.Unlock()
}

// Solve runs gaze and head IK against the rig. Returns the solved head
// angle in degrees (0 when no head target is set).
func (s *Solver) Solve(r *rig.Rig) float64 {
	s.mu.RLock()
	gaze, hasGaze := s.gazeTarget, s.hasGaze
	head, hasHead := s.headTarget, s.hasHead
	maxDist := s.maxDistance
	s.mu.RUnlock()

	if hasGaze {
		solveGaze(r, gaze, maxDist)
	}
	if hasHead {
		return solveHead(r, head)
	}
	return 0
}

// solveGaze points both eyes at the target with a slight divergence that
// approximates binocular convergence: the factor grows with distance up
// to the ceiling, and each eye is offset by convergence·0.1 degrees.
func solveGaze(r *rig.Rig, target rig.Vec2, maxDistance float64) {
	head := r.Bone(rig.BoneHead)
	if head == nil {
		return
	}

	direction := target.Sub(head.Position)
	distance := direction.Length()

	var angle float64
	if distance < 1e-6 {
		// Degenerate target on the head pivot: epsilon-floor the
		// direction and define the angle as zero.
		angle = 0
	} else {
		angle = rig.Degrees(math.Atan2(direction.Y, direction.X))
	}

	clamped := math.Min(distance, maxDistance)
	convergence := math.Min(clamped/maxDistance, convergenceCeiling)

	r.SetRotation(rig.BoneLeftEye, angle-convergence*0.1)
	r.SetRotation(rig.BoneRightEye, angle+convergence*0.1)
}

// solveHead returns the head angle toward the target, clamped to the yaw
// limit. The rotation is not written here: the animator composes it with
// the blended pose before writing the head bone.
func solveHead(r *rig.Rig, target rig.Vec2) float64 {
	root := r.Bone(r.RootID())
	if root == nil {
		return 0
	}

	direction := target.Sub(root.Position)
	if direction.Length() < 1e-6 {
		return 0
	}

	angle := rig.Degrees(math.Atan2(direction.Y, direction.X))
	if angle > HeadYawLimit {
		angle = HeadYawLimit
	} else if angle < -HeadYawLimit {
		angle = -HeadYawLimit
	}
	return angle
}

func finiteVec(v rig.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
