package animator

import (
	"math"

	"github.com/visagelabs/go-visage/pkg/pose"
)

// RevealPhase identifies one step of the lock-to-life choreography.
type RevealPhase int

const (
	// PhaseClosed holds the eyes shut.
	PhaseClosed RevealPhase = iota

	// PhaseScanning flutters the eyes and sweeps the head.
	PhaseScanning

	// PhaseOpen ramps back to normal blending.
	PhaseOpen
)

// Fixed phase durations in seconds.
const (
	closedDuration   = 0.5
	scanningDuration = 1.0
	openDuration     = 0.5
)

// String returns the phase name.
func (p RevealPhase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseScanning:
		return "scanning"
	case PhaseOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Reveal is the closed→scanning→open choreography played when the
// character wakes. It is an explicit phase machine advanced by the
// animation tick — no wall-clock callbacks — so its overrides always
// land in a consistent order with the rest of the pipeline. Aborting it
// at any point leaves the rig valid: it only rewrites pose fields.
type Reveal struct {
	elapsed float64
}

// NewReveal starts the choreography at the closed phase.
func NewReveal() *Reveal {
	return &Reveal{}
}

// Advance moves the internal clock forward by dt seconds and reports
// whether the choreography has finished.
func (r *Reveal) Advance(dt float64) bool {
	if dt > 0 {
		r.elapsed += dt
	}
	return r.Done()
}

// Done reports whether all phases have elapsed.
func (r *Reveal) Done() bool {
	return r.elapsed >= closedDuration+scanningDuration+openDuration
}

// Phase returns the current phase.
func (r *Reveal) Phase() RevealPhase {
	switch {
	case r.elapsed < closedDuration:
		return PhaseClosed
	case r.elapsed < closedDuration+scanningDuration:
		return PhaseScanning
	default:
		return PhaseOpen
	}
}

// Apply overrides the blended pose for the current phase: eye openness is
// choreographed through shut → flutter → ramp-open, and the scanning
// phase adds a bounded head-rotation flourish.
func (r *Reveal) Apply(blended pose.Pose) pose.Pose {
	switch r.Phase() {
	case PhaseClosed:
		blended.EyeOpenness = 0
		blended.EyeSquint = 0

	case PhaseScanning:
		t := (r.elapsed - closedDuration) / scanningDuration
		// Narrow flutter while the head sweeps one full arc.
		blended.EyeOpenness = 0.15 + 0.1*math.Abs(math.Sin(2*math.Pi*3*t))
		blended.HeadRotation = 20 * math.Sin(2*math.Pi*t)

	case PhaseOpen:
		t := (r.elapsed - closedDuration - scanningDuration) / openDuration
		// Ramp from the flutter level up to the blended target.
		blended.EyeOpenness = 0.15 + (blended.EyeOpenness-0.15)*smoothstep(t)
	}
	return blended
}
