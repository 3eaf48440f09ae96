package pad

import (
	"math"
	"sync"
	"time"
)

// DefaultSmoothing is the per-tick smoothing factor at 60Hz. Convergence to
// within 1% of a held target takes about 3 seconds.
const DefaultSmoothing = 0.05

// State holds the live emotional state. Producers write targets and timed
// overrides from their own goroutines; only the animation tick advances the
// current value, so a tick always observes a consistent PAD triple.
type State struct {
	mu        sync.RWMutex
	current   Emotion
	target    Emotion
	smoothing float64

	override       Emotion
	overrideUntil  time.Time
	overrideActive bool
}

// NewState creates a neutral emotional state with the default smoothing.
func NewState() *State {
	return NewStateWithSmoothing(DefaultSmoothing)
}

// NewStateWithSmoothing creates a neutral state with a custom smoothing
// factor. Out-of-range factors fall back to the default.
func NewStateWithSmoothing(smoothing float64) *State {
	if smoothing <= 0 || smoothing >= 1 || math.IsNaN(smoothing) {
		smoothing = DefaultSmoothing
	}
	return &State{smoothing: smoothing}
}

// SetTarget stores a new interpolation target. The current value is not
// touched; it drifts toward the target on subsequent ticks. Non-finite
// components keep the last-known-good target component.
func (s *State) SetTarget(e Emotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = sanitize(e, s.target).Clamped()
}

// SetOverride supersedes the target for the given duration. While active,
// ticks smooth toward the override instead of the target; the override
// clears itself once expired.
func (s *State) SetOverride(e Emotion, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = sanitize(e, s.target).Clamped()
	s.overrideUntil = time.Now().Add(d)
	s.overrideActive = true
}

// ClearOverride drops any active override immediately.
func (s *State) ClearOverride() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrideActive = false
}

// Tick advances the current value one smoothing step toward the effective
// target (override when active, target otherwise) and expires the override.
func (s *State) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	effective := s.target
	if s.overrideActive {
		effective = s.override
	}

	s.current = s.current.Lerp(effective, s.smoothing).Clamped()

	if s.overrideActive && !now.Before(s.overrideUntil) {
		s.overrideActive = false
	}
}

// Current returns the live PAD value.
func (s *State) Current() Emotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Target returns the current interpolation target.
func (s *State) Target() Emotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

// OverrideActive reports whether a timed override is in effect.
func (s *State) OverrideActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrideActive
}

// sanitize replaces non-finite components with the matching component of
// the last-known-good value.
func sanitize(e, lastGood Emotion) Emotion {
	if !finite(e.Pleasure) {
		e.Pleasure = lastGood.Pleasure
	}
	if !finite(e.Arousal) {
		e.Arousal = lastGood.Arousal
	}
	if !finite(e.Dominance) {
		e.Dominance = lastGood.Dominance
	}
	return e
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
