// Package visage is the engine facade: one rig, one emotional state, one
// classifier and one animator wired together behind the small surface the
// surrounding pipelines call. Constructors are explicit; callers own the
// instance and its tick loop.
package visage

import (
	"fmt"
	"sync"
	"time"

	"github.com/visagelabs/go-visage/internal/config"
	"github.com/visagelabs/go-visage/internal/log"
	"github.com/visagelabs/go-visage/pkg/animator"
	"github.com/visagelabs/go-visage/pkg/ik"
	"github.com/visagelabs/go-visage/pkg/lipsync"
	"github.com/visagelabs/go-visage/pkg/pad"
	"github.com/visagelabs/go-visage/pkg/pose"
	"github.com/visagelabs/go-visage/pkg/rig"
	"github.com/visagelabs/go-visage/pkg/semantics"
)

// pulseOverrideDuration is how long a pushed emotion pulse pins the
// emotional target before smoothing resumes toward the standing target.
const pulseOverrideDuration = 2 * time.Second

// followThroughArousal is the arousal jump above which a pulse also kicks
// the head with anticipation and follow-through.
const followThroughArousal = 0.4

// Engine owns the full face stack. All input methods are safe to call
// concurrently with Tick; they only write into the producers' own slots.
type Engine struct {
	tuning     config.Tuning
	rig        *rig.Rig
	layers     *pose.Layers
	emotion    *pad.State
	solver     *ik.Solver
	lips       *lipsync.Driver
	anim       *animator.Animator
	classifier *semantics.Classifier

	mu       sync.RWMutex
	category semantics.Category
	variant  string
}

// New creates an engine with the reference tuning.
func New() (*Engine, error) {
	return NewWithConfig(config.DefaultTuning())
}

// NewWithConfig creates an engine with explicit tuning values.
func NewWithConfig(t config.Tuning) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("engine tuning: %w", err)
	}

	lex, err := semantics.LoadBuiltIn()
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	r := rig.NewFaceRig()
	layers := pose.NewLayers()
	emotion := pad.NewStateWithSmoothing(t.Smoothing)
	solver := ik.NewSolver(t.MaxGazeDistance)
	lips := lipsync.NewDriver()
	weights := pose.Weights{
		Base:    t.BaseWeight,
		Emotion: t.EmotionWeight,
		Lipsync: t.LipsyncWeight,
		Gesture: t.GestureWeight,
	}

	e := &Engine{
		tuning:     t,
		rig:        r,
		layers:     layers,
		emotion:    emotion,
		solver:     solver,
		lips:       lips,
		anim:       animator.New(r, layers, emotion, solver, lips, weights),
		classifier: semantics.NewClassifier(lex),
		category:   semantics.CategoryNeutral,
	}
	log.Info("engine created",
		"tick_rate", t.TickRate, "smoothing", t.Smoothing, "max_gaze_distance", t.MaxGazeDistance)
	return e, nil
}

// Tick advances the engine by dt seconds and returns the frame snapshot.
func (e *Engine) Tick(dt float64) animator.Snapshot {
	return e.anim.Tick(dt, time.Now())
}

// PushEmotionPulse feeds one reading from an external vision/audio
// pipeline. Valence, arousal and focus land in [-1,1] as a timed PAD
// override; a sharp arousal jump also kicks the head, and a named gesture
// starts playback.
func (e *Engine) PushEmotionPulse(valence, arousal, focus float64, gesture string) {
	next := pad.Emotion{Pleasure: valence, Arousal: arousal, Dominance: focus}.Clamped()
	prev := e.emotion.Current()
	e.emotion.SetOverride(next, pulseOverrideDuration)

	if next.Arousal-prev.Arousal > followThroughArousal {
		e.anim.Impulse(rig.Vec2{X: 0, Y: -1}, 4)
	}

	if gesture != "" {
		if g := animator.LookupGesture(gesture); g != nil {
			e.anim.TriggerGesture(g)
		} else {
			log.Debug("unknown pulse gesture ignored", "gesture", gesture)
		}
	}
}

// Classify maps a completed utterance to an emotion category and an
// animation variant, and retargets the emotional state toward that
// category's PAD preset.
func (e *Engine) Classify(utterance string) (semantics.Category, string) {
	cat, variant := e.classifier.Classify(utterance)

	e.mu.Lock()
	e.category = cat
	e.variant = variant
	e.mu.Unlock()

	e.emotion.SetTarget(categoryEmotion(cat))
	return cat, variant
}

// SetGazeTarget points the eyes at a rig-space point.
func (e *Engine) SetGazeTarget(p rig.Vec2) {
	e.solver.SetGazeTarget(p)
}

// SetHeadTarget turns the head toward a rig-space point.
func (e *Engine) SetHeadTarget(p rig.Vec2) {
	e.solver.SetHeadTarget(p)
}

// ClearTargets drops both IK targets.
func (e *Engine) ClearTargets() {
	e.solver.ClearTargets()
}

// SetSpeaking switches the lipsync layer on or off.
func (e *Engine) SetSpeaking(on bool) {
	e.lips.SetSpeaking(on)
}

// SetAudioLevel feeds the current audio level in [0,1] to the envelope
// follower.
func (e *Engine) SetAudioLevel(level float64) {
	e.lips.SetLevel(level)
}

// TriggerGesture starts a named gesture. Unknown names are ignored.
func (e *Engine) TriggerGesture(name string) {
	if g := animator.LookupGesture(name); g != nil {
		e.anim.TriggerGesture(g)
	}
}

// StartReveal plays the wake-up choreography.
func (e *Engine) StartReveal() {
	e.anim.StartReveal()
}

// CurrentCategory returns the latest classified category and variant.
func (e *Engine) CurrentCategory() (semantics.Category, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.category, e.variant
}

// CurrentPAD returns the live smoothed emotional state.
func (e *Engine) CurrentPAD() pad.Emotion {
	return e.emotion.Current()
}

// SetMood replaces the standing emotional target, e.g. when restoring a
// persisted mood at startup.
func (e *Engine) SetMood(m pad.Emotion) {
	e.emotion.SetTarget(m)
}

// State returns the animator's activity state.
func (e *Engine) State() animator.State {
	return e.anim.State()
}

// History exposes the classification history for persistence and the
// dashboard.
func (e *Engine) History() *semantics.History {
	return e.classifier.History()
}

// Lexicon exposes the loaded emotion lexicon.
func (e *Engine) Lexicon() *semantics.Lexicon {
	return e.classifier.Lexicon()
}

// Tuning returns the engine's tuning values.
func (e *Engine) Tuning() config.Tuning {
	return e.tuning
}

// categoryEmotion maps a lexical category to its PAD preset. Categories
// without a named preset get hand-placed points in the cube.
func categoryEmotion(c semantics.Category) pad.Emotion {
	switch c {
	case semantics.CategoryJoy:
		return pad.Happy
	case semantics.CategorySadness:
		return pad.Sad
	case semantics.CategoryAnger:
		return pad.Angry
	case semantics.CategoryFear:
		return pad.Fearful
	case semantics.CategorySurprise:
		return pad.Surprised
	case semantics.CategoryExcitement:
		return pad.Excited
	case semantics.CategoryCalm:
		return pad.Relaxed
	case semantics.CategoryCuriosity:
		return pad.Emotion{Pleasure: 0.3, Arousal: 0.4, Dominance: -0.1}
	case semantics.CategoryLove:
		return pad.Emotion{Pleasure: 0.8, Arousal: 0.3, Dominance: 0.2}
	case semantics.CategoryHeroic:
		return pad.Emotion{Pleasure: 0.6, Arousal: 0.6, Dominance: 0.8}
	default:
		return pad.Neutral
	}
}
