// Emotional state — a valence/arousal/dominance triple with a baseline
// the state relaxes toward, plus additive deltas and pairwise resonance.
package entity

import "github.com/talgya/soulfield/internal/material"

// Axis ranges: valence in [-1,1], arousal and dominance in [0,1].
type Emotion struct {
	Valence   float64 `json:"valence"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`

	BaseValence   float64 `json:"base_valence"`
	BaseArousal   float64 `json:"base_arousal"`
	BaseDominance float64 `json:"base_dominance"`

	// Inertia scales the relaxation rate: higher means a faster return
	// to baseline.
	Inertia float64 `json:"inertia"`
}

// NewEmotion creates an emotion resting at the given baseline.
func NewEmotion(baseline material.EmotionDelta, inertia float64) *Emotion {
	e := &Emotion{
		BaseValence:   clamp(baseline.Valence, -1, 1),
		BaseArousal:   clamp(baseline.Arousal, 0, 1),
		BaseDominance: clamp(baseline.Dominance, 0, 1),
		Inertia:       inertia,
	}
	e.Valence = e.BaseValence
	e.Arousal = e.BaseArousal
	e.Dominance = e.BaseDominance
	return e
}

// Relax moves the current state toward baseline by a fraction
// proportional to dt and inertia.
func (e *Emotion) Relax(dt float64) {
	if dt <= 0 {
		return
	}
	f := clamp(e.Inertia*dt, 0, 1)
	e.Valence += (e.BaseValence - e.Valence) * f
	e.Arousal += (e.BaseArousal - e.Arousal) * f
	e.Dominance += (e.BaseDominance - e.Dominance) * f
}

// ApplyDelta adds a nudge and clamps each axis to its valid range.
// Out-of-range results clamp; they never wrap and never error.
func (e *Emotion) ApplyDelta(d material.EmotionDelta) {
	e.Valence = clamp(e.Valence+d.Valence, -1, 1)
	e.Arousal = clamp(e.Arousal+d.Arousal, 0, 1)
	e.Dominance = clamp(e.Dominance+d.Dominance, 0, 1)
}

// Resonate blends a fraction of another emotional state into this one,
// scaled by strength. The blend is one-directional: A may influence B
// more than B influences A depending on how each side is called.
func (e *Emotion) Resonate(other *Emotion, strength float64) {
	f := clamp(strength, 0, 1)
	e.Valence = clamp(e.Valence+(other.Valence-e.Valence)*f, -1, 1)
	e.Arousal = clamp(e.Arousal+(other.Arousal-e.Arousal)*f, 0, 1)
	e.Dominance = clamp(e.Dominance+(other.Dominance-e.Dominance)*f, 0, 1)
}

// Snapshot returns a value copy, used to compute pairwise effects from a
// consistent pre-phase state.
func (e *Emotion) Snapshot() Emotion {
	return *e
}
