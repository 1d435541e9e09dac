package entity

import (
	"math"
	"testing"

	"github.com/talgya/soulfield/internal/material"
)

func TestEmotionRelaxTowardBaseline(t *testing.T) {
	e := NewEmotion(material.EmotionDelta{Valence: 0.2, Arousal: 0.3, Dominance: 0.5}, 0.1)
	e.ApplyDelta(material.EmotionDelta{Valence: 0.6, Arousal: 0.5})

	for i := 0; i < 500; i++ {
		e.Relax(1)
	}
	if math.Abs(e.Valence-0.2) > 1e-6 || math.Abs(e.Arousal-0.3) > 1e-6 {
		t.Errorf("did not settle at baseline: valence=%v arousal=%v", e.Valence, e.Arousal)
	}
}

func TestEmotionHigherInertiaSettlesFaster(t *testing.T) {
	slow := NewEmotion(material.EmotionDelta{}, 0.05)
	fast := NewEmotion(material.EmotionDelta{}, 0.5)
	slow.ApplyDelta(material.EmotionDelta{Valence: 1})
	fast.ApplyDelta(material.EmotionDelta{Valence: 1})

	slow.Relax(1)
	fast.Relax(1)
	if fast.Valence >= slow.Valence {
		t.Errorf("higher inertia should return faster: fast=%v slow=%v", fast.Valence, slow.Valence)
	}
}

func TestEmotionDeltaClampsNotWraps(t *testing.T) {
	e := NewEmotion(material.EmotionDelta{}, 0.1)
	e.ApplyDelta(material.EmotionDelta{Valence: 5, Arousal: -3, Dominance: 9})
	if e.Valence != 1 || e.Arousal != 0 || e.Dominance != 1 {
		t.Errorf("out-of-range delta must clamp: %+v", e)
	}
}

func TestEmotionResonateBlends(t *testing.T) {
	a := NewEmotion(material.EmotionDelta{Valence: -1}, 0.1)
	b := NewEmotion(material.EmotionDelta{Valence: 1}, 0.1)

	a.Resonate(b, 0.5)
	if a.Valence != 0 {
		t.Errorf("valence after 0.5 blend = %v, want 0", a.Valence)
	}
	// b was not touched — resonance is one-directional per call.
	if b.Valence != 1 {
		t.Errorf("resonance mutated the other side: %v", b.Valence)
	}
}

func TestEmotionResonateZeroStrengthNoop(t *testing.T) {
	a := NewEmotion(material.EmotionDelta{Valence: -0.4}, 0.1)
	b := NewEmotion(material.EmotionDelta{Valence: 0.8}, 0.1)
	a.Resonate(b, 0)
	if a.Valence != -0.4 {
		t.Errorf("zero-strength resonance changed state: %v", a.Valence)
	}
}
