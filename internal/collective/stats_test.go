package collective

import (
	"testing"

	"github.com/talgya/soulfield/internal/entity"
	"github.com/talgya/soulfield/internal/material"
)

func TestCalculateStatsEmpty(t *testing.T) {
	s := CalculateStats(nil)
	if s.Population != 0 || s.MeanAge != 0 {
		t.Errorf("empty population stats = %+v", s)
	}
}

func TestCalculateStatsMixedPopulation(t *testing.T) {
	plain := &entity.Entity{ID: "a", Mass: 1, Entropy: 0.2, Age: 10}
	feeling := &entity.Entity{
		ID: "b", Mass: 1, Entropy: 0.6, Age: 30,
		Emotion: entity.NewEmotion(material.EmotionDelta{Valence: 0.4, Arousal: 0.5, Dominance: 0.5}, 0.1),
		Memory:  entity.NewMemoryBuffer(10, 45, 0.01),
		Bonds:   entity.NewBondTable(0.1, 0.01, entity.DecayExponential, 30),
		Needs: map[string]*entity.Need{
			"water": {Resource: "water", Level: 0.2, Critical: true},
		},
	}

	s := CalculateStats([]*entity.Entity{plain, feeling})
	if s.Population != 2 {
		t.Fatalf("population = %d", s.Population)
	}
	if s.MeanAge != 20 {
		t.Errorf("mean age = %v, want 20", s.MeanAge)
	}
	if s.EmotionalCount != 1 || s.MeanValence != 0.4 {
		t.Errorf("emotion stats = %+v", s)
	}
	if s.NeedyCount != 1 || s.CriticalCount != 1 || s.MeanNeedLevel != 0.2 {
		t.Errorf("need stats = %+v", s)
	}
}
