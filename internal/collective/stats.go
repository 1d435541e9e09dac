// Population statistics — single pass, no internal state, safe to call
// between ticks at any time.
package collective

import "github.com/talgya/soulfield/internal/entity"

// WorldStats holds population means computed over living entities.
type WorldStats struct {
	Population int `json:"population"`

	MeanAge     float64 `json:"mean_age"`
	MeanEntropy float64 `json:"mean_entropy"`
	MeanSpeed   float64 `json:"mean_speed"`

	// Emotion means cover only ontology-enabled entities.
	EmotionalCount int     `json:"emotional_count"`
	MeanValence    float64 `json:"mean_valence"`
	MeanArousal    float64 `json:"mean_arousal"`
	MeanDominance  float64 `json:"mean_dominance"`

	// Need means cover only entities with declared needs.
	NeedyCount    int     `json:"needy_count"`
	MeanNeedLevel float64 `json:"mean_need_level"`
	CriticalCount int     `json:"critical_count"`
}

// CalculateStats computes WorldStats in one O(n) pass.
func CalculateStats(entities []*entity.Entity) WorldStats {
	var s WorldStats
	if len(entities) == 0 {
		return s
	}

	var age, entropy, speed float64
	var valence, arousal, dominance float64
	var needLevel float64
	var needCount int

	for _, e := range entities {
		s.Population++
		age += float64(e.Age)
		entropy += e.Entropy
		speed += e.Vel.Len()

		if e.Emotion != nil {
			s.EmotionalCount++
			valence += e.Emotion.Valence
			arousal += e.Emotion.Arousal
			dominance += e.Emotion.Dominance
		}
		if len(e.Needs) > 0 {
			s.NeedyCount++
			for _, n := range e.Needs {
				needLevel += n.Level
				needCount++
				if n.Critical {
					s.CriticalCount++
				}
			}
		}
	}

	n := float64(s.Population)
	s.MeanAge = age / n
	s.MeanEntropy = entropy / n
	s.MeanSpeed = speed / n
	if s.EmotionalCount > 0 {
		ec := float64(s.EmotionalCount)
		s.MeanValence = valence / ec
		s.MeanArousal = arousal / ec
		s.MeanDominance = dominance / ec
	}
	if needCount > 0 {
		s.MeanNeedLevel = needLevel / float64(needCount)
	}
	return s
}
