// Package config loads simulation tuning from YAML. All empirically tuned
// constants (force radii, decay rates) live here rather than in the engine,
// since they are calibrated for a specific spatial scale and do not
// generalize without retuning.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every tunable simulation constant.
type Tuning struct {
	// Physics.
	ForceConstant   float64 `yaml:"force_constant"`
	ForceCutoff     float64 `yaml:"force_cutoff"`
	ProximityRadius float64 `yaml:"proximity_radius"`
	MaxSpeed        float64 `yaml:"max_speed"`

	// Memory.
	MemoryCapacity int     `yaml:"memory_capacity"`
	MemoryTau      float64 `yaml:"memory_tau"`
	SalienceFloor  float64 `yaml:"salience_floor"`

	// Emotion.
	EmotionInertia float64 `yaml:"emotion_inertia"`

	// Relationships.
	BondInitial   float64 `yaml:"bond_initial"`
	BondGain      float64 `yaml:"bond_gain"`
	BondDecayRate float64 `yaml:"bond_decay_rate"`
	BondCurve     string  `yaml:"bond_curve"` // "linear", "exponential", "logarithmic"
	BondGrace     float64 `yaml:"bond_grace"`

	// Contagion.
	ResonanceRate float64 `yaml:"resonance_rate"`

	// Climate.
	ClimateDecay    float64 `yaml:"climate_decay"`
	ClimateCoupling float64 `yaml:"climate_coupling"`
	ClimateEventCap int     `yaml:"climate_event_cap"`

	// World bookkeeping.
	EventLogCap int `yaml:"event_log_cap"`
}

// Default returns the tuning used when no file is supplied. The spatial
// constants (0.05 / 160 / 80) are calibrated for tens of entities in a
// few-hundred-unit arena.
func Default() Tuning {
	return Tuning{
		ForceConstant:   0.05,
		ForceCutoff:     160,
		ProximityRadius: 80,
		MaxSpeed:        50,

		MemoryCapacity: 50,
		MemoryTau:      45, // simulated seconds
		SalienceFloor:  0.01,

		EmotionInertia: 0.1,

		BondInitial:   0.1,
		BondGain:      0.05,
		BondDecayRate: 0.002,
		BondCurve:     "exponential",
		BondGrace:     30,

		ResonanceRate: 0.05,

		ClimateDecay:    0.01,
		ClimateCoupling: 0.01,
		ClimateEventCap: 32,

		EventLogCap: 1000,
	}
}

// Load reads tuning from a YAML file. Fields absent from the file keep
// their default values.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.ForceCutoff <= 0 {
		return fmt.Errorf("force_cutoff must be positive, got %v", t.ForceCutoff)
	}
	if t.ProximityRadius <= 0 {
		return fmt.Errorf("proximity_radius must be positive, got %v", t.ProximityRadius)
	}
	if t.MemoryCapacity <= 0 {
		return fmt.Errorf("memory_capacity must be positive, got %d", t.MemoryCapacity)
	}
	switch t.BondCurve {
	case "linear", "exponential", "logarithmic":
	default:
		return fmt.Errorf("unknown bond_curve %q", t.BondCurve)
	}
	return nil
}
