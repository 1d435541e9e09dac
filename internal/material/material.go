// Package material defines the declarative descriptors entities are
// spawned from. Descriptors arrive as JSON, are validated against an
// embedded schema, then resolved into concrete values with documented
// defaults — the engine never inspects raw JSON at tick time.
package material

import (
	"fmt"
)

// Default physical properties applied when a descriptor omits them.
const (
	DefaultMass     = 1.0
	DefaultFriction = 0.02
	DefaultBounce   = 0.0

	// DefaultNeedLevel is the starting fulfillment of a declared need.
	DefaultNeedLevel = 0.8
)

// EmotionDelta is an additive nudge to an entity's emotional state.
// Axes not present in the source JSON stay zero.
type EmotionDelta struct {
	Valence   float64 `json:"valence,omitempty"`
	Arousal   float64 `json:"arousal,omitempty"`
	Dominance float64 `json:"dominance,omitempty"`
}

// Physics holds the physical properties of a material. Fields are
// pointers so an absent field (take the default) is distinguishable from
// an explicit zero (reject or honor, per field).
type Physics struct {
	Mass     *float64 `json:"mass,omitempty"`
	Friction *float64 `json:"friction,omitempty"`
	Bounce   *float64 `json:"bounce,omitempty"`
}

// ResourceNeed declares a resource an entity depends on.
type ResourceNeed struct {
	ID                string       `json:"id"`
	DepletionRate     float64      `json:"depletionRate"`
	CriticalThreshold float64      `json:"criticalThreshold"`
	InitialLevel      *float64     `json:"initialLevel,omitempty"`
	EmotionalImpact   EmotionDelta `json:"emotionalImpact,omitempty"`
}

// StartLevel returns the declared initial fulfillment, or the default.
func (r ResourceNeed) StartLevel() float64 {
	if r.InitialLevel != nil {
		return *r.InitialLevel
	}
	return DefaultNeedLevel
}

// Needs groups the declared resource dependencies.
type Needs struct {
	Resources []ResourceNeed `json:"resources,omitempty"`
}

// Ontology configures the mental sub-objects of an entity. When a world
// has the ontology feature enabled, every spawned entity gets memory,
// emotion, and relationship state together — there is no partial form.
type Ontology struct {
	EmotionBaseline EmotionDelta `json:"emotionBaseline,omitempty"`
}

// Trigger op codes. Conditions are compiled once at spawn; the tick path
// only ever compares pre-parsed values.
const (
	OpGreater = "gt"
	OpLess    = "lt"
	OpEqual   = "eq"
)

// Trigger maps an external context key to an emotional effect.
type Trigger struct {
	Key    string       `json:"key"`
	Op     string       `json:"op"`
	Value  float64      `json:"value,omitempty"`
	Match  string       `json:"match,omitempty"`
	Effect EmotionDelta `json:"effect"`
}

// Descriptor is the full declarative configuration for a material.
type Descriptor struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Physics  *Physics  `json:"physics,omitempty"`
	Needs    *Needs    `json:"needs,omitempty"`
	Ontology *Ontology `json:"ontology,omitempty"`
	Triggers []Trigger `json:"triggers,omitempty"`
}

// Map is a registry of descriptors keyed by ID, used to re-bind entities
// to their materials on snapshot restore.
type Map map[string]*Descriptor

// ResolvedPhysics returns the concrete physical properties with defaults
// applied for absent fields.
func (d *Descriptor) ResolvedPhysics() (mass, friction, bounce float64) {
	mass, friction, bounce = DefaultMass, DefaultFriction, DefaultBounce
	if d.Physics == nil {
		return
	}
	if d.Physics.Mass != nil {
		mass = *d.Physics.Mass
	}
	if d.Physics.Friction != nil {
		friction = *d.Physics.Friction
	}
	if d.Physics.Bounce != nil {
		bounce = *d.Physics.Bounce
	}
	return
}

// Validate rejects descriptors that would corrupt the simulation later.
// Genuinely optional fields take defaults instead; anything checked here
// is a caller bug worth failing fast on.
func (d *Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("material: missing id")
	}
	if d.Physics != nil {
		if d.Physics.Mass != nil && *d.Physics.Mass <= 0 {
			return fmt.Errorf("material %q: mass must be positive, got %v", d.ID, *d.Physics.Mass)
		}
		if d.Physics.Friction != nil && (*d.Physics.Friction < 0 || *d.Physics.Friction > 1) {
			return fmt.Errorf("material %q: friction must be in [0,1], got %v", d.ID, *d.Physics.Friction)
		}
	}
	if d.Needs != nil {
		for _, r := range d.Needs.Resources {
			if r.ID == "" {
				return fmt.Errorf("material %q: need with empty resource id", d.ID)
			}
			if r.DepletionRate < 0 {
				return fmt.Errorf("material %q: need %q depletion rate must be non-negative, got %v", d.ID, r.ID, r.DepletionRate)
			}
			if r.CriticalThreshold < 0 || r.CriticalThreshold > 1 {
				return fmt.Errorf("material %q: need %q critical threshold must be in [0,1], got %v", d.ID, r.ID, r.CriticalThreshold)
			}
			if r.InitialLevel != nil && (*r.InitialLevel < 0 || *r.InitialLevel > 1) {
				return fmt.Errorf("material %q: need %q initial level must be in [0,1], got %v", d.ID, r.ID, *r.InitialLevel)
			}
		}
	}
	for i, tr := range d.Triggers {
		switch tr.Op {
		case OpGreater, OpLess, OpEqual:
		default:
			return fmt.Errorf("material %q: trigger %d has unknown op %q", d.ID, i, tr.Op)
		}
		if tr.Key == "" {
			return fmt.Errorf("material %q: trigger %d has empty key", d.ID, i)
		}
	}
	return nil
}

// HasOntology reports whether entities of this material carry the mental
// sub-objects (the owning world's feature flag still gates this).
func (d *Descriptor) HasOntology() bool {
	return d.Ontology != nil
}
