// Package entity provides the simulated agent data model: spatial and
// physical state plus the optional mental sub-objects (memory, emotion,
// relationships, needs). Entities carry no decay logic of their own —
// each sub-object exposes its own narrow update methods and the world
// drives them in phase order.
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/talgya/soulfield/internal/material"
)

// Entity is a single simulated agent.
type Entity struct {
	ID         string `json:"id"`
	MaterialID string `json:"material_id"`

	Pos mgl64.Vec2 `json:"pos"`
	Vel mgl64.Vec2 `json:"vel"`

	Mass     float64 `json:"mass"`
	Friction float64 `json:"friction"`
	Bounce   float64 `json:"bounce"`

	// Entropy is the per-entity semantic fingerprint in [0,1] driving
	// similarity-based attraction. Assigned from the seeded RNG at spawn.
	Entropy float64 `json:"entropy"`

	// Age in ticks since spawn. Monotonic.
	Age uint64 `json:"age"`

	// Mental sub-objects. Either all nil (plain physical entity) or all
	// present (ontology-enabled) — partial initialization is not permitted.
	Memory  *MemoryBuffer    `json:"memory,omitempty"`
	Emotion *Emotion         `json:"emotion,omitempty"`
	Bonds   *BondTable       `json:"bonds,omitempty"`
	Needs   map[string]*Need `json:"needs,omitempty"`

	// Trigger rules resolved from the material descriptor at spawn.
	// Evaluated against broadcast context, never re-parsed.
	Triggers []material.Trigger `json:"-"`
}

// HasOntology reports whether the mental sub-objects are present.
func (e *Entity) HasOntology() bool {
	return e.Emotion != nil
}

// ApplyForce accumulates acceleration from an external force into
// velocity, scaled by 1/mass.
func (e *Entity) ApplyForce(fx, fy, dt float64) {
	e.Vel[0] += fx / e.Mass * dt
	e.Vel[1] += fy / e.Mass * dt
}

// IntegrateMotion applies friction damping to velocity, clamps speed,
// and advances position. Damping uses (1-friction)^dt so the decay rate
// is independent of tick size.
func (e *Entity) IntegrateMotion(dt, maxSpeed float64) {
	if dt <= 0 {
		return
	}
	damp := math.Pow(1-e.Friction, dt)
	e.Vel = e.Vel.Mul(damp)

	if speed := e.Vel.Len(); speed > maxSpeed && speed > 0 {
		e.Vel = e.Vel.Mul(maxSpeed / speed)
	}

	e.Pos = e.Pos.Add(e.Vel.Mul(dt))
}

// IsCritical reports whether the named resource need is in its critical
// band. Unknown resources are simply not critical.
func (e *Entity) IsCritical(resource string) bool {
	n, ok := e.Needs[resource]
	return ok && n.Critical
}

// AnyCritical reports whether any declared need is critical.
func (e *Entity) AnyCritical() bool {
	for _, n := range e.Needs {
		if n.Critical {
			return true
		}
	}
	return false
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
