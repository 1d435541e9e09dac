// Package engine computes the physical layer of the simulation: pairwise
// similarity-based attraction within a cutoff radius, proximity
// detection, and motion integration. The engine never owns the entity
// collection — the world does — so every method takes the current
// collection as an argument and the tick order stays the caller's.
package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/talgya/soulfield/internal/entity"
	"github.com/talgya/soulfield/internal/material"
	"github.com/talgya/soulfield/internal/rng"
)

// Config holds the engine's spatial constants. These are calibrated for
// a specific rendering scale and come from tuning, never hardcoded.
type Config struct {
	ForceConstant   float64
	ForceCutoff     float64
	ProximityRadius float64
	MaxSpeed        float64
}

// SimilarityFunc scores two entities in [0,1]; higher similarity means
// stronger attraction. Pluggable so an embedding-based metric can
// replace the entropy fingerprint without touching force application.
type SimilarityFunc func(a, b *entity.Entity) float64

// EntropySimilarity is the default cheap metric: closeness of the two
// entropy fingerprints.
func EntropySimilarity(a, b *entity.Entity) float64 {
	d := a.Entropy - b.Entropy
	if d < 0 {
		d = -d
	}
	return 1 - d
}

// ProximityFunc is invoked during a tick for every pair inside the
// proximity radius. Indices refer to the entity slice passed to Tick.
type ProximityFunc func(i, j int, dist float64)

// Engine advances entity physics deterministically from its seeded RNG.
type Engine struct {
	cfg        Config
	rng        *rng.Source
	similarity SimilarityFunc

	// Scratch force accumulators, reused across ticks.
	forces []mgl64.Vec2
}

// New creates an engine with the default entropy similarity metric.
func New(seed int64, cfg Config) *Engine {
	return &Engine{
		cfg:        cfg,
		rng:        rng.New(seed),
		similarity: EntropySimilarity,
	}
}

// SetSimilarity swaps the similarity metric. A nil fn restores the
// default.
func (e *Engine) SetSimilarity(fn SimilarityFunc) {
	if fn == nil {
		fn = EntropySimilarity
	}
	e.similarity = fn
}

// Spawn constructs an entity from a material descriptor at the given
// position. The ID and entropy fingerprint come from the engine's seeded
// RNG, so spawn order is part of the deterministic trajectory.
func (e *Engine) Spawn(mat *material.Descriptor, x, y float64) (*entity.Entity, error) {
	if mat == nil {
		return nil, fmt.Errorf("spawn: nil material")
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}

	mass, friction, bounce := mat.ResolvedPhysics()
	if mass <= 0 {
		return nil, fmt.Errorf("spawn %q: resolved mass %v is not positive", mat.ID, mass)
	}

	id, err := uuid.NewRandomFromReader(e.rng)
	if err != nil {
		return nil, fmt.Errorf("spawn %q: %w", mat.ID, err)
	}

	ent := &entity.Entity{
		ID:         id.String(),
		MaterialID: mat.ID,
		Pos:        mgl64.Vec2{x, y},
		Mass:       mass,
		Friction:   friction,
		Bounce:     bounce,
		Entropy:    e.rng.Float64(),
		Triggers:   mat.Triggers,
	}

	if mat.Needs != nil && len(mat.Needs.Resources) > 0 {
		ent.Needs = make(map[string]*entity.Need, len(mat.Needs.Resources))
		for _, decl := range mat.Needs.Resources {
			ent.Needs[decl.ID] = entity.NewNeed(decl)
		}
	}

	return ent, nil
}

// Tick runs one physical step over the given entities:
//
//  1. Accumulate pairwise attraction forces for every pair within the
//     force cutoff. Force magnitude is forceConstant·similarity/distance
//     applied along the connecting vector to both sides — equal and
//     opposite, never asymmetric.
//  2. Report pairs within the proximity radius via onProximity.
//  3. Integrate motion for every entity once, after all forces are in.
//
// Coincident pairs (distance zero) are skipped for the tick so no
// singularity can reach entity state. O(n²) over pairs, which is the
// intended cost at populations of tens.
func (e *Engine) Tick(entities []*entity.Entity, dt float64, onProximity ProximityFunc) {
	if dt <= 0 {
		return
	}

	if cap(e.forces) < len(entities) {
		e.forces = make([]mgl64.Vec2, len(entities))
	}
	e.forces = e.forces[:len(entities)]
	for i := range e.forces {
		e.forces[i] = mgl64.Vec2{}
	}

	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			a, b := entities[i], entities[j]

			delta := b.Pos.Sub(a.Pos)
			dist := delta.Len()
			if dist == 0 {
				continue
			}

			if dist <= e.cfg.ForceCutoff {
				sim := e.similarity(a, b)
				mag := e.cfg.ForceConstant * sim / dist
				f := delta.Mul(mag / dist) // unit direction × magnitude
				e.forces[i] = e.forces[i].Add(f)
				e.forces[j] = e.forces[j].Sub(f)
			}

			if dist <= e.cfg.ProximityRadius && onProximity != nil {
				onProximity(i, j, dist)
			}
		}
	}

	for i, ent := range entities {
		ent.ApplyForce(e.forces[i][0], e.forces[i][1], dt)
		ent.IntegrateMotion(dt, e.cfg.MaxSpeed)
		ent.Age++
	}
}

// RNGState exposes the RNG state for snapshots.
func (e *Engine) RNGState() uint64 {
	return e.rng.State()
}

// RestoreRNG resets the RNG from a snapshot.
func (e *Engine) RestoreRNG(state uint64) {
	e.rng.Restore(state)
}
