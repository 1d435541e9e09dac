// Package world wraps the physics engine with the full three-phase tick:
// Physical (forces, motion, resource fields, need depletion), Mental
// (memory decay, emotion relaxation, broadcast triggers), Relational
// (bond reinforcement and emotional contagion for proximate pairs),
// followed by the climate aggregate update. The world owns the entity
// collection; the engine only ever sees it as an argument.
package world

import (
	"fmt"
	"sort"

	"github.com/talgya/soulfield/internal/collective"
	"github.com/talgya/soulfield/internal/config"
	"github.com/talgya/soulfield/internal/engine"
	"github.com/talgya/soulfield/internal/entity"
	"github.com/talgya/soulfield/internal/material"
)

// Options configures a world at construction.
type Options struct {
	Seed int64

	// Ontology gives every spawned entity the mental sub-objects
	// (memory, emotion, relationships) as a unit. Without it entities
	// are plain physical bodies.
	Ontology bool

	// ClimateCoupling bleeds the collective mood back into individual
	// emotions each tick.
	ClimateCoupling bool

	Tuning config.Tuning
}

// Event is a notable occurrence in the world's append-only log.
type Event struct {
	Tick        uint64  `json:"tick"`
	Time        float64 `json:"time"`
	Description string  `json:"description"`
	Category    string  `json:"category"` // "spawn", "despawn", "death", "birth", ...
}

type proxPair struct {
	i, j int
	dist float64
}

// World holds the complete simulation state.
type World struct {
	opts   Options
	tuning config.Tuning

	eng      *engine.Engine
	entities []*entity.Entity
	index    map[string]*entity.Entity

	// materials remembers every descriptor spawned from, for snapshots.
	materials material.Map

	worldTime float64
	tickCount uint64

	events  []Event
	climate collective.Climate
	fields  []*ResourceField

	// Latest broadcast context, consumed at the next Mental phase.
	pendingCtx map[string]any

	// Pairs flagged in-proximity during the last Physical phase.
	proximity []proxPair

	// Scratch pre-phase emotion copies for the Relational phase.
	emotionSnaps []entity.Emotion
}

// New creates a world. A zero Tuning takes the defaults.
func New(opts Options) *World {
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.Default()
	}
	t := opts.Tuning

	return &World{
		opts:   opts,
		tuning: t,
		eng: engine.New(opts.Seed, engine.Config{
			ForceConstant:   t.ForceConstant,
			ForceCutoff:     t.ForceCutoff,
			ProximityRadius: t.ProximityRadius,
			MaxSpeed:        t.MaxSpeed,
		}),
		index:     make(map[string]*entity.Entity),
		materials: make(material.Map),
		climate:   collective.NewClimate(),
	}
}

// Destroy releases the world's state. The world must not be used after.
func (w *World) Destroy() {
	w.entities = nil
	w.index = nil
	w.fields = nil
	w.events = nil
}

// Spawn creates an entity from a material descriptor and registers it.
// With the ontology feature on, the mental sub-objects are attached
// together — an entity is never partially initialized.
func (w *World) Spawn(mat *material.Descriptor, x, y float64) (*entity.Entity, error) {
	ent, err := w.eng.Spawn(mat, x, y)
	if err != nil {
		return nil, err
	}

	if w.opts.Ontology {
		w.attachOntology(ent, mat)
	}

	w.materials[mat.ID] = mat
	w.entities = append(w.entities, ent)
	w.index[ent.ID] = ent
	w.logEvent(fmt.Sprintf("%s spawned as %s", ent.ID, mat.ID), "spawn")
	return ent, nil
}

func (w *World) attachOntology(ent *entity.Entity, mat *material.Descriptor) {
	t := w.tuning

	baseline := material.EmotionDelta{}
	if mat.Ontology != nil {
		baseline = mat.Ontology.EmotionBaseline
	}

	ent.Memory = entity.NewMemoryBuffer(t.MemoryCapacity, t.MemoryTau, t.SalienceFloor)
	ent.Emotion = entity.NewEmotion(baseline, t.EmotionInertia)
	ent.Bonds = entity.NewBondTable(t.BondInitial, t.BondDecayRate,
		entity.CurveFromName(t.BondCurve), t.BondGrace)
}

// Despawn removes an entity. Unknown IDs and repeated calls are no-ops —
// lookups that miss are expected, not exceptional. Bonds other entities
// hold toward the removed ID go stale and are pruned lazily by decay.
func (w *World) Despawn(id string) {
	if _, ok := w.index[id]; !ok {
		return
	}
	delete(w.index, id)
	for i, e := range w.entities {
		if e.ID == id {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	w.logEvent(fmt.Sprintf("%s despawned", id), "despawn")
}

// Entities returns a copy of the entity slice. The entities themselves
// are shared; callers must not read them while a tick is in flight.
func (w *World) Entities() []*entity.Entity {
	out := make([]*entity.Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Get returns the entity with the given ID, or nil.
func (w *World) Get(id string) *entity.Entity {
	return w.index[id]
}

// WorldTime returns the accumulated simulated seconds.
func (w *World) WorldTime() float64 {
	return w.worldTime
}

// TickCount returns the number of completed ticks.
func (w *World) TickCount() uint64 {
	return w.tickCount
}

// Events returns a copy of the event log.
func (w *World) Events() []Event {
	out := make([]Event, len(w.events))
	copy(out, w.events)
	return out
}

// Tick advances the world by dt simulated seconds through the strict
// phase order Physical → Mental → Relational → climate. A negative dt
// is clamped to zero rather than propagating backwards time.
func (w *World) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	w.worldTime += dt
	w.tickCount++

	w.tickPhysical(dt)
	w.tickMental(dt)
	w.tickRelational(dt)
	w.tickClimate(dt)
}

// tickPhysical runs forces and motion, resource fields, and need
// depletion.
func (w *World) tickPhysical(dt float64) {
	w.proximity = w.proximity[:0]
	w.eng.Tick(w.entities, dt, func(i, j int, dist float64) {
		w.proximity = append(w.proximity, proxPair{i: i, j: j, dist: dist})
	})

	for _, f := range w.fields {
		f.Tick(dt)
	}

	for _, e := range w.entities {
		if len(e.Needs) == 0 {
			continue
		}
		// Sorted resource order keeps emotion-delta clamping
		// deterministic when several needs cross at once.
		for _, res := range sortedNeedKeys(e.Needs) {
			if e.Needs[res].Deplete(dt) && e.Emotion != nil {
				e.Emotion.ApplyDelta(e.Needs[res].Impact)
			}
		}
	}
}

// tickMental decays memory, relaxes emotion, and routes any pending
// broadcast context through each entity's pre-compiled triggers.
func (w *World) tickMental(dt float64) {
	ctx := w.pendingCtx
	w.pendingCtx = nil

	for _, e := range w.entities {
		if !e.HasOntology() {
			continue
		}

		if ctx != nil {
			for _, tr := range e.Triggers {
				if triggerMatches(tr, ctx) {
					e.Emotion.ApplyDelta(tr.Effect)
				}
			}
		}

		e.Memory.Decay(dt)
		e.Emotion.Relax(dt)

		if e.AnyCritical() {
			w.climate.Record(collective.EventSuffering, w.worldTime, 0.05, w.tuning.ClimateEventCap)
		}
	}
}

// tickRelational reinforces bonds and applies emotional contagion for
// the pairs flagged in proximity during the Physical phase, then decays
// every bond table. Contagion reads pre-phase emotion copies so results
// do not depend on pair order.
func (w *World) tickRelational(dt float64) {
	if dt <= 0 {
		return
	}

	if cap(w.emotionSnaps) < len(w.entities) {
		w.emotionSnaps = make([]entity.Emotion, len(w.entities))
	}
	w.emotionSnaps = w.emotionSnaps[:len(w.entities)]
	for i, e := range w.entities {
		if e.HasOntology() {
			w.emotionSnaps[i] = e.Emotion.Snapshot()
		}
	}

	for _, p := range w.proximity {
		a, b := w.entities[p.i], w.entities[p.j]
		if !a.HasOntology() || !b.HasOntology() {
			continue
		}

		closeness := 1 - p.dist/w.tuning.ProximityRadius // 1 at contact, 0 at the radius
		amount := w.tuning.BondGain * dt * closeness

		w.reinforceWithMemory(a, b, amount)
		w.reinforceWithMemory(b, a, amount)

		// Contagion scaled by bond strength and closeness; the more
		// dominant side of the pair pushes harder than it receives.
		snapA, snapB := w.emotionSnaps[p.i], w.emotionSnaps[p.j]
		intoA := w.tuning.ResonanceRate * dt * closeness * a.Bonds.Strength(b.ID) * (0.5 + snapB.Dominance*0.5)
		intoB := w.tuning.ResonanceRate * dt * closeness * b.Bonds.Strength(a.ID) * (0.5 + snapA.Dominance*0.5)
		a.Emotion.Resonate(&snapB, intoA)
		b.Emotion.Resonate(&snapA, intoB)
	}

	for _, e := range w.entities {
		if e.HasOntology() {
			e.Bonds.Decay(dt, w.worldTime)
		}
	}
}

// reinforceWithMemory strengthens from's bond toward to, recording a
// first-meeting memory when the bond is brand new.
func (w *World) reinforceWithMemory(from, to *entity.Entity, amount float64) {
	if from.Bonds.Strength(to.ID) == 0 {
		from.Memory.Add(entity.MemoryRecord{
			Timestamp: w.worldTime,
			Type:      "social",
			Subject:   to.ID,
			Content:   "met " + to.MaterialID,
			Salience:  0.5,
		})
	}
	from.Bonds.Reinforce(to.ID, amount, w.worldTime)
}

// tickClimate relaxes the aggregate and optionally bleeds the
// collective mood into individuals.
func (w *World) tickClimate(dt float64) {
	w.climate.Decay(dt, w.tuning.ClimateDecay)

	if !w.opts.ClimateCoupling || dt <= 0 {
		return
	}
	delta := material.EmotionDelta{
		Valence: (w.climate.Harmony - w.climate.Grief) * w.tuning.ClimateCoupling * dt,
		Arousal: (w.climate.Tension - 0.3) * w.tuning.ClimateCoupling * dt,
	}
	for _, e := range w.entities {
		if e.HasOntology() {
			e.Emotion.ApplyDelta(delta)
		}
	}
}

// EmotionalClimate returns a copy of the current climate aggregate.
func (w *World) EmotionalClimate() collective.Climate {
	c := w.climate
	c.Recent = append([]collective.Event(nil), w.climate.Recent...)
	return c
}

// Stats computes population statistics for the current entities.
func (w *World) Stats() collective.WorldStats {
	return collective.CalculateStats(w.entities)
}

// RecordEntityDeath records a death event, raising grief.
func (w *World) RecordEntityDeath(id string, intensity float64) {
	w.climate.Record(collective.EventDeath, w.worldTime, intensity, w.tuning.ClimateEventCap)
	w.logEvent(fmt.Sprintf("%s has died", id), "death")
}

// RecordEntityBirth records a birth event, raising vitality.
func (w *World) RecordEntityBirth(id string, intensity float64) {
	w.climate.Record(collective.EventBirth, w.worldTime, intensity, w.tuning.ClimateEventCap)
	w.logEvent(fmt.Sprintf("%s was born", id), "birth")
}

// RecordSuffering records a suffering event, raising tension.
func (w *World) RecordSuffering(id string, intensity float64) {
	w.climate.Record(collective.EventSuffering, w.worldTime, intensity, w.tuning.ClimateEventCap)
	w.logEvent(fmt.Sprintf("%s is suffering", id), "suffering")
}

func (w *World) logEvent(desc, category string) {
	w.events = append(w.events, Event{
		Tick:        w.tickCount,
		Time:        w.worldTime,
		Description: desc,
		Category:    category,
	})
	if max := w.tuning.EventLogCap; max > 0 && len(w.events) > max {
		w.events = w.events[len(w.events)-max:]
	}
}

func sortedNeedKeys(needs map[string]*entity.Need) []string {
	keys := make([]string, 0, len(needs))
	for k := range needs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
