// World snapshot — the full persisted state layout. A restored world
// continues bit-identically: the engine RNG state rides along, entity
// order is preserved, and every mental sub-object is captured with its
// exact levels.
package world

import (
	"fmt"

	"github.com/talgya/soulfield/internal/collective"
	"github.com/talgya/soulfield/internal/engine"
	"github.com/talgya/soulfield/internal/entity"
	"github.com/talgya/soulfield/internal/material"
	"github.com/ojrac/opensimplex-go"
)

// EntitySnapshot extends the engine's physical state with the mental
// sub-objects. Optional sections are omitted for plain entities.
type EntitySnapshot struct {
	engine.EntityState

	Memory        []entity.MemoryRecord  `json:"memory,omitempty"`
	Emotion       *entity.Emotion        `json:"emotion,omitempty"`
	Relationships map[string]entity.Bond `json:"relationships,omitempty"`
	NeedLevels    map[string]float64     `json:"need_levels,omitempty"`
	CriticalNeeds []string               `json:"critical_needs,omitempty"`
}

// Snapshot is the complete serializable world state.
type Snapshot struct {
	Seed      int64   `json:"seed"`
	WorldTime float64 `json:"world_time"`
	TickCount uint64  `json:"tick_count"`
	RNGState  uint64  `json:"rng_state"`
	Ontology  bool    `json:"ontology"`

	Entities       []EntitySnapshot      `json:"entities"`
	ResourceFields []ResourceFieldConfig `json:"resource_fields,omitempty"`
	Climate        collective.Climate    `json:"climate"`
	Events         []Event               `json:"events,omitempty"`
}

// Snapshot captures the current world state. Entity order matches the
// deterministic iteration order.
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		Seed:      w.opts.Seed,
		WorldTime: w.worldTime,
		TickCount: w.tickCount,
		RNGState:  w.eng.RNGState(),
		Ontology:  w.opts.Ontology,
		Climate:   w.EmotionalClimate(),
		Events:    w.Events(),
	}

	for _, e := range w.entities {
		es := EntitySnapshot{
			EntityState: engine.EntityState{
				ID:         e.ID,
				MaterialID: e.MaterialID,
				X:          e.Pos[0],
				Y:          e.Pos[1],
				VX:         e.Vel[0],
				VY:         e.Vel[1],
				Age:        e.Age,
				Entropy:    e.Entropy,
			},
		}
		if e.Memory != nil {
			es.Memory = append([]entity.MemoryRecord(nil), e.Memory.Records...)
		}
		if e.Emotion != nil {
			em := *e.Emotion
			es.Emotion = &em
		}
		if e.Bonds != nil {
			es.Relationships = make(map[string]entity.Bond, e.Bonds.Len())
			for id, b := range e.Bonds.Bonds {
				es.Relationships[id] = b
			}
		}
		if len(e.Needs) > 0 {
			es.NeedLevels = make(map[string]float64, len(e.Needs))
			// Sorted resource order keeps snapshot bytes stable.
			for _, res := range sortedNeedKeys(e.Needs) {
				n := e.Needs[res]
				es.NeedLevels[res] = n.Level
				if n.Critical {
					es.CriticalNeeds = append(es.CriticalNeeds, res)
				}
			}
		}
		snap.Entities = append(snap.Entities, es)
	}

	for _, f := range w.fields {
		snap.ResourceFields = append(snap.ResourceFields, f.ResourceFieldConfig)
	}
	return snap
}

// Restore replaces the world's state from a snapshot, re-binding
// entities to their materials by ID. A material missing from the map is
// an error — dropping entities silently would corrupt determinism.
// Resource fields are self-describing and need no separate lookup.
func (w *World) Restore(snap *Snapshot, materials material.Map) error {
	engSnap := engine.Snapshot{RNGState: snap.RNGState}
	for _, es := range snap.Entities {
		engSnap.Entities = append(engSnap.Entities, es.EntityState)
	}

	restored, err := w.eng.Restore(engSnap, materials)
	if err != nil {
		return fmt.Errorf("world restore: %w", err)
	}

	w.opts.Seed = snap.Seed
	w.opts.Ontology = snap.Ontology
	w.worldTime = snap.WorldTime
	w.tickCount = snap.TickCount
	w.climate = snap.Climate
	w.climate.Recent = append([]collective.Event(nil), snap.Climate.Recent...)
	w.events = append([]Event(nil), snap.Events...)

	w.entities = restored
	w.index = make(map[string]*entity.Entity, len(restored))
	w.materials = make(material.Map)
	w.proximity = w.proximity[:0]
	w.pendingCtx = nil

	for i, e := range restored {
		es := snap.Entities[i]
		mat := materials[e.MaterialID]
		w.materials[mat.ID] = mat
		w.index[e.ID] = e

		if snap.Ontology {
			w.attachOntology(e, mat)
			e.Memory.Records = append([]entity.MemoryRecord(nil), es.Memory...)
			if es.Emotion != nil {
				em := *es.Emotion
				e.Emotion = &em
			}
			for id, b := range es.Relationships {
				e.Bonds.Bonds[id] = b
			}
		}
		for res, level := range es.NeedLevels {
			if n, ok := e.Needs[res]; ok {
				n.Level = level
			}
		}
		for _, res := range es.CriticalNeeds {
			if n, ok := e.Needs[res]; ok {
				n.Critical = true
			}
		}
	}

	w.fields = nil
	for _, cfg := range snap.ResourceFields {
		f := &ResourceField{ResourceFieldConfig: cfg}
		if cfg.Distribution == DistGradient {
			f.noise = opensimplex.NewNormalized(fieldSeed(w.opts.Seed, cfg.ID))
		}
		w.fields = append(w.fields, f)
	}
	return nil
}
