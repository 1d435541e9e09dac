// Physical snapshot — enough state to resume an identical trajectory:
// every entity's spatial/physical fields plus the RNG internals.
package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/talgya/soulfield/internal/entity"
	"github.com/talgya/soulfield/internal/material"
)

// EntityState is the persisted physical state of one entity.
type EntityState struct {
	ID         string  `json:"id"`
	MaterialID string  `json:"material_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	Age        uint64  `json:"age"`
	Entropy    float64 `json:"entropy"`
}

// Snapshot is the engine's contribution to a world snapshot.
type Snapshot struct {
	RNGState uint64        `json:"rng_state"`
	Entities []EntityState `json:"entities"`
}

// Snapshot captures the physical state of the given entities in slice
// order, which is also the deterministic iteration order.
func (e *Engine) Snapshot(entities []*entity.Entity) Snapshot {
	snap := Snapshot{
		RNGState: e.rng.State(),
		Entities: make([]EntityState, 0, len(entities)),
	}
	for _, ent := range entities {
		snap.Entities = append(snap.Entities, EntityState{
			ID:         ent.ID,
			MaterialID: ent.MaterialID,
			X:          ent.Pos[0],
			Y:          ent.Pos[1],
			VX:         ent.Vel[0],
			VY:         ent.Vel[1],
			Age:        ent.Age,
			Entropy:    ent.Entropy,
		})
	}
	return snap
}

// Restore rebuilds entities from a snapshot, re-binding each to its
// material by ID. A material missing from the map is an error — dropping
// entities silently would corrupt the determinism guarantee.
func (e *Engine) Restore(snap Snapshot, materials material.Map) ([]*entity.Entity, error) {
	e.rng.Restore(snap.RNGState)

	out := make([]*entity.Entity, 0, len(snap.Entities))
	for _, st := range snap.Entities {
		mat, ok := materials[st.MaterialID]
		if !ok {
			return nil, fmt.Errorf("restore entity %s: unknown material %q", st.ID, st.MaterialID)
		}
		mass, friction, bounce := mat.ResolvedPhysics()

		ent := &entity.Entity{
			ID:         st.ID,
			MaterialID: st.MaterialID,
			Pos:        mgl64.Vec2{st.X, st.Y},
			Vel:        mgl64.Vec2{st.VX, st.VY},
			Mass:       mass,
			Friction:   friction,
			Bounce:     bounce,
			Entropy:    st.Entropy,
			Age:        st.Age,
			Triggers:   mat.Triggers,
		}
		if mat.Needs != nil && len(mat.Needs.Resources) > 0 {
			// Fresh needs from the declaration; the owning world layers
			// persisted levels on top.
			ent.Needs = make(map[string]*entity.Need, len(mat.Needs.Resources))
			for _, decl := range mat.Needs.Resources {
				ent.Needs[decl.ID] = entity.NewNeed(decl)
			}
		}
		out = append(out, ent)
	}
	return out, nil
}
