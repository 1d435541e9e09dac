// Relationship table — per-entity bonds to other entities by ID.
// Bonds strengthen on proximity-driven interaction and decay with time
// since the last interaction. IDs are weak references: a bond may point
// at a despawned entity and is simply pruned on a later decay pass.
package entity

import "math"

// DecayCurve selects how bond strength falls off over idle time.
type DecayCurve uint8

const (
	DecayLinear DecayCurve = iota
	DecayExponential
	DecayLogarithmic
)

// CurveFromName maps a tuning string to a curve, defaulting to
// exponential for unknown names.
func CurveFromName(name string) DecayCurve {
	switch name {
	case "linear":
		return DecayLinear
	case "logarithmic":
		return DecayLogarithmic
	default:
		return DecayExponential
	}
}

// bondFloor is the strength below which a bond counts as dead. Without
// it exponential decay would approach zero forever and never prune.
const bondFloor = 1e-3

// Bond is one directed relationship.
type Bond struct {
	Strength        float64 `json:"strength"`         // [0,1]
	LastInteraction float64 `json:"last_interaction"` // world time
}

// BondTable holds all of one entity's outgoing bonds.
type BondTable struct {
	Initial float64         `json:"initial"` // strength for a brand-new bond
	Rate    float64         `json:"rate"`    // decay rate per simulated second
	Curve   DecayCurve      `json:"curve"`
	Grace   float64         `json:"grace"` // idle seconds before a dead bond is pruned
	Bonds   map[string]Bond `json:"bonds"`
}

// NewBondTable creates an empty table.
func NewBondTable(initial, rate float64, curve DecayCurve, grace float64) *BondTable {
	return &BondTable{
		Initial: initial,
		Rate:    rate,
		Curve:   curve,
		Grace:   grace,
		Bonds:   make(map[string]Bond),
	}
}

// Reinforce strengthens the bond to otherID, creating it at the initial
// strength if absent, and stamps the interaction time.
func (t *BondTable) Reinforce(otherID string, amount, now float64) {
	b, ok := t.Bonds[otherID]
	if !ok {
		b = Bond{Strength: t.Initial}
	}
	b.Strength = clamp(b.Strength+amount, 0, 1)
	b.LastInteraction = now
	t.Bonds[otherID] = b
}

// Decay weakens every bond based on elapsed time since its last
// interaction, then prunes bonds that have sat at zero strength past the
// grace period. Decay(0, now) leaves strengths unchanged.
func (t *BondTable) Decay(dt, now float64) {
	if dt <= 0 {
		return
	}
	for id, b := range t.Bonds {
		idle := now - b.LastInteraction
		if idle < 0 {
			idle = 0
		}

		switch t.Curve {
		case DecayLinear:
			b.Strength -= t.Rate * dt
		case DecayLogarithmic:
			// Older bonds fade slower: long-lived relationships persist.
			b.Strength -= t.Rate * dt / (1 + math.Log1p(idle))
		default: // exponential
			b.Strength *= math.Exp(-t.Rate * dt)
		}

		if b.Strength <= bondFloor {
			b.Strength = 0
			if idle > t.Grace {
				delete(t.Bonds, id)
				continue
			}
		}
		t.Bonds[id] = b
	}
}

// Strength returns the bond strength to otherID, or 0 if absent.
func (t *BondTable) Strength(otherID string) float64 {
	return t.Bonds[otherID].Strength
}

// Remove drops the bond to otherID if present.
func (t *BondTable) Remove(otherID string) {
	delete(t.Bonds, otherID)
}

// Len returns the number of live bonds.
func (t *BondTable) Len() int {
	return len(t.Bonds)
}
