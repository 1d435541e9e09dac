// Resource needs — per-entity fulfillment levels that deplete over time
// and push emotion when they cross their critical threshold.
package entity

import "github.com/talgya/soulfield/internal/material"

// Need tracks one resource dependency declared by the entity's material.
type Need struct {
	Resource          string                `json:"resource"`
	Level             float64               `json:"level"` // [0,1]
	DepletionRate     float64               `json:"depletion_rate"`
	CriticalThreshold float64               `json:"critical_threshold"`
	Impact            material.EmotionDelta `json:"impact"`
	Critical          bool                  `json:"critical"`
}

// NewNeed builds a Need from its declaration.
func NewNeed(decl material.ResourceNeed) *Need {
	return &Need{
		Resource:          decl.ID,
		Level:             decl.StartLevel(),
		DepletionRate:     decl.DepletionRate,
		CriticalThreshold: decl.CriticalThreshold,
		Impact:            decl.EmotionalImpact,
	}
}

// Deplete lowers the level by the declared rate over dt and reports
// whether the level crossed into the critical band this call. Crossing
// is edge-triggered: the emotional impact fires once, not every tick.
func (n *Need) Deplete(dt float64) (crossed bool) {
	if dt <= 0 {
		return false
	}
	n.Level = clamp(n.Level-n.DepletionRate*dt, 0, 1)
	if !n.Critical && n.Level <= n.CriticalThreshold {
		n.Critical = true
		return true
	}
	return false
}

// Satisfy raises the level and clears the critical flag once the level
// is safely back above the threshold.
func (n *Need) Satisfy(amount float64) {
	n.Level = clamp(n.Level+amount, 0, 1)
	if n.Critical && n.Level > n.CriticalThreshold {
		n.Critical = false
	}
}
