// Broadcast context — the extension point for external collaborators
// (sensor bridges, chat layers) to push pre-computed signals into the
// simulation between ticks. Values are routed through each entity's
// trigger rules, which were compiled from its material descriptor at
// spawn; nothing here parses strings in the tick path.
package world

import "github.com/talgya/soulfield/internal/material"

// BroadcastContext queues a flat key→value map for the next Mental
// phase. Calling again before the next tick replaces the pending map.
// Values may be strings or any Go integer or float type.
func (w *World) BroadcastContext(ctx map[string]any) {
	if len(ctx) == 0 {
		return
	}
	cp := make(map[string]any, len(ctx))
	for k, v := range ctx {
		cp[k] = v
	}
	w.pendingCtx = cp
}

func triggerMatches(tr material.Trigger, ctx map[string]any) bool {
	v, ok := ctx[tr.Key]
	if !ok {
		return false
	}

	switch tr.Op {
	case material.OpEqual:
		if s, isStr := v.(string); isStr {
			return s == tr.Match
		}
		f, numeric := toFloat(v)
		return numeric && f == tr.Value
	case material.OpGreater:
		f, numeric := toFloat(v)
		return numeric && f > tr.Value
	case material.OpLess:
		f, numeric := toFloat(v)
		return numeric && f < tr.Value
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
