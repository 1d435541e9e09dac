// Package collective computes population-level aggregates: the emotional
// climate derived from recorded world events, and single-pass statistics
// over the entity population. Everything here is plain value math with no
// lifecycle of its own — the world owns a Climate value and calls in.
package collective

// EventType classifies a recorded population event.
type EventType string

const (
	EventDeath     EventType = "death"
	EventBirth     EventType = "birth"
	EventSuffering EventType = "suffering"
	EventJoy       EventType = "joy"
	EventDiscovery EventType = "discovery"
)

// Event is one recorded occurrence feeding the climate.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp float64   `json:"timestamp"`
	Intensity float64   `json:"intensity"`
}

// Climate is the world-level aggregate emotional state. All four
// dimensions live in [0,1]. Grief and tension decay toward 0; vitality
// and harmony decay toward a neutral midpoint.
type Climate struct {
	Grief    float64 `json:"grief"`
	Vitality float64 `json:"vitality"`
	Tension  float64 `json:"tension"`
	Harmony  float64 `json:"harmony"`

	Recent []Event `json:"recent_events"`
}

// NewClimate returns a climate at rest.
func NewClimate() Climate {
	return Climate{Vitality: 0.5, Harmony: 0.5}
}

// Record appends an event (bounded by maxEvents) and immediately bumps
// the corresponding dimension in proportion to intensity.
func (c *Climate) Record(typ EventType, timestamp, intensity float64, maxEvents int) {
	intensity = clamp(intensity, 0, 1)

	c.Recent = append(c.Recent, Event{Type: typ, Timestamp: timestamp, Intensity: intensity})
	if maxEvents > 0 && len(c.Recent) > maxEvents {
		c.Recent = c.Recent[len(c.Recent)-maxEvents:]
	}

	switch typ {
	case EventDeath:
		c.Grief = clamp(c.Grief+intensity*0.3, 0, 1)
		c.Vitality = clamp(c.Vitality-intensity*0.1, 0, 1)
	case EventBirth:
		c.Vitality = clamp(c.Vitality+intensity*0.3, 0, 1)
		c.Harmony = clamp(c.Harmony+intensity*0.05, 0, 1)
	case EventSuffering:
		c.Tension = clamp(c.Tension+intensity*0.2, 0, 1)
		c.Harmony = clamp(c.Harmony-intensity*0.05, 0, 1)
	case EventJoy:
		c.Harmony = clamp(c.Harmony+intensity*0.2, 0, 1)
		c.Vitality = clamp(c.Vitality+intensity*0.1, 0, 1)
	case EventDiscovery:
		c.Vitality = clamp(c.Vitality+intensity*0.15, 0, 1)
	}
}

// Decay relaxes the climate toward neutral: grief and tension toward 0,
// vitality and harmony toward 0.5.
func (c *Climate) Decay(dt, rate float64) {
	if dt <= 0 {
		return
	}
	f := clamp(rate*dt, 0, 1)
	c.Grief += (0 - c.Grief) * f
	c.Tension += (0 - c.Tension) * f
	c.Vitality += (0.5 - c.Vitality) * f
	c.Harmony += (0.5 - c.Harmony) * f
}

// DescribeClimate maps climate thresholds to a deterministic
// human-readable label. Applicable labels join with " and "; a climate
// matching none reads "neutral".
func DescribeClimate(c Climate) string {
	var labels []string

	switch {
	case c.Grief > 0.6:
		labels = append(labels, "grieving")
	case c.Grief > 0.3:
		labels = append(labels, "melancholic")
	}
	switch {
	case c.Vitality > 0.7:
		labels = append(labels, "vital")
	case c.Vitality < 0.3:
		labels = append(labels, "depleted")
	}
	if c.Tension > 0.6 {
		labels = append(labels, "tense")
	}
	switch {
	case c.Harmony > 0.7:
		labels = append(labels, "harmonious")
	case c.Harmony < 0.3:
		labels = append(labels, "discordant")
	}

	if len(labels) == 0 {
		return "neutral"
	}
	out := labels[0]
	for _, l := range labels[1:] {
		out += " and " + l
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
