package collective

import "testing"

func TestDescribeClimateThresholds(t *testing.T) {
	cases := []struct {
		name    string
		climate Climate
		want    string
	}{
		{"grieving", Climate{Grief: 0.7, Vitality: 0.5, Tension: 0.2, Harmony: 0.5}, "grieving"},
		{"vital and harmonious", Climate{Grief: 0, Vitality: 0.8, Tension: 0, Harmony: 0.8}, "vital and harmonious"},
		{"neutral", Climate{Grief: 0, Vitality: 0.5, Tension: 0, Harmony: 0.5}, "neutral"},
		{"melancholic", Climate{Grief: 0.4, Vitality: 0.5, Tension: 0, Harmony: 0.5}, "melancholic"},
		{"depleted", Climate{Vitality: 0.1, Harmony: 0.5}, "depleted"},
		{"tense and discordant", Climate{Vitality: 0.5, Tension: 0.9, Harmony: 0.1}, "tense and discordant"},
		{"grieving and tense", Climate{Grief: 0.9, Vitality: 0.5, Tension: 0.7, Harmony: 0.5}, "grieving and tense"},
	}
	for _, tc := range cases {
		if got := DescribeClimate(tc.climate); got != tc.want {
			t.Errorf("%s: DescribeClimate = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestClimateRecordBumpsAndBounds(t *testing.T) {
	c := NewClimate()

	prev := c.Grief
	for i := 0; i < 10; i++ {
		c.Record(EventDeath, float64(i), 0.8, 32)
		if c.Grief < prev {
			t.Fatalf("grief decreased on death event: %v -> %v", prev, c.Grief)
		}
		prev = c.Grief
	}
	if c.Grief > 1 {
		t.Errorf("grief exceeded 1: %v", c.Grief)
	}

	c.Record(EventSuffering, 11, 2.5, 32) // over-range intensity clamps
	if c.Tension > 1 {
		t.Errorf("tension exceeded 1: %v", c.Tension)
	}
}

func TestClimateRecentEventsBounded(t *testing.T) {
	c := NewClimate()
	for i := 0; i < 100; i++ {
		c.Record(EventJoy, float64(i), 0.1, 32)
	}
	if len(c.Recent) != 32 {
		t.Errorf("recent events = %d, want cap 32", len(c.Recent))
	}
	if c.Recent[len(c.Recent)-1].Timestamp != 99 {
		t.Error("cap should keep the newest events")
	}
}

func TestClimateDecayTowardNeutral(t *testing.T) {
	c := Climate{Grief: 1, Tension: 1, Vitality: 1, Harmony: 0}
	for i := 0; i < 2000; i++ {
		c.Decay(1, 0.01)
	}
	if c.Grief > 0.01 || c.Tension > 0.01 {
		t.Errorf("grief/tension did not decay toward 0: %v / %v", c.Grief, c.Tension)
	}
	if c.Vitality < 0.49 || c.Vitality > 0.51 || c.Harmony < 0.49 || c.Harmony > 0.51 {
		t.Errorf("vitality/harmony did not settle at 0.5: %v / %v", c.Vitality, c.Harmony)
	}
}
