// Package weather synthesizes ambient weather for the simulation.
// Conditions are a pure function of the world seed and simulated time,
// so a replayed run sees the same skies. Conditions flatten into the
// context map entity triggers consume.
package weather

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// Noise-space seconds per simulated second. Weather shifts over
// hundreds of ticks, not per tick.
const timeScale = 0.002

// Sky is the qualitative weather state.
type Sky string

const (
	SkyClear  Sky = "clear"
	SkyCloudy Sky = "cloudy"
	SkyRain   Sky = "rain"
	SkyStorm  Sky = "storm"
)

// Conditions holds the weather at one moment of simulated time.
type Conditions struct {
	Temperature float64 `json:"temperature"` // Celsius
	Wind        float64 `json:"wind"`        // m/s
	Sky         Sky     `json:"sky"`
}

// Generator produces deterministic weather from independent noise
// channels for temperature, wind, and sky cover.
type Generator struct {
	temp opensimplex.Noise
	wind opensimplex.Noise
	sky  opensimplex.Noise
}

// NewGenerator creates a weather source for a world seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		temp: opensimplex.NewNormalized(seed),
		wind: opensimplex.NewNormalized(seed + 1),
		sky:  opensimplex.NewNormalized(seed + 2),
	}
}

// At returns the conditions at a simulated time.
func (g *Generator) At(worldTime float64) Conditions {
	t := worldTime * timeScale

	c := Conditions{
		// 4..32 Celsius over the temperature channel.
		Temperature: 4 + 28*g.temp.Eval2(t, 0),
		// 0..18 m/s over the wind channel.
		Wind: 18 * g.wind.Eval2(t, 10),
	}

	cover := g.sky.Eval2(t, 20)
	switch {
	case cover > 0.85 || c.Wind > 15:
		c.Sky = SkyStorm
	case cover > 0.65:
		c.Sky = SkyRain
	case cover > 0.45:
		c.Sky = SkyCloudy
	default:
		c.Sky = SkyClear
	}
	return c
}

// Context flattens the conditions into broadcast keys.
func (c Conditions) Context() map[string]any {
	return map[string]any{
		"temperature": c.Temperature,
		"wind":        c.Wind,
		"weather":     string(c.Sky),
	}
}

// Description renders a short human-readable summary for logs.
func (c Conditions) Description() string {
	return fmt.Sprintf("%s, %.0f°C, wind %.0f m/s", c.Sky, c.Temperature, c.Wind)
}
