// Memory buffer — a bounded, time-decaying event log per entity.
// Salience follows an Ebbinghaus-style forgetting curve and recall is
// ordered most-salient-first, so consumers can sample top-k memories.
package entity

import (
	"math"
	"sort"
)

// MemoryRecord is one remembered event.
type MemoryRecord struct {
	Timestamp float64 `json:"timestamp"` // world time when recorded
	Type      string  `json:"type"`
	Subject   string  `json:"subject"`
	Content   string  `json:"content"`
	Salience  float64 `json:"salience"` // [0,1], decays over time
}

// MemoryBuffer holds an entity's memories, capped at a fixed capacity.
type MemoryBuffer struct {
	Capacity int            `json:"capacity"`
	Tau      float64        `json:"tau"`   // decay time constant, simulated seconds
	Floor    float64        `json:"floor"` // entries below this are forgotten
	Records  []MemoryRecord `json:"records"`
}

// NewMemoryBuffer creates an empty buffer.
func NewMemoryBuffer(capacity int, tau, floor float64) *MemoryBuffer {
	return &MemoryBuffer{Capacity: capacity, Tau: tau, Floor: floor}
}

// Add inserts a record, clamping salience to [0,1]. When the buffer is
// full the lowest-salience entry is evicted first (oldest on ties); the
// incoming record is dropped instead if it is the weakest of all.
func (m *MemoryBuffer) Add(rec MemoryRecord) {
	if m.Capacity <= 0 {
		return
	}
	rec.Salience = clamp(rec.Salience, 0, 1)

	if len(m.Records) < m.Capacity {
		m.Records = append(m.Records, rec)
		return
	}

	minIdx := 0
	for i := 1; i < len(m.Records); i++ {
		if m.Records[i].Salience < m.Records[minIdx].Salience ||
			(m.Records[i].Salience == m.Records[minIdx].Salience &&
				m.Records[i].Timestamp < m.Records[minIdx].Timestamp) {
			minIdx = i
		}
	}
	if rec.Salience > m.Records[minIdx].Salience {
		m.Records[minIdx] = rec
	}
}

// Decay reduces every record's salience by exp(-dt/tau) and forgets
// records that fall below the floor. Salience never increases here.
func (m *MemoryBuffer) Decay(dt float64) {
	if dt <= 0 || len(m.Records) == 0 {
		return
	}
	factor := math.Exp(-dt / m.Tau)

	kept := m.Records[:0]
	for _, rec := range m.Records {
		rec.Salience *= factor
		if rec.Salience >= m.Floor {
			kept = append(kept, rec)
		}
	}
	m.Records = kept
}

// Recall returns copies of records matching the optional filter, ordered
// by salience descending (recency breaks ties). A nil filter matches all.
func (m *MemoryBuffer) Recall(filter func(MemoryRecord) bool) []MemoryRecord {
	out := make([]MemoryRecord, 0, len(m.Records))
	for _, rec := range m.Records {
		if filter == nil || filter(rec) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Salience != out[j].Salience {
			return out[i].Salience > out[j].Salience
		}
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// BoostWhere raises the salience of every record matching the predicate,
// clamped to 1. Used when an incoming event reinforces an existing memory
// rather than creating a new one. Returns the number of records boosted.
func (m *MemoryBuffer) BoostWhere(match func(MemoryRecord) bool, amount float64) int {
	boosted := 0
	for i := range m.Records {
		if match(m.Records[i]) {
			m.Records[i].Salience = clamp(m.Records[i].Salience+amount, 0, 1)
			boosted++
		}
	}
	return boosted
}

// Len returns the number of live records.
func (m *MemoryBuffer) Len() int {
	return len(m.Records)
}
