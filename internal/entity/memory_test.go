package entity

import (
	"math"
	"testing"
)

func TestMemoryAddEvictsLowestSalience(t *testing.T) {
	m := NewMemoryBuffer(3, 45, 0.01)
	m.Add(MemoryRecord{Timestamp: 1, Content: "a", Salience: 0.5})
	m.Add(MemoryRecord{Timestamp: 2, Content: "b", Salience: 0.2})
	m.Add(MemoryRecord{Timestamp: 3, Content: "c", Salience: 0.8})
	m.Add(MemoryRecord{Timestamp: 4, Content: "d", Salience: 0.6})

	if m.Len() != 3 {
		t.Fatalf("len = %d, want capacity 3", m.Len())
	}
	for _, rec := range m.Recall(nil) {
		if rec.Content == "b" {
			t.Fatal("lowest-salience record should have been evicted")
		}
	}
}

func TestMemoryAddZeroCapacityDrops(t *testing.T) {
	m := NewMemoryBuffer(0, 45, 0.01)
	m.Add(MemoryRecord{Timestamp: 1, Content: "a", Salience: 0.5})
	m.Add(MemoryRecord{Timestamp: 2, Content: "b", Salience: 0.9})

	if m.Len() != 0 {
		t.Fatalf("len = %d, want 0 for a zero-capacity buffer", m.Len())
	}
}

func TestMemoryAddDropsWeakIncoming(t *testing.T) {
	m := NewMemoryBuffer(2, 45, 0.01)
	m.Add(MemoryRecord{Timestamp: 1, Content: "a", Salience: 0.5})
	m.Add(MemoryRecord{Timestamp: 2, Content: "b", Salience: 0.6})
	m.Add(MemoryRecord{Timestamp: 3, Content: "weak", Salience: 0.1})

	for _, rec := range m.Recall(nil) {
		if rec.Content == "weak" {
			t.Fatal("incoming record weaker than everything should be dropped")
		}
	}
}

func TestMemoryClampsSalience(t *testing.T) {
	m := NewMemoryBuffer(4, 45, 0.01)
	m.Add(MemoryRecord{Salience: 3})
	m.Add(MemoryRecord{Salience: -1})
	recs := m.Recall(nil)
	if recs[0].Salience != 1 {
		t.Errorf("salience = %v, want clamp to 1", recs[0].Salience)
	}
	// The negative one clamps to 0, below the floor, but stays until a
	// decay pass removes it.
	if recs[1].Salience != 0 {
		t.Errorf("salience = %v, want clamp to 0", recs[1].Salience)
	}
}

func TestMemoryDecayMonotonicAndForgets(t *testing.T) {
	m := NewMemoryBuffer(10, 10, 0.01)
	m.Add(MemoryRecord{Timestamp: 0, Content: "x", Salience: 1})

	prev := 1.0
	for i := 0; i < 200 && m.Len() > 0; i++ {
		m.Decay(1)
		if m.Len() == 0 {
			break
		}
		cur := m.Recall(nil)[0].Salience
		if cur > prev {
			t.Fatalf("salience increased during decay: %v -> %v", prev, cur)
		}
		prev = cur
	}
	if m.Len() != 0 {
		t.Fatalf("record never forgotten; salience stuck at %v", prev)
	}
}

func TestMemoryDecayCurve(t *testing.T) {
	m := NewMemoryBuffer(10, 20, 0.0001)
	m.Add(MemoryRecord{Salience: 1})
	m.Decay(20) // one full time constant
	got := m.Recall(nil)[0].Salience
	want := math.Exp(-1)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("salience after tau = %v, want %v", got, want)
	}
}

func TestMemoryRecallOrderAndFilter(t *testing.T) {
	m := NewMemoryBuffer(10, 45, 0.01)
	m.Add(MemoryRecord{Timestamp: 1, Type: "social", Salience: 0.3})
	m.Add(MemoryRecord{Timestamp: 2, Type: "danger", Salience: 0.9})
	m.Add(MemoryRecord{Timestamp: 3, Type: "social", Salience: 0.6})

	all := m.Recall(nil)
	for i := 1; i < len(all); i++ {
		if all[i].Salience > all[i-1].Salience {
			t.Fatalf("recall not salience-descending at %d", i)
		}
	}

	social := m.Recall(func(r MemoryRecord) bool { return r.Type == "social" })
	if len(social) != 2 || social[0].Salience != 0.6 {
		t.Fatalf("filtered recall = %+v", social)
	}
}

func TestMemoryBoostClampsToOne(t *testing.T) {
	m := NewMemoryBuffer(10, 45, 0.01)
	m.Add(MemoryRecord{Subject: "friend", Salience: 0.9})
	n := m.BoostWhere(func(r MemoryRecord) bool { return r.Subject == "friend" }, 0.5)
	if n != 1 {
		t.Fatalf("boosted %d records, want 1", n)
	}
	if got := m.Recall(nil)[0].Salience; got != 1 {
		t.Errorf("boosted salience = %v, want clamp to 1", got)
	}
}
