package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := writeTuning(t, "force_constant: 0.2\nbond_curve: linear\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.ForceConstant != 0.2 {
		t.Errorf("force_constant = %v, want 0.2", got.ForceConstant)
	}
	if got.BondCurve != "linear" {
		t.Errorf("bond_curve = %q, want linear", got.BondCurve)
	}
	// Unnamed fields keep their defaults.
	if got.ForceCutoff != Default().ForceCutoff {
		t.Errorf("force_cutoff = %v, want default %v", got.ForceCutoff, Default().ForceCutoff)
	}
	if got.MemoryCapacity != Default().MemoryCapacity {
		t.Errorf("memory_capacity = %d, want default %d", got.MemoryCapacity, Default().MemoryCapacity)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown curve":   "bond_curve: parabolic\n",
		"zero cutoff":     "force_cutoff: 0\n",
		"zero memory":     "memory_capacity: 0\n",
		"malformed yaml":  "force_constant: [\n",
		"negative radius": "proximity_radius: -5\n",
	}
	for name, body := range cases {
		if _, err := Load(writeTuning(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
