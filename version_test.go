package bytetape

import (
	"testing"
)

// ===== Probe Tests =====

func TestVersion(t *testing.T) {
	major, minor, patch := Version()
	if major != VersionMajor || minor != VersionMinor || patch != VersionPatch {
		t.Errorf("Version = %d.%d.%d", major, minor, patch)
	}
}

func TestCapabilities(t *testing.T) {
	supported, active := Capabilities()
	if len(supported) == 0 {
		t.Fatal("no supported backends reported")
	}
	if supported[0] != "serial" {
		t.Errorf("baseline backend = %q, want serial first", supported[0])
	}
	found := false
	for _, name := range supported {
		if name == active {
			found = true
		}
	}
	if !found {
		t.Errorf("active backend %q is not in the supported set %v", active, supported)
	}
}

func TestResetCapabilities(t *testing.T) {
	supported, original := Capabilities()
	defer ResetCapabilities(supported...)

	if got := ResetCapabilities("serial"); got != "serial" {
		t.Errorf("ResetCapabilities(serial) chose %q", got)
	}
	// unknown names fall back to the baseline
	if got := ResetCapabilities("neon", "avx2"); got != "serial" {
		t.Errorf("ResetCapabilities(unknown) chose %q", got)
	}
	if got := ResetCapabilities(supported...); got != original {
		t.Errorf("full reset chose %q, want %q", got, original)
	}
}

// ===== Parent Export Tests =====

func TestExportStringLikeTape(t *testing.T) {
	owned := mustStrs(t, []string{"ab", "cd"}, Copy)
	view, err := NewStr(owned)
	if err != nil {
		t.Fatalf("NewStr over tape failed: %v", err)
	}
	if view.String() != "abcd" {
		t.Errorf("tape window = %q, want %q", view.String(), "abcd")
	}
}

func TestExportStringLikeFragmentedRejected(t *testing.T) {
	frag := mustStrs(t, []string{"ab", "cd"}, View)
	if _, err := NewStr(frag); err == nil {
		t.Error("fragmented collections have no contiguous window and must be rejected")
	}
}
