package status

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/opsview/internal/config"
)

func TestDefaultTable_IsTotalAndDeterministic(t *testing.T) {
	m := NewMapper(nil)
	for _, entry := range DefaultTable() {
		first := m.Display(entry.Code)
		second := m.Display(entry.Code)
		if first != second {
			t.Fatalf("Display(%q) not deterministic: %#v vs %#v", entry.Code, first, second)
		}
		if !first.Known || first.Label != entry.Label || string(first.Icon) != entry.Icon {
			t.Fatalf("Display(%q) = %#v, want %q/%q", entry.Code, first, entry.Label, entry.Icon)
		}
	}
}

func TestMapper_UnknownCodesFallBack(t *testing.T) {
	m := NewMapper(nil)
	for _, code := range []string{"XX", "", "  ", "COMPLETE", "pending_review"} {
		if got := m.LabelFor(code); got != FallbackLabel {
			t.Fatalf("LabelFor(%q) = %q, want %q", code, got, FallbackLabel)
		}
		if got := m.IconFor(code); got != IconUnknown {
			t.Fatalf("IconFor(%q) = %q, want %q", code, got, IconUnknown)
		}
		if m.Display(code).Known {
			t.Fatalf("Display(%q).Known = true, want false", code)
		}
	}
}

func TestMapper_NormalizesCodes(t *testing.T) {
	m := NewMapper(nil)
	if got := m.LabelFor("  completed "); got != "Completed" {
		t.Fatalf("LabelFor(completed) = %q, want Completed", got)
	}
	if got := m.IconFor("Pending"); got != IconPending {
		t.Fatalf("IconFor(Pending) = %q, want %q", got, IconPending)
	}
}

func TestNewMapper_ConfiguredTableReplacesDefaults(t *testing.T) {
	m := NewMapper([]config.StatusEntry{
		{Code: "SETTLED", Label: "Settled", Icon: "check_circle"},
		{Code: "ON_HOLD"},
		{Code: "settled", Label: "Duplicate"},
		{Code: " "},
	})

	if diff := cmp.Diff([]string{"SETTLED", "ON_HOLD"}, m.Codes()); diff != "" {
		t.Fatalf("Codes mismatch (-want +got):\n%s", diff)
	}
	if got := m.Display("settled"); got != (Display{Label: "Settled", Icon: IconCompleted, Known: true}) {
		t.Fatalf("Display(settled) = %#v", got)
	}
	if got := m.Display("ON_HOLD"); got != (Display{Label: "On Hold", Icon: IconUnknown, Known: true}) {
		t.Fatalf("Display(ON_HOLD) = %#v, want derived label and fallback icon", got)
	}
	if got := m.LabelFor("COMPLETED"); got != FallbackLabel {
		t.Fatalf("LabelFor(COMPLETED) = %q, want fallback once table is configured", got)
	}
}

func TestNilMapperFallsBack(t *testing.T) {
	var m *Mapper
	if got := m.Display("COMPLETED"); got.Label != FallbackLabel || got.Icon != IconUnknown {
		t.Fatalf("nil Display = %#v, want fallback", got)
	}
	if m.Codes() != nil {
		t.Fatalf("nil Codes should be nil")
	}
}

func TestCodesReturnsCopy(t *testing.T) {
	m := NewMapper(nil)
	codes := m.Codes()
	codes[0] = "MUTATED"
	if m.Codes()[0] != "PENDING" {
		t.Fatalf("Codes should return a copy")
	}
}
