package services

import (
	"strings"
	"testing"

	"eventim-monitor/models"
)

func TestDiffNoChanges(t *testing.T) {
	snap := models.Snapshot{AvailableStandard: 4, AvailablePremium: 1, Sold: 9}

	if changes := Diff(snap, snap); len(changes) != 0 {
		t.Errorf("Diff of equal snapshots: got %d changes, want 0", len(changes))
	}
}

func TestDiffOneChangePerDifferingCategory(t *testing.T) {
	previous := models.Snapshot{AvailableStandard: 10, AvailablePremium: 3, Sold: 5}
	current := models.Snapshot{AvailableStandard: 8, AvailablePremium: 4, Sold: 6}

	changes := Diff(current, previous)
	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3", len(changes))
	}

	want := []Change{
		{models.AvailableStandard, -2},
		{models.AvailablePremium, 1},
		{models.Sold, 1},
	}
	for i, c := range changes {
		if c != want[i] {
			t.Errorf("change %d: got %+v, want %+v", i, c, want[i])
		}
	}
}

// Previous {5,2,10}, current {3,2,12}: the standard drop reports as a sale,
// premium stays silent, and the rise in sold count must read as tickets
// sold, not as seats becoming available.
func TestDiffSaleScenario(t *testing.T) {
	previous := models.Snapshot{AvailableStandard: 5, AvailablePremium: 2, Sold: 10}
	current := models.Snapshot{AvailableStandard: 3, AvailablePremium: 2, Sold: 12}

	changes := Diff(current, previous)
	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}

	if changes[0].Category != models.AvailableStandard || changes[0].Delta != -2 {
		t.Errorf("first change: got %+v, want available_standard -2", changes[0])
	}
	if msg := changes[0].Message(); !strings.Contains(msg, "sold since last check") {
		t.Errorf("standard drop message %q should report tickets sold", msg)
	}

	if changes[1].Category != models.Sold || changes[1].Delta != 2 {
		t.Errorf("second change: got %+v, want sold +2", changes[1])
	}
	msg := changes[1].Message()
	if strings.Contains(msg, "available") {
		t.Errorf("sold increase message %q must not read as availability", msg)
	}
	if !strings.Contains(msg, "sold") {
		t.Errorf("sold increase message %q should report a sale", msg)
	}
}

func TestChangeMessages(t *testing.T) {
	tests := []struct {
		change Change
		substr string
	}{
		{Change{models.AvailableStandard, 3}, "More Standard (yellow) seats available (+3)"},
		{Change{models.AvailablePremium, -1}, "Premium (red) (-1)"},
		{Change{models.Sold, 4}, "4 new tickets sold"},
		{Change{models.Sold, -2}, "2 seats returned to sale"},
	}

	for _, tt := range tests {
		if msg := tt.change.Message(); !strings.Contains(msg, tt.substr) {
			t.Errorf("Message(%+v) = %q; want substring %q", tt.change, msg, tt.substr)
		}
	}
}
