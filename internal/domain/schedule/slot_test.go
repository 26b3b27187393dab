package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"disjoint before", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"touching edges", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"partial overlap", at(9, 0), at(10, 30), at(10, 0), at(11, 0), true},
		{"contained", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// Symmetric.
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Fatalf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCovers(t *testing.T) {
	slot := &models.TimeSlot{StartTime: at(10, 0), EndTime: at(12, 0)}

	if !Covers(slot, at(10, 0), at(12, 0)) {
		t.Fatal("slot must cover its own interval")
	}
	if !Covers(slot, at(10, 30), at(11, 30)) {
		t.Fatal("slot must cover an inner interval")
	}
	if Covers(slot, at(9, 30), at(11, 0)) {
		t.Fatal("interval starting before the slot is not covered")
	}
	if Covers(slot, at(11, 0), at(12, 30)) {
		t.Fatal("interval ending after the slot is not covered")
	}
}

func TestBlock(t *testing.T) {
	slot := &models.TimeSlot{ID: 3, Status: string(StatusAvailable)}

	if err := Block(slot, "vacation"); err != nil {
		t.Fatalf("Block: %v", err)
	}
	if slot.Status != string(StatusBlocked) {
		t.Fatalf("status = %s, want blocked", slot.Status)
	}
	if slot.Notes != "vacation" {
		t.Fatalf("notes = %q", slot.Notes)
	}

	// Blocking again is a no-op.
	if err := Block(slot, ""); err != nil {
		t.Fatalf("second Block: %v", err)
	}

	booked := &models.TimeSlot{ID: 4, Status: string(StatusBooked)}
	err := Block(booked, "")

	var unavailable *SlotUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("blocking a booked slot: err = %v, want SlotUnavailableError", err)
	}
	if booked.Status != string(StatusBooked) {
		t.Fatal("booked slot must not be mutated")
	}
}

func TestUnblock(t *testing.T) {
	slot := &models.TimeSlot{ID: 5, Status: string(StatusBlocked)}

	if err := Unblock(slot); err != nil {
		t.Fatalf("Unblock: %v", err)
	}
	if slot.Status != string(StatusAvailable) {
		t.Fatalf("status = %s, want available", slot.Status)
	}

	if err := Unblock(slot); err != nil {
		t.Fatalf("unblocking an open slot must be a no-op, got %v", err)
	}

	booked := &models.TimeSlot{ID: 6, Status: string(StatusBooked)}
	if err := Unblock(booked); err == nil {
		t.Fatal("unblocking a booked slot must fail")
	}
}
