package order

import (
	"errors"
	"testing"
)

func TestCan_AllowedTransitions(t *testing.T) {
	cases := []struct {
		name string
		from Status
		ev   Event
		role Role
		want Status
	}{
		{"master confirms pending", StatusPending, EventConfirm, RoleMaster, StatusConfirmed},
		{"master proposes alternative", StatusPending, EventProposeAlternative, RoleMaster, StatusAlternativeProposed},
		{"master declines pending", StatusPending, EventDecline, RoleMaster, StatusDeclined},
		{"system times out pending", StatusPending, EventResponseTimeout, RoleSystem, StatusTimeout},
		{"client cancels pending", StatusPending, EventCancel, RoleClient, StatusCancelled},
		{"client accepts proposed", StatusAlternativeProposed, EventAcceptProposed, RoleClient, StatusConfirmed},
		{"client cancels proposed", StatusAlternativeProposed, EventCancel, RoleClient, StatusCancelled},
		{"client cancels confirmed", StatusConfirmed, EventCancel, RoleClient, StatusCancelled},
		{"master cancels confirmed", StatusConfirmed, EventCancel, RoleMaster, StatusCancelled},
		{"client completes confirmed", StatusConfirmed, EventComplete, RoleClient, StatusCompleted},
		{"master completes confirmed", StatusConfirmed, EventComplete, RoleMaster, StatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Can(tc.from, tc.ev, tc.role)
			if err != nil {
				t.Fatalf("Can(%s, %s, %s): %v", tc.from, tc.ev, tc.role, err)
			}
			if got != tc.want {
				t.Fatalf("Can(%s, %s, %s) = %s, want %s", tc.from, tc.ev, tc.role, got, tc.want)
			}
		})
	}
}

func TestCan_RejectedTransitions(t *testing.T) {
	cases := []struct {
		name string
		from Status
		ev   Event
		role Role
	}{
		{"client cannot confirm", StatusPending, EventConfirm, RoleClient},
		{"master cannot cancel pending", StatusPending, EventCancel, RoleMaster},
		{"master cannot accept own proposal", StatusAlternativeProposed, EventAcceptProposed, RoleMaster},
		{"cannot confirm proposed", StatusAlternativeProposed, EventConfirm, RoleMaster},
		{"cannot decline confirmed", StatusConfirmed, EventDecline, RoleMaster},
		{"timeout only from pending", StatusConfirmed, EventResponseTimeout, RoleSystem},
		{"declined is terminal", StatusDeclined, EventConfirm, RoleMaster},
		{"cancelled is terminal", StatusCancelled, EventComplete, RoleClient},
		{"completed is terminal", StatusCompleted, EventCancel, RoleClient},
		{"timeout is terminal", StatusTimeout, EventAcceptProposed, RoleClient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Can(tc.from, tc.ev, tc.role)

			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("Can(%s, %s, %s) = %v, want InvalidTransitionError", tc.from, tc.ev, tc.role, err)
			}
		})
	}
}

func TestAllowedEvents(t *testing.T) {
	has := func(evs []Event, ev Event) bool {
		for _, e := range evs {
			if e == ev {
				return true
			}
		}
		return false
	}

	master := AllowedEvents(StatusPending, RoleMaster)
	if len(master) != 3 {
		t.Fatalf("master pending events = %v, want 3", master)
	}
	for _, ev := range []Event{EventConfirm, EventProposeAlternative, EventDecline} {
		if !has(master, ev) {
			t.Fatalf("master pending events %v missing %s", master, ev)
		}
	}

	client := AllowedEvents(StatusPending, RoleClient)
	if len(client) != 1 || client[0] != EventCancel {
		t.Fatalf("client pending events = %v, want [cancel]", client)
	}

	if evs := AllowedEvents(StatusDeclined, RoleClient); len(evs) != 0 {
		t.Fatalf("declined events = %v, want none", evs)
	}
}

func TestTerminalAndRebooking(t *testing.T) {
	terminal := []Status{StatusDeclined, StatusTimeout, StatusCompleted, StatusCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
		if !CanBookAgain(s) {
			t.Fatalf("expected rebooking to open from %s", s)
		}
	}

	open := []Status{StatusPending, StatusAlternativeProposed, StatusConfirmed}
	for _, s := range open {
		if s.IsTerminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
		if CanBookAgain(s) {
			t.Fatalf("expected rebooking to stay closed from %s", s)
		}
	}
}
