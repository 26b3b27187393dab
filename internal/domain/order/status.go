package order

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending             Status = "pending"
	StatusConfirmed           Status = "confirmed"
	StatusAlternativeProposed Status = "alternative_proposed"
	StatusDeclined            Status = "declined"
	StatusTimeout             Status = "timeout"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// IsTerminal reports whether no further transition can leave the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusTimeout, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Events & Roles
// ===============================

type Event string

const (
	EventConfirm            Event = "confirm"
	EventProposeAlternative Event = "propose_alternative"
	EventDecline            Event = "decline"
	EventResponseTimeout    Event = "response_timeout"
	EventCancel             Event = "cancel"
	EventAcceptProposed     Event = "accept_proposed"
	EventComplete           Event = "complete"
)

type Role string

const (
	RoleClient Role = "client"
	RoleMaster Role = "master"
	RoleSystem Role = "system"
)

type Actor struct {
	ID   uint
	Role Role
}

var System = Actor{Role: RoleSystem}

// ===============================
// Transition table
// ===============================

type transition struct {
	to     Status
	actors []Role
}

// transitions is the single source of truth for the order lifecycle.
// Handlers and "can I do X" checks all answer through it; nothing
// re-derives the rules elsewhere.
var transitions = map[Status]map[Event]transition{
	StatusPending: {
		EventConfirm:            {to: StatusConfirmed, actors: []Role{RoleMaster}},
		EventProposeAlternative: {to: StatusAlternativeProposed, actors: []Role{RoleMaster}},
		EventDecline:            {to: StatusDeclined, actors: []Role{RoleMaster}},
		EventResponseTimeout:    {to: StatusTimeout, actors: []Role{RoleSystem}},
		EventCancel:             {to: StatusCancelled, actors: []Role{RoleClient}},
	},
	StatusAlternativeProposed: {
		EventAcceptProposed: {to: StatusConfirmed, actors: []Role{RoleClient}},
		EventCancel:         {to: StatusCancelled, actors: []Role{RoleClient}},
	},
	StatusConfirmed: {
		EventCancel:   {to: StatusCancelled, actors: []Role{RoleClient, RoleMaster}},
		EventComplete: {to: StatusCompleted, actors: []Role{RoleClient, RoleMaster}},
	},
}

// Can validates an event against the transition table without applying it.
// It returns the destination status, or InvalidTransitionError.
func Can(from Status, ev Event, role Role) (Status, error) {
	tr, ok := transitions[from][ev]
	if !ok {
		return "", &InvalidTransitionError{Event: ev, From: from}
	}
	for _, r := range tr.actors {
		if r == role {
			return tr.to, nil
		}
	}
	return "", &InvalidTransitionError{Event: ev, From: from, Role: role}
}

// AllowedEvents lists the events the given role could fire from a status.
// Time-based guards (completion window, response deadline) are checked at
// apply time, not here.
func AllowedEvents(from Status, role Role) []Event {
	var evs []Event
	for ev := range transitions[from] {
		if _, err := Can(from, ev, role); err == nil {
			evs = append(evs, ev)
		}
	}
	return evs
}

// CanBookAgain reports whether a fresh order may be placed for the same
// service once this one is over. Rebooking is always a new order.
func CanBookAgain(s Status) bool {
	return s.IsTerminal()
}
