package order

import (
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Each action validates against the transition table, then mutates the
// record in memory. Persistence (with its own status guard) is the
// caller's job.

// Confirm accepts the requested time as-is. The price is frozen here.
func Confirm(o *models.Order, price float64, now time.Time) error {
	next, err := Can(Status(o.Status), EventConfirm, RoleMaster)
	if err != nil {
		return err
	}

	confirmed := o.RequestedTime
	o.Status = string(next)
	o.ConfirmedTime = &confirmed
	o.MasterRespondedAt = &now
	o.Price = price
	return nil
}

// ProposeAlternative offers the client a different time. The hold on the
// requested slot is no longer justified; the caller releases it.
func ProposeAlternative(o *models.Order, newTime time.Time, notes string, now time.Time) error {
	next, err := Can(Status(o.Status), EventProposeAlternative, RoleMaster)
	if err != nil {
		return err
	}

	o.Status = string(next)
	o.ProposedTime = &newTime
	o.MasterRespondedAt = &now
	if notes != "" {
		o.MasterNotes = notes
	}
	o.SlotID = nil
	return nil
}

func Decline(o *models.Order, notes string, now time.Time) error {
	next, err := Can(Status(o.Status), EventDecline, RoleMaster)
	if err != nil {
		return err
	}

	o.Status = string(next)
	o.MasterRespondedAt = &now
	if notes != "" {
		o.MasterNotes = notes
	}
	o.SlotID = nil
	return nil
}

// AcceptProposed books the master's counter-offer. The caller must have
// reserved the slot at the proposed time before persisting; price freezes
// here, same as Confirm.
func AcceptProposed(o *models.Order, price float64, now time.Time) error {
	next, err := Can(Status(o.Status), EventAcceptProposed, RoleClient)
	if err != nil {
		return err
	}

	o.Status = string(next)
	o.ConfirmedTime = o.ProposedTime
	o.Price = price
	return nil
}

func Cancel(o *models.Order, role Role, now time.Time) error {
	next, err := Can(Status(o.Status), EventCancel, role)
	if err != nil {
		return err
	}

	o.Status = string(next)
	o.CancelledAt = &now
	o.CancelledBy = string(role)
	o.SlotID = nil
	return nil
}

// Timeout fires the response deadline. Re-evaluating an order that already
// timed out is a no-op, not an error.
func Timeout(o *models.Order, now time.Time) error {
	if Status(o.Status) == StatusTimeout {
		return nil
	}

	next, err := Can(Status(o.Status), EventResponseTimeout, RoleSystem)
	if err != nil {
		return err
	}

	o.Status = string(next)
	o.SlotID = nil
	return nil
}

// Expired reports whether the response deadline has passed on a still
// pending order.
func Expired(o *models.Order, now time.Time) bool {
	return Status(o.Status) == StatusPending && now.After(o.RespondBy)
}

// Complete marks the appointment as rendered. Only allowed while now sits
// inside [confirmedTime, confirmedTime+window].
func Complete(o *models.Order, role Role, notes string, rating *int, window time.Duration, now time.Time) error {
	next, err := Can(Status(o.Status), EventComplete, role)
	if err != nil {
		return err
	}

	if o.ConfirmedTime == nil {
		return &InvalidTransitionError{Event: EventComplete, From: Status(o.Status)}
	}
	if now.Before(*o.ConfirmedTime) {
		return &CompletionWindowError{ConfirmedTime: *o.ConfirmedTime, Now: now, TooEarly: true}
	}
	if now.After(o.ConfirmedTime.Add(window)) {
		return &CompletionWindowError{ConfirmedTime: *o.ConfirmedTime, Now: now}
	}

	if rating != nil {
		if err := validRating(*rating); err != nil {
			return err
		}
		o.Rating = rating
	}

	o.Status = string(next)
	o.CompletedAt = &now
	o.CompletedBy = string(role)
	if notes != "" {
		if role == RoleMaster {
			o.MasterNotes = notes
		} else {
			o.ClientNotes = notes
		}
	}
	o.SlotID = nil
	return nil
}

// Rate is the single post-completion write a terminal order still accepts.
func Rate(o *models.Order, rating int) error {
	if Status(o.Status) != StatusCompleted {
		return &InvalidTransitionError{Event: "rate", From: Status(o.Status)}
	}
	if o.Rating != nil {
		return ErrAlreadyRated
	}
	if err := validRating(rating); err != nil {
		return err
	}
	o.Rating = &rating
	return nil
}

func validRating(r int) error {
	if r < 1 || r > 5 {
		return &RatingError{Rating: r}
	}
	return nil
}
