package order

import (
	"errors"
	"fmt"
	"time"
)

// ErrConcurrentUpdate is returned by guarded persistence when the order
// changed status between load and save. The competing event already won.
var ErrConcurrentUpdate = errors.New("order: concurrent status update")

type InvalidTransitionError struct {
	Event Event
	From  Status
	Role  Role
}

func (e *InvalidTransitionError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("invalid transition: %s from %s by %s", e.Event, e.From, e.Role)
	}
	return fmt.Sprintf("invalid transition: %s from %s", e.Event, e.From)
}

type CompletionWindowError struct {
	ConfirmedTime time.Time
	Now           time.Time
	TooEarly      bool
}

func (e *CompletionWindowError) Error() string {
	if e.TooEarly {
		return fmt.Sprintf("completion window not open: confirmed for %s", e.ConfirmedTime.Format(time.RFC3339))
	}
	return fmt.Sprintf("completion window closed: confirmed for %s", e.ConfirmedTime.Format(time.RFC3339))
}

type RatingError struct {
	Rating int
}

func (e *RatingError) Error() string {
	return fmt.Sprintf("rating out of range: %d", e.Rating)
}

// ErrAlreadyRated guards the single permitted rating write on a completed
// order.
var ErrAlreadyRated = errors.New("order: already rated")
