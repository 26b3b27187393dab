package schedule

import (
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// ===============================
// Slot Status
// ===============================

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusBlocked   Status = "blocked"
)

// Overlaps reports whether [start, end) intersects [otherStart, otherEnd).
func Overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return start.Before(otherEnd) && end.After(otherStart)
}

// Covers reports whether the slot fully contains [start, end).
func Covers(slot *models.TimeSlot, start, end time.Time) bool {
	return !start.Before(slot.StartTime) && !end.After(slot.EndTime)
}

// ===============================
// Manual withdrawal
// ===============================

// Block withdraws an open slot from booking. A booked slot cannot be pulled
// out from under its order; the order must be cancelled first.
func Block(slot *models.TimeSlot, notes string) error {
	switch Status(slot.Status) {
	case StatusBlocked:
		return nil
	case StatusBooked:
		return &SlotUnavailableError{SlotID: slot.ID, Status: Status(slot.Status)}
	}

	slot.Status = string(StatusBlocked)
	if notes != "" {
		slot.Notes = notes
	}
	return nil
}

func Unblock(slot *models.TimeSlot) error {
	switch Status(slot.Status) {
	case StatusAvailable:
		return nil
	case StatusBooked:
		return &SlotUnavailableError{SlotID: slot.ID, Status: Status(slot.Status)}
	}

	slot.Status = string(StatusAvailable)
	return nil
}
