package schedule

import (
	"fmt"
	"time"
)

// OverlapError rejects a slot whose interval intersects an existing one.
type OverlapError struct {
	MasterID uint
	Start    time.Time
	End      time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"slot overlap for master %d: [%s, %s)",
		e.MasterID,
		e.Start.Format("15:04"),
		e.End.Format("15:04"),
	)
}

// SlotUnavailableError signals a lost booking race or a slot in the wrong
// state for the attempted move. Recoverable: pick another time.
type SlotUnavailableError struct {
	SlotID uint
	Status Status
}

func (e *SlotUnavailableError) Error() string {
	if e.SlotID == 0 {
		return "no available slot for the requested time"
	}
	return fmt.Sprintf("slot %d unavailable (status %s)", e.SlotID, e.Status)
}
