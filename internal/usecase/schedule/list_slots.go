package schedule

import (
	"context"
	"time"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

type ListSlots struct {
	slots domain.Repository
}

func NewListSlots(slots domain.Repository) *ListSlots {
	return &ListSlots{slots: slots}
}

// Execute returns the master's own full calendar for the range.
func (uc *ListSlots) Execute(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.TimeSlot, error) {
	return uc.slots.ListRange(ctx, masterID, from, to)
}

// ExecutePublic returns only open slots, the view clients book from.
func (uc *ListSlots) ExecutePublic(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.TimeSlot, error) {
	return uc.slots.ListAvailableRange(ctx, masterID, from, to)
}
