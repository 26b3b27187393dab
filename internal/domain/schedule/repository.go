package schedule

import (
	"context"
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

type Repository interface {
	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.TimeSlot, error)

	GetSlotForOwner(
		ctx context.Context,
		slotID uint,
		masterID uint,
	) (*models.TimeSlot, error)

	// CreateSlot persists the slot after asserting no interval overlap for
	// the owner; OverlapError on conflict.
	CreateSlot(
		ctx context.Context,
		slot *models.TimeSlot,
	) error

	// FindCoveringAvailable locates an available slot of the master fully
	// containing [start, end); (nil, nil) when there is none.
	FindCoveringAvailable(
		ctx context.Context,
		masterID uint,
		start time.Time,
		end time.Time,
	) (*models.TimeSlot, error)

	// UpdateSlotStatus flips status atomically; SlotUnavailableError when
	// the slot is no longer in the expected state.
	UpdateSlotStatus(
		ctx context.Context,
		slotID uint,
		from Status,
		to Status,
	) error

	// BlockSlot atomically withdraws an open slot, recording the reason;
	// SlotUnavailableError when it is no longer available.
	BlockSlot(
		ctx context.Context,
		slotID uint,
		notes string,
	) error

	ListRange(
		ctx context.Context,
		masterID uint,
		from time.Time,
		to time.Time,
	) ([]models.TimeSlot, error)

	ListAvailableRange(
		ctx context.Context,
		masterID uint,
		from time.Time,
		to time.Time,
	) ([]models.TimeSlot, error)
}
