package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// Coordinator mediates between concurrent orders and one master's calendar.
// It binds slot reservation to the order transition: both land or neither
// does.
type Coordinator struct {
	slots  schedule.Repository
	locker Locker
	log    *zap.Logger
}

func NewCoordinator(slots schedule.Repository, locker Locker, log *zap.Logger) *Coordinator {
	return &Coordinator{
		slots:  slots,
		locker: locker,
		log:    log,
	}
}

func leaseKey(masterID uint, day time.Time) string {
	return fmt.Sprintf("sched:%d:%s", masterID, day.Format("2006-01-02"))
}

// ReserveFor finds an available slot fully covering [start, end), reserves
// it, and runs commit with its id. If commit fails the reservation is
// rolled back, so a failed order never strands a booked slot.
func (c *Coordinator) ReserveFor(
	ctx context.Context,
	masterID uint,
	start time.Time,
	end time.Time,
	commit func(slot *models.TimeSlot) error,
) (*models.TimeSlot, error) {

	release, err := c.locker.Acquire(ctx, leaseKey(masterID, start))
	if err != nil {
		return nil, err
	}
	defer release()

	slot, err := c.slots.FindCoveringAvailable(ctx, masterID, start, end)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, &schedule.SlotUnavailableError{}
	}

	if err := c.slots.UpdateSlotStatus(
		ctx,
		slot.ID,
		schedule.StatusAvailable,
		schedule.StatusBooked,
	); err != nil {
		return nil, err
	}
	slot.Status = string(schedule.StatusBooked)

	if commit != nil {
		if err := commit(slot); err != nil {
			c.rollback(slot.ID)
			return nil, err
		}
	}

	return slot, nil
}

// Release returns a booked slot to the pool. Releasing an already
// available slot is a reported no-op; any other state is an error.
func (c *Coordinator) Release(ctx context.Context, slotID uint) error {
	err := c.slots.UpdateSlotStatus(
		ctx,
		slotID,
		schedule.StatusBooked,
		schedule.StatusAvailable,
	)
	if err == nil {
		return nil
	}

	var unavailable *schedule.SlotUnavailableError
	if errors.As(err, &unavailable) && unavailable.Status == schedule.StatusAvailable {
		c.log.Debug("slot already released", zap.Uint("slot_id", slotID))
		return nil
	}
	return err
}

// rollback restores a slot the Coordinator itself just reserved; the
// pre-attempt state is always available here.
func (c *Coordinator) rollback(slotID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.slots.UpdateSlotStatus(
		ctx,
		slotID,
		schedule.StatusBooked,
		schedule.StatusAvailable,
	); err != nil {
		c.log.Error("failed to roll back slot reservation",
			zap.Uint("slot_id", slotID),
			zap.Error(err),
		)
	}
}
