package schedule

import (
	"context"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// BlockSlot and UnblockSlot are the master's manual withdrawal controls,
// independent of order-driven reserve/release.

type BlockSlot struct {
	slots domain.Repository
	audit *audit.Dispatcher
}

func NewBlockSlot(
	slots domain.Repository,
	audit *audit.Dispatcher,
) *BlockSlot {
	return &BlockSlot{
		slots: slots,
		audit: audit,
	}
}

func (uc *BlockSlot) Execute(
	ctx context.Context,
	masterID uint,
	slotID uint,
	notes string,
) (*models.TimeSlot, error) {

	slot, err := uc.slots.GetSlotForOwner(ctx, slotID, masterID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	was := domain.Status(slot.Status)
	if err := domain.Block(slot, notes); err != nil {
		return nil, err
	}
	if was == domain.StatusBlocked {
		return slot, nil
	}

	// Guarded flip: a reservation that won since the read above keeps the
	// slot, and the block surfaces SlotUnavailable instead of stomping it.
	if err := uc.slots.BlockSlot(ctx, slot.ID, slot.Notes); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &masterID,
		ActorRole: models.RoleMaster,
		Action:    "slot_blocked",
		Entity:    "time_slot",
		EntityID:  &slot.ID,
	})

	return slot, nil
}

type UnblockSlot struct {
	slots domain.Repository
	audit *audit.Dispatcher
}

func NewUnblockSlot(
	slots domain.Repository,
	audit *audit.Dispatcher,
) *UnblockSlot {
	return &UnblockSlot{
		slots: slots,
		audit: audit,
	}
}

func (uc *UnblockSlot) Execute(
	ctx context.Context,
	masterID uint,
	slotID uint,
) (*models.TimeSlot, error) {

	slot, err := uc.slots.GetSlotForOwner(ctx, slotID, masterID)
	if err != nil {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	was := domain.Status(slot.Status)
	if err := domain.Unblock(slot); err != nil {
		return nil, err
	}
	if was == domain.StatusAvailable {
		return slot, nil
	}

	if err := uc.slots.UpdateSlotStatus(
		ctx, slot.ID, domain.StatusBlocked, domain.StatusAvailable,
	); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &masterID,
		ActorRole: models.RoleMaster,
		Action:    "slot_unblocked",
		Entity:    "time_slot",
		EntityID:  &slot.ID,
	})

	return slot, nil
}
