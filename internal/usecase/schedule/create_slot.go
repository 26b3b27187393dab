package schedule

import (
	"context"
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateSlotInput struct {
	Date  string
	Start string
	End   string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateSlot struct {
	slots  domain.Repository
	audit  *audit.Dispatcher
	lookup MasterLookup
}

// MasterLookup resolves the timezone a master's slot times are written in.
type MasterLookup interface {
	GetMaster(ctx context.Context, id uint) (*models.User, error)
}

func NewCreateSlot(
	slots domain.Repository,
	lookup MasterLookup,
	audit *audit.Dispatcher,
) *CreateSlot {
	return &CreateSlot{
		slots:  slots,
		lookup: lookup,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSlot) Execute(
	ctx context.Context,
	masterID uint,
	in CreateSlotInput,
) (*models.TimeSlot, error) {

	master, err := uc.lookup.GetMaster(ctx, masterID)
	if err != nil {
		return nil, httperr.ErrBusiness("master_not_found")
	}

	loc := timezone.Location(master.Timezone)

	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Start, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.End, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_interval")
	}

	slot := &models.TimeSlot{
		MasterID:  masterID,
		Date:      day,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.StatusAvailable),
		Notes:     in.Notes,
	}

	if err := uc.slots.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &masterID,
		ActorRole: models.RoleMaster,
		Action:    "slot_created",
		Entity:    "time_slot",
		EntityID:  &slot.ID,
	})

	return slot, nil
}
