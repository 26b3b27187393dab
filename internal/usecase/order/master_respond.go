package order

import (
	"context"
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/scheduler"
	"github.com/PolishedStudio01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

const (
	MasterActionConfirm = "confirm"
	MasterActionPropose = "propose_alternative"
	MasterActionDecline = "decline"
	MasterActionCancel  = "cancel"
)

type MasterRespondInput struct {
	Action string

	// Proposed date/time, required for propose_alternative.
	Date string
	Time string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type MasterRespond struct {
	repo  domain.Repository
	coord *scheduler.Coordinator
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewMasterRespond(
	repo domain.Repository,
	coord *scheduler.Coordinator,
	audit *audit.Dispatcher,
) *MasterRespond {
	return &MasterRespond{
		repo:  repo,
		coord: coord,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *MasterRespond) Execute(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
	in MasterRespondInput,
) (*models.Order, error) {

	o, err := uc.repo.GetOrderForMaster(ctx, orderID, actor.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}

	now := uc.now()
	expireIfDue(ctx, uc.repo, uc.coord, o, now)

	prior := domain.Status(o.Status)
	held := o.SlotID

	var action string
	switch in.Action {

	case MasterActionConfirm:
		price, err := uc.frozenPrice(ctx, o)
		if err != nil {
			return nil, err
		}
		if err := domain.Confirm(o, price, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateOrderFrom(ctx, o, prior); err != nil {
			return nil, err
		}
		action = "order_confirmed"

	case MasterActionPropose:
		proposed, err := uc.parseProposed(ctx, o, in)
		if err != nil {
			return nil, err
		}
		if !proposed.After(now) {
			return nil, httperr.ErrBusiness("proposed_time_in_past")
		}
		if err := domain.ProposeAlternative(o, proposed, in.Notes, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateOrderFrom(ctx, o, prior); err != nil {
			return nil, err
		}
		uc.releaseHeld(ctx, held)
		action = "order_alternative_proposed"

	case MasterActionDecline:
		if err := domain.Decline(o, in.Notes, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateOrderFrom(ctx, o, prior); err != nil {
			return nil, err
		}
		uc.releaseHeld(ctx, held)
		action = "order_declined"

	case MasterActionCancel:
		if err := domain.Cancel(o, domain.RoleMaster, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateOrderFrom(ctx, o, prior); err != nil {
			return nil, err
		}
		uc.releaseHeld(ctx, held)
		action = "order_cancelled"

	default:
		return nil, httperr.ErrBusiness("unknown_action")
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorRole: string(actor.Role),
		Action:    action,
		Entity:    "order",
		EntityID:  &o.ID,
	})

	return o, nil
}

// frozenPrice reads the live service price one last time; after this the
// order's price never follows the catalog again.
func (uc *MasterRespond) frozenPrice(ctx context.Context, o *models.Order) (float64, error) {
	service, err := uc.repo.GetService(ctx, o.MasterID, o.MasterServiceID)
	if err != nil {
		return 0, httperr.ErrBusiness("service_not_found")
	}
	return service.Price + o.DesignSurcharge, nil
}

func (uc *MasterRespond) parseProposed(
	ctx context.Context,
	o *models.Order,
	in MasterRespondInput,
) (time.Time, error) {

	master, err := uc.repo.GetMaster(ctx, o.MasterID)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("master_not_found")
	}

	proposed, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(master.Timezone),
	)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return proposed, nil
}

func (uc *MasterRespond) releaseHeld(ctx context.Context, held *uint) {
	if held != nil {
		_ = uc.coord.Release(ctx, *held)
	}
}
