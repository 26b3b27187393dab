package order

import (
	"context"
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/scheduler"
)

// ======================================================
// INPUT
// ======================================================

const (
	ClientActionAccept = "accept_proposed"
	ClientActionCancel = "cancel"
)

type ClientRespondInput struct {
	Action string
}

// ======================================================
// USE CASE
// ======================================================

type ClientRespond struct {
	repo  domain.Repository
	coord *scheduler.Coordinator
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewClientRespond(
	repo domain.Repository,
	coord *scheduler.Coordinator,
	audit *audit.Dispatcher,
) *ClientRespond {
	return &ClientRespond{
		repo:  repo,
		coord: coord,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ClientRespond) Execute(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
	in ClientRespondInput,
) (*models.Order, error) {

	o, err := uc.repo.GetOrderForClient(ctx, orderID, actor.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}

	now := uc.now()
	expireIfDue(ctx, uc.repo, uc.coord, o, now)

	prior := domain.Status(o.Status)
	held := o.SlotID

	var action string
	switch in.Action {

	case ClientActionAccept:
		if err := uc.acceptProposed(ctx, o, prior, now); err != nil {
			return nil, err
		}
		action = "order_confirmed"

	case ClientActionCancel:
		if err := domain.Cancel(o, domain.RoleClient, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateOrderFrom(ctx, o, prior); err != nil {
			return nil, err
		}
		if held != nil {
			_ = uc.coord.Release(ctx, *held)
		}
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

// acceptProposed reserves the slot at the proposed time and commits the
// transition under the master's scheduling lease. Losing the race for the
// slot surfaces SlotUnavailable; the order stays in alternative_proposed
// so the client can pick another time.
func (uc *ClientRespond) acceptProposed(
	ctx context.Context,
	o *models.Order,
	prior domain.Status,
	now time.Time,
) error {

	// Dry-run first so a plain state error short-circuits before any slot
	// work happens.
	if _, err := domain.Can(prior, domain.EventAcceptProposed, domain.RoleClient); err != nil {
		return err
	}
	if o.ProposedTime == nil {
		return &domain.InvalidTransitionError{Event: domain.EventAcceptProposed, From: prior}
	}

	service, err := uc.repo.GetService(ctx, o.MasterID, o.MasterServiceID)
	if err != nil {
		return httperr.ErrBusiness("service_not_found")
	}
	price := service.Price + o.DesignSurcharge

	start := *o.ProposedTime
	end := start.Add(time.Duration(o.DurationMin) * time.Minute)

	_, err = uc.coord.ReserveFor(
		ctx,
		o.MasterID,
		start,
		end,
		func(slot *models.TimeSlot) error {
			if err := domain.AcceptProposed(o, price, now); err != nil {
				return err
			}
			o.SlotID = &slot.ID
			return uc.repo.UpdateOrderFrom(ctx, o, prior)
		},
	)
	return err
}
