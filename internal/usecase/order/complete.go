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

type CompleteOrderInput struct {
	Notes  string
	Rating *int
}

// ======================================================
// USE CASE
// ======================================================

type CompleteOrder struct {
	repo             domain.Repository
	coord            *scheduler.Coordinator
	audit            *audit.Dispatcher
	completionWindow time.Duration
	now              func() time.Time
}

func NewCompleteOrder(
	repo domain.Repository,
	coord *scheduler.Coordinator,
	audit *audit.Dispatcher,
	completionWindow time.Duration,
) *CompleteOrder {
	return &CompleteOrder{
		repo:             repo,
		coord:            coord,
		audit:            audit,
		completionWindow: completionWindow,
		now:              time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CompleteOrder) Execute(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
	in CompleteOrderInput,
) (*models.Order, error) {

	o, err := uc.loadFor(ctx, actor, orderID)
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}

	now := uc.now()
	prior := domain.Status(o.Status)
	held := o.SlotID

	if err := domain.Complete(o, actor.Role, in.Notes, in.Rating, uc.completionWindow, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateOrderFrom(ctx, o, prior); err != nil {
		return nil, err
	}

	// The appointment is consumed; the interval goes back to the pool so
	// the master can reuse or block it.
	if held != nil {
		_ = uc.coord.Release(ctx, *held)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorRole: string(actor.Role),
		Action:    "order_completed",
		Entity:    "order",
		EntityID:  &o.ID,
	})

	return o, nil
}

func (uc *CompleteOrder) loadFor(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
) (*models.Order, error) {
	if actor.Role == domain.RoleMaster {
		return uc.repo.GetOrderForMaster(ctx, orderID, actor.ID)
	}
	return uc.repo.GetOrderForClient(ctx, orderID, actor.ID)
}
