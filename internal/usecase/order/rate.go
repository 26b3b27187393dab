package order

import (
	"context"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// RateOrder is the one write a completed order still accepts: a single
// client rating, if none was given at completion time.
type RateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RateOrder {
	return &RateOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RateOrder) Execute(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
	rating int,
) (*models.Order, error) {

	o, err := uc.repo.GetOrderForClient(ctx, orderID, actor.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}

	// Dry-run the domain rules, then let the guarded update arbitrate any
	// concurrent rating write.
	if err := domain.Rate(o, rating); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateRating(ctx, o.ID, rating); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorRole: string(actor.Role),
		Action:    "order_rated",
		Entity:    "order",
		EntityID:  &o.ID,
	})

	return o, nil
}
