package order

import (
	"context"
	"time"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/scheduler"
)

// expireIfDue applies the response timeout lazily when an order is read
// past its deadline, so actions observe the timed-out state even between
// sweeps. Racing the sweeper (or any other event) is safe: the guarded
// update lets exactly one writer through.
func expireIfDue(
	ctx context.Context,
	repo domain.Repository,
	coord *scheduler.Coordinator,
	o *models.Order,
	now time.Time,
) {
	if !domain.Expired(o, now) {
		return
	}

	held := o.SlotID
	if err := domain.Timeout(o, now); err != nil {
		return
	}

	if err := repo.UpdateOrderFrom(ctx, o, domain.StatusPending); err != nil {
		// Someone else transitioned first; pick up whatever they wrote.
		if fresh, ferr := repo.GetOrder(ctx, o.ID); ferr == nil {
			*o = *fresh
		}
		return
	}

	if held != nil {
		_ = coord.Release(ctx, *held)
	}
}
