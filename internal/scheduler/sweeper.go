package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
)

const sweepBatch = 100

// Sweeper fires response timeouts on pending orders whose deadline has
// elapsed. It tolerates losing to a concurrent confirm: the guarded update
// simply affects no rows and the order is skipped.
type Sweeper struct {
	orders   order.Repository
	coord    *Coordinator
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewSweeper(
	orders order.Repository,
	coord *Coordinator,
	interval time.Duration,
	log *zap.Logger,
) *Sweeper {
	return &Sweeper{
		orders:   orders,
		coord:    coord,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Start runs the sweep loop until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepOnce(ctx)
			}
		}
	}()
}

// SweepOnce expires one batch and returns how many orders it moved.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	now := s.now()

	expired, err := s.orders.ListExpiredPending(ctx, now, sweepBatch)
	if err != nil {
		s.log.Error("timeout sweep: list failed", zap.Error(err))
		return 0
	}

	swept := 0
	for i := range expired {
		o := &expired[i]
		held := o.SlotID

		if err := order.Timeout(o, now); err != nil {
			continue
		}

		if err := s.orders.UpdateOrderFrom(ctx, o, order.StatusPending); err != nil {
			if errors.Is(err, order.ErrConcurrentUpdate) {
				// Master confirmed (or client cancelled) under us.
				continue
			}
			s.log.Error("timeout sweep: update failed",
				zap.Uint("order_id", o.ID),
				zap.Error(err),
			)
			continue
		}

		if held != nil {
			if err := s.coord.Release(ctx, *held); err != nil {
				s.log.Error("timeout sweep: slot release failed",
					zap.Uint("order_id", o.ID),
					zap.Uint("slot_id", *held),
					zap.Error(err),
				)
			}
		}

		s.log.Info("order timed out",
			zap.Uint("order_id", o.ID),
			zap.Time("respond_by", o.RespondBy),
		)
		swept++
	}

	return swept
}
