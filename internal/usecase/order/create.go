package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	"github.com/PolishedStudio01/salon-scheduler/internal/domain/design"
	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/scheduler"
	"github.com/PolishedStudio01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	MasterID  uint
	ServiceID uint
	DesignID  *uint

	Date string
	Time string

	ClientNotes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo           domain.Repository
	coord          *scheduler.Coordinator
	audit          *audit.Dispatcher
	responseWindow time.Duration
	now            func() time.Time
}

func NewCreateOrder(
	repo domain.Repository,
	coord *scheduler.Coordinator,
	audit *audit.Dispatcher,
	responseWindow time.Duration,
) *CreateOrder {
	return &CreateOrder{
		repo:           repo,
		coord:          coord,
		audit:          audit,
		responseWindow: responseWindow,
		now:            time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateOrder) Execute(
	ctx context.Context,
	actor domain.Actor,
	in CreateOrderInput,
) (*models.Order, error) {

	master, err := uc.repo.GetMaster(ctx, in.MasterID)
	if err != nil {
		return nil, httperr.ErrBusiness("master_not_found")
	}

	// Requested time is interpreted in the master's timezone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(master.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := master.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := uc.now()
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.MasterID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// Optional design: freeze the snapshot and resolve the surcharge now,
	// so later edits to the live records cannot reach this order.
	var (
		snapshot  *models.DesignSnapshot
		surcharge float64
	)
	if in.DesignID != nil {
		d, err := uc.repo.GetDesign(ctx, *in.DesignID)
		if err != nil {
			return nil, &design.DesignUnavailableError{DesignID: *in.DesignID}
		}

		// A design whose author row is gone still books; an infrastructure
		// failure must not be mistaken for that.
		author, err := uc.repo.GetMaster(ctx, d.AuthorID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load design author: %w", err)
		}

		snapshot, err = design.BuildSnapshot(d, author, now)
		if err != nil {
			return nil, err
		}

		option, err := uc.repo.GetServiceDesignOption(ctx, service.ID, d.ID)
		if err != nil {
			return nil, fmt.Errorf("load design option: %w", err)
		}
		surcharge = design.ResolveSurcharge(option, service, d)
	}

	o := &models.Order{
		Reference:       uuid.NewString(),
		ClientID:        actor.ID,
		MasterID:        master.ID,
		MasterServiceID: service.ID,
		DesignID:        in.DesignID,
		Snapshot:        snapshot,
		Status:          string(domain.InitialStatus()),
		Price:           service.Price + surcharge,
		DesignSurcharge: surcharge,
		DurationMin:     service.DurationMin,
		RequestedTime:   start,
		ClientNotes:     in.ClientNotes,
		RespondBy:       now.Add(uc.responseWindow),
	}

	// Hold the requested slot for the whole response window; the master's
	// confirm then only flips the order.
	if _, err := uc.coord.ReserveFor(
		ctx,
		master.ID,
		start,
		end,
		func(slot *models.TimeSlot) error {
			o.SlotID = &slot.ID
			return uc.repo.CreateOrder(ctx, o)
		},
	); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actor.ID,
		ActorRole: string(actor.Role),
		Action:    "order_created",
		Entity:    "order",
		EntityID:  &o.ID,
	})

	return o, nil
}
