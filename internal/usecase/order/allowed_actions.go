package order

import (
	"context"
	"time"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// AllowedActionsResult answers "what can this actor do right now" straight
// from the transition table, so UI gating can never drift from the rules
// actually enforced on write.
type AllowedActionsResult struct {
	Status       string   `json:"status"`
	Actions      []string `json:"actions"`
	CanBookAgain bool     `json:"can_book_again"`
}

type AllowedActions struct {
	repo             domain.Repository
	completionWindow time.Duration
	now              func() time.Time
}

func NewAllowedActions(
	repo domain.Repository,
	completionWindow time.Duration,
) *AllowedActions {
	return &AllowedActions{
		repo:             repo,
		completionWindow: completionWindow,
		now:              time.Now,
	}
}

func (uc *AllowedActions) Execute(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
) (*AllowedActionsResult, error) {

	o, err := uc.loadFor(ctx, actor, orderID)
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}

	now := uc.now()
	status := domain.Status(o.Status)
	if domain.Expired(o, now) {
		// The sweep has not landed yet; report what the next write will see.
		status = domain.StatusTimeout
	}

	actions := make([]string, 0, 4)
	for _, ev := range domain.AllowedEvents(status, actor.Role) {
		if ev == domain.EventComplete {
			// The table allows it; the window decides whether it works now.
			probe := *o
			if err := domain.Complete(&probe, actor.Role, "", nil, uc.completionWindow, now); err != nil {
				continue
			}
		}
		actions = append(actions, string(ev))
	}

	return &AllowedActionsResult{
		Status:       string(status),
		Actions:      actions,
		CanBookAgain: domain.CanBookAgain(status),
	}, nil
}

func (uc *AllowedActions) loadFor(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
) (*models.Order, error) {
	if actor.Role == domain.RoleMaster {
		return uc.repo.GetOrderForMaster(ctx, orderID, actor.ID)
	}
	return uc.repo.GetOrderForClient(ctx, orderID, actor.ID)
}
