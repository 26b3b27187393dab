package order

import (
	"context"
	"time"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	actor domain.Actor,
	from time.Time,
	to time.Time,
) ([]models.Order, error) {
	if actor.Role == domain.RoleMaster {
		return uc.repo.ListByMaster(ctx, actor.ID, from, to)
	}
	return uc.repo.ListByClient(ctx, actor.ID, from, to)
}

type GetOrder struct {
	repo domain.Repository
}

func NewGetOrder(repo domain.Repository) *GetOrder {
	return &GetOrder{repo: repo}
}

func (uc *GetOrder) Execute(
	ctx context.Context,
	actor domain.Actor,
	orderID uint,
) (*models.Order, error) {

	var (
		o   *models.Order
		err error
	)
	if actor.Role == domain.RoleMaster {
		o, err = uc.repo.GetOrderForMaster(ctx, orderID, actor.ID)
	} else {
		o, err = uc.repo.GetOrderForClient(ctx, orderID, actor.ID)
	}
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}
	return o, nil
}
