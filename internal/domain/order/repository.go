package order

import (
	"context"
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetMaster(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		masterID uint,
		serviceID uint,
	) (*models.MasterService, error)

	GetDesign(
		ctx context.Context,
		designID uint,
	) (*models.Design, error)

	// GetServiceDesignOption returns (nil, nil) when no override exists.
	GetServiceDesignOption(
		ctx context.Context,
		serviceID uint,
		designID uint,
	) (*models.ServiceDesignOption, error)

	// -------- Order (create / read) --------
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	GetOrder(
		ctx context.Context,
		id uint,
	) (*models.Order, error)

	GetOrderForClient(
		ctx context.Context,
		orderID uint,
		clientID uint,
	) (*models.Order, error)

	GetOrderForMaster(
		ctx context.Context,
		orderID uint,
		masterID uint,
	) (*models.Order, error)

	// -------- Order (state change) --------

	// UpdateOrderFrom persists the order only if it is still in the given
	// status; otherwise ErrConcurrentUpdate.
	UpdateOrderFrom(
		ctx context.Context,
		o *models.Order,
		from Status,
	) error

	// UpdateRating writes the one permitted rating on a completed,
	// unrated order; ErrAlreadyRated otherwise.
	UpdateRating(
		ctx context.Context,
		orderID uint,
		rating int,
	) error

	// -------- Sweep / listing --------
	ListExpiredPending(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]models.Order, error)

	ListByClient(
		ctx context.Context,
		clientID uint,
		from time.Time,
		to time.Time,
	) ([]models.Order, error)

	ListByMaster(
		ctx context.Context,
		masterID uint,
		from time.Time,
		to time.Time,
	) ([]models.Order, error)
}
