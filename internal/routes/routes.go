package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	redis "github.com/go-redis/redis/v8"

	"github.com/PolishedStudio01/salon-scheduler/internal/audit"
	"github.com/PolishedStudio01/salon-scheduler/internal/config"
	"github.com/PolishedStudio01/salon-scheduler/internal/handlers"
	infraRepo "github.com/PolishedStudio01/salon-scheduler/internal/infra/repository"
	"github.com/PolishedStudio01/salon-scheduler/internal/middleware"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/scheduler"
	ucorder "github.com/PolishedStudio01/salon-scheduler/internal/usecase/order"
	ucschedule "github.com/PolishedStudio01/salon-scheduler/internal/usecase/schedule"
)

// RegisterRoutes wires the whole API and returns the sweeper so main
// can start it with its own lifecycle context.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) *scheduler.Sweeper {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	orderRepo := infraRepo.NewOrderGormRepository(db)
	slotRepo := infraRepo.NewSlotGormRepository(db)

	locker := scheduler.NewRedisLocker(rdb, cfg.LockWait)
	coordinator := scheduler.NewCoordinator(slotRepo, locker, log)
	sweeper := scheduler.NewSweeper(orderRepo, coordinator, cfg.SweepInterval, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES: ORDERS
	// ======================================================
	createOrderUC := ucorder.NewCreateOrder(
		orderRepo,
		coordinator,
		auditDispatcher,
		cfg.ResponseWindow,
	)

	masterRespondUC := ucorder.NewMasterRespond(
		orderRepo,
		coordinator,
		auditDispatcher,
	)

	clientRespondUC := ucorder.NewClientRespond(
		orderRepo,
		coordinator,
		auditDispatcher,
	)

	completeOrderUC := ucorder.NewCompleteOrder(
		orderRepo,
		coordinator,
		auditDispatcher,
		cfg.CompletionWindow,
	)

	rateOrderUC := ucorder.NewRateOrder(orderRepo, auditDispatcher)
	allowedActionsUC := ucorder.NewAllowedActions(orderRepo, cfg.CompletionWindow)
	listOrdersUC := ucorder.NewListOrders(orderRepo)
	getOrderUC := ucorder.NewGetOrder(orderRepo)

	// ======================================================
	// USE CASES: SCHEDULE
	// ======================================================
	createSlotUC := ucschedule.NewCreateSlot(slotRepo, orderRepo, auditDispatcher)
	blockSlotUC := ucschedule.NewBlockSlot(slotRepo, auditDispatcher)
	unblockSlotUC := ucschedule.NewUnblockSlot(slotRepo, auditDispatcher)
	listSlotsUC := ucschedule.NewListSlots(slotRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	designHandler := handlers.NewDesignHandler(db)

	orderHandler := handlers.NewOrderHandler(
		createOrderUC,
		masterRespondUC,
		clientRespondUC,
		completeOrderUC,
		rateOrderUC,
		allowedActionsUC,
		listOrdersUC,
		getOrderUC,
	)

	slotHandler := handlers.NewSlotHandler(
		createSlotUC,
		blockSlotUC,
		unblockSlotUC,
		listSlotsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, listSlotsUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC BROWSE
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/masters", publicHandler.ListMasters)
			publicAPI.GET("/masters/:masterId/services", publicHandler.ListServices)
			publicAPI.GET("/masters/:masterId/designs", publicHandler.ListDesigns)
			publicAPI.GET("/masters/:masterId/slots", publicHandler.ListSlots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateProfile)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// ORDERS (both roles, routed inside)
			// ------------------------------
			secured.POST("/orders", middleware.RequireRole(models.RoleClient), orderHandler.Create)
			secured.GET("/orders", orderHandler.List)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.GET("/orders/:id/actions", orderHandler.Actions)

			secured.PATCH("/orders/:id/confirm", middleware.RequireRole(models.RoleMaster), orderHandler.Confirm)
			secured.PATCH("/orders/:id/propose", middleware.RequireRole(models.RoleMaster), orderHandler.Propose)
			secured.PATCH("/orders/:id/decline", middleware.RequireRole(models.RoleMaster), orderHandler.Decline)
			secured.PATCH("/orders/:id/accept", middleware.RequireRole(models.RoleClient), orderHandler.Accept)

			secured.PATCH("/orders/:id/cancel", orderHandler.Cancel)
			secured.PATCH("/orders/:id/complete", orderHandler.Complete)
			secured.POST("/orders/:id/rating", middleware.RequireRole(models.RoleClient), orderHandler.Rate)

			// ------------------------------
			// MASTER CALENDAR
			// ------------------------------
			masterOnly := secured.Group("/me", middleware.RequireRole(models.RoleMaster))
			{
				masterOnly.GET("/slots", slotHandler.List)
				masterOnly.POST("/slots", slotHandler.Create)
				masterOnly.PATCH("/slots/:id/block", slotHandler.Block)
				masterOnly.PATCH("/slots/:id/unblock", slotHandler.Unblock)

				masterOnly.GET("/services", serviceHandler.List)
				masterOnly.POST("/services", serviceHandler.Create)
				masterOnly.PATCH("/services/:id", serviceHandler.Update)

				masterOnly.GET("/designs", designHandler.List)
				masterOnly.POST("/designs", designHandler.Create)
				masterOnly.PATCH("/designs/:id", designHandler.Update)
				masterOnly.PUT("/designs/options", designHandler.SetOption)
			}
		}
	}

	return sweeper
}
