package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/httpresp"
	"github.com/PolishedStudio01/salon-scheduler/internal/middleware"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// ServiceHandler is the master's catalog CRUD. Orders freeze service data
// at confirm time, so edits here never touch existing orders.
type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	DurationMin     int      `json:"duration_min" binding:"required,min=5"`
	Price           float64  `json:"price" binding:"required,min=0"`
	DesignSurcharge *float64 `json:"design_surcharge"`
	Active          *bool    `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	var services []models.MasterService
	if err := h.db.
		Where("master_id = ?", masterID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	service := models.MasterService{
		MasterID:        masterID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMin:     req.DurationMin,
		Price:           req.Price,
		DesignSurcharge: req.DesignSurcharge,
		Active:          true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create service.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var service models.MasterService
	if err := h.db.
		Where("id = ? AND master_id = ?", id, masterID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	service.Title = req.Title
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	service.DesignSurcharge = req.DesignSurcharge
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "update_failed", "Could not update service.")
		return
	}

	httpresp.OK(c, service)
}
