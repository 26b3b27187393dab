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

type DesignHandler struct {
	db *gorm.DB
}

func NewDesignHandler(db *gorm.DB) *DesignHandler {
	return &DesignHandler{db: db}
}

type DesignRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	VideoURL    string   `json:"video_url"`
	Type        string   `json:"type"`
	Source      string   `json:"source"`
	Tags        string   `json:"tags"`
	Color       string   `json:"color"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

type DesignOptionRequest struct {
	ServiceID uint    `json:"service_id" binding:"required"`
	DesignID  uint    `json:"design_id" binding:"required"`
	Surcharge float64 `json:"surcharge" binding:"min=0"`
}

func (h *DesignHandler) List(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	var designs []models.Design
	if err := h.db.
		Where("author_id = ?", masterID).
		Order("id ASC").
		Find(&designs).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list designs.")
		return
	}

	httpresp.List(c, designs)
}

func (h *DesignHandler) Create(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	var req DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	d := models.Design{
		AuthorID:    masterID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		Type:        req.Type,
		Source:      req.Source,
		Tags:        req.Tags,
		Color:       req.Color,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		d.Active = *req.Active
	}

	if err := h.db.Create(&d).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create design.")
		return
	}

	httpresp.Created(c, d)
}

func (h *DesignHandler) Update(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_design_id", "Invalid design id.")
		return
	}

	var d models.Design
	if err := h.db.
		Where("id = ? AND author_id = ?", id, masterID).
		First(&d).Error; err != nil {
		httperr.NotFound(c, "design_not_found", "Design not found.")
		return
	}

	var req DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	d.Title = req.Title
	d.Description = req.Description
	d.ImageURL = req.ImageURL
	d.VideoURL = req.VideoURL
	d.Type = req.Type
	d.Source = req.Source
	d.Tags = req.Tags
	d.Color = req.Color
	d.Price = req.Price
	if req.Active != nil {
		d.Active = *req.Active
	}

	if err := h.db.Save(&d).Error; err != nil {
		httperr.Internal(c, "update_failed", "Could not update design.")
		return
	}

	httpresp.OK(c, d)
}

// SetOption pins a surcharge for a design offered with one of the
// master's services; it takes precedence over every other price source.
func (h *DesignHandler) SetOption(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	var req DesignOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var service models.MasterService
	if err := h.db.
		Where("id = ? AND master_id = ?", req.ServiceID, masterID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var option models.ServiceDesignOption
	err := h.db.
		Where("master_service_id = ? AND design_id = ?", req.ServiceID, req.DesignID).
		First(&option).Error
	if err != nil {
		option = models.ServiceDesignOption{
			MasterServiceID: req.ServiceID,
			DesignID:        req.DesignID,
		}
	}
	option.Surcharge = req.Surcharge

	if err := h.db.Save(&option).Error; err != nil {
		httperr.Internal(c, "option_failed", "Could not save design option.")
		return
	}

	httpresp.OK(c, option)
}
