package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/httpresp"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	ucschedule "github.com/PolishedStudio01/salon-scheduler/internal/usecase/schedule"
)

// PublicHandler serves the unauthenticated browse surface clients use
// before booking.
type PublicHandler struct {
	db     *gorm.DB
	listUC *ucschedule.ListSlots
}

func NewPublicHandler(db *gorm.DB, listUC *ucschedule.ListSlots) *PublicHandler {
	return &PublicHandler{db: db, listUC: listUC}
}

type publicMasterDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Timezone string `json:"timezone"`
}

func (h *PublicHandler) ListMasters(c *gin.Context) {
	var masters []models.User
	if err := h.db.
		Where("role = ?", models.RoleMaster).
		Order("id ASC").
		Find(&masters).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list masters.")
		return
	}

	out := make([]publicMasterDTO, 0, len(masters))
	for _, m := range masters {
		out = append(out, publicMasterDTO{
			ID:       m.ID,
			Name:     m.Name,
			Bio:      m.Bio,
			Timezone: m.Timezone,
		})
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	masterID, ok := h.masterParam(c)
	if !ok {
		return
	}

	var services []models.MasterService
	if err := h.db.
		Where("master_id = ? AND active = ?", masterID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListDesigns(c *gin.Context) {
	masterID, ok := h.masterParam(c)
	if !ok {
		return
	}

	var designs []models.Design
	if err := h.db.
		Where("author_id = ? AND active = ?", masterID, true).
		Order("id ASC").
		Find(&designs).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list designs.")
		return
	}

	httpresp.List(c, designs)
}

// ListSlots exposes only open slots; booked and blocked entries never
// leave the master's own calendar view.
func (h *PublicHandler) ListSlots(c *gin.Context) {
	masterID, ok := h.masterParam(c)
	if !ok {
		return
	}

	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	slots, err := h.listUC.ExecutePublic(c.Request.Context(), masterID, from, to)
	if err != nil {
		httperr.Internal(c, "list_failed", "Could not list slots.")
		return
	}

	httpresp.List(c, slots)
}

func (h *PublicHandler) masterParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("masterId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_master_id", "Invalid master id.")
		return 0, false
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleMaster).
		Count(&count).Error; err != nil || count == 0 {
		httperr.NotFound(c, "master_not_found", "Master not found.")
		return 0, false
	}

	return uint(id), true
}
