package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/httpresp"
	"github.com/PolishedStudio01/salon-scheduler/internal/middleware"
	ucschedule "github.com/PolishedStudio01/salon-scheduler/internal/usecase/schedule"
)

type SlotHandler struct {
	createUC  *ucschedule.CreateSlot
	blockUC   *ucschedule.BlockSlot
	unblockUC *ucschedule.UnblockSlot
	listUC    *ucschedule.ListSlots
}

func NewSlotHandler(
	createUC *ucschedule.CreateSlot,
	blockUC *ucschedule.BlockSlot,
	unblockUC *ucschedule.UnblockSlot,
	listUC *ucschedule.ListSlots,
) *SlotHandler {
	return &SlotHandler{
		createUC:  createUC,
		blockUC:   blockUC,
		unblockUC: unblockUC,
		listUC:    listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
	Notes string `json:"notes"`
}

type BlockSlotRequest struct {
	Notes string `json:"notes"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	slot, err := h.createUC.Execute(c.Request.Context(), masterID, ucschedule.CreateSlotInput{
		Date:  req.Date,
		Start: req.Start,
		End:   req.End,
		Notes: req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, slot)
}

func (h *SlotHandler) List(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	slots, err := h.listUC.Execute(c.Request.Context(), masterID, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *SlotHandler) Block(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	var req BlockSlotRequest
	_ = c.ShouldBindJSON(&req)

	slot, err := h.blockUC.Execute(c.Request.Context(), masterID, slotID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, slot)
}

func (h *SlotHandler) Unblock(c *gin.Context) {
	masterID := c.MustGet(middleware.ContextUserID).(uint)

	slotID, ok := slotIDParam(c)
	if !ok {
		return
	}

	slot, err := h.unblockUC.Execute(c.Request.Context(), masterID, slotID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, slot)
}

func slotIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_slot_id", "Invalid slot id.")
		return 0, false
	}
	return uint(id), true
}
