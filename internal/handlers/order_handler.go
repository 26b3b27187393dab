package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/dto"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/httpresp"
	"github.com/PolishedStudio01/salon-scheduler/internal/middleware"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	ucorder "github.com/PolishedStudio01/salon-scheduler/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	createUC   *ucorder.CreateOrder
	masterUC   *ucorder.MasterRespond
	clientUC   *ucorder.ClientRespond
	completeUC *ucorder.CompleteOrder
	rateUC     *ucorder.RateOrder
	actionsUC  *ucorder.AllowedActions
	listUC     *ucorder.ListOrders
	getUC      *ucorder.GetOrder
}

func NewOrderHandler(
	createUC *ucorder.CreateOrder,
	masterUC *ucorder.MasterRespond,
	clientUC *ucorder.ClientRespond,
	completeUC *ucorder.CompleteOrder,
	rateUC *ucorder.RateOrder,
	actionsUC *ucorder.AllowedActions,
	listUC *ucorder.ListOrders,
	getUC *ucorder.GetOrder,
) *OrderHandler {
	return &OrderHandler{
		createUC:   createUC,
		masterUC:   masterUC,
		clientUC:   clientUC,
		completeUC: completeUC,
		rateUC:     rateUC,
		actionsUC:  actionsUC,
		listUC:     listUC,
		getUC:      getUC,
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   c.MustGet(middleware.ContextUserID).(uint),
		Role: domain.Role(c.GetString(middleware.ContextUserRole)),
	}
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_order_id", "Invalid order id.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// REQUESTS
// ======================================================

type CreateOrderRequest struct {
	MasterID    uint   `json:"master_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	DesignID    *uint  `json:"design_id"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	ClientNotes string `json:"client_notes"`
}

type ProposeRequest struct {
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

type RespondNotesRequest struct {
	Notes string `json:"notes"`
}

type CompleteRequest struct {
	Notes  string `json:"notes"`
	Rating *int   `json:"rating"`
}

type RateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	o, err := h.createUC.Execute(c.Request.Context(), actor, ucorder.CreateOrderInput{
		MasterID:    req.MasterID,
		ServiceID:   req.ServiceID,
		DesignID:    req.DesignID,
		Date:        req.Date,
		Time:        req.Time,
		ClientNotes: req.ClientNotes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, o)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	o, err := h.getUC.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	orders, err := h.listUC.Execute(c.Request.Context(), actor, from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.OrderListDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderListDTO(o))
	}
	httpresp.List(c, out)
}

func (h *OrderHandler) Actions(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	res, err := h.actionsUC.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// MASTER RESPONSES
// ======================================================

func (h *OrderHandler) Confirm(c *gin.Context) {
	h.masterAction(c, ucorder.MasterRespondInput{Action: ucorder.MasterActionConfirm})
}

func (h *OrderHandler) Propose(c *gin.Context) {
	var req ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	h.masterAction(c, ucorder.MasterRespondInput{
		Action: ucorder.MasterActionPropose,
		Date:   req.Date,
		Time:   req.Time,
		Notes:  req.Notes,
	})
}

func (h *OrderHandler) Decline(c *gin.Context) {
	var req RespondNotesRequest
	_ = c.ShouldBindJSON(&req)

	h.masterAction(c, ucorder.MasterRespondInput{
		Action: ucorder.MasterActionDecline,
		Notes:  req.Notes,
	})
}

func (h *OrderHandler) masterAction(c *gin.Context, in ucorder.MasterRespondInput) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	o, err := h.masterUC.Execute(c.Request.Context(), actorFrom(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, o)
}

// ======================================================
// CLIENT RESPONSES
// ======================================================

func (h *OrderHandler) Accept(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	o, err := h.clientUC.Execute(
		c.Request.Context(),
		actorFrom(c),
		id,
		ucorder.ClientRespondInput{Action: ucorder.ClientActionAccept},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, o)
}

// Cancel routes by role: a client cancels their own order, a master
// cancels a confirmed appointment.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	actor := actorFrom(c)

	var (
		o   *models.Order
		err error
	)
	if actor.Role == domain.RoleMaster {
		o, err = h.masterUC.Execute(c.Request.Context(), actor, id,
			ucorder.MasterRespondInput{Action: ucorder.MasterActionCancel})
	} else {
		o, err = h.clientUC.Execute(c.Request.Context(), actor, id,
			ucorder.ClientRespondInput{Action: ucorder.ClientActionCancel})
	}
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, o)
}

// ======================================================
// COMPLETE / RATE
// ======================================================

func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req CompleteRequest
	_ = c.ShouldBindJSON(&req)

	o, err := h.completeUC.Execute(
		c.Request.Context(),
		actorFrom(c),
		id,
		ucorder.CompleteOrderInput{Notes: req.Notes, Rating: req.Rating},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) Rate(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Rating must be between 1 and 5.")
		return
	}

	o, err := h.rateUC.Execute(c.Request.Context(), actorFrom(c), id, req.Rating)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, o)
}

// ======================================================
// HELPERS
// ======================================================

func toOrderListDTO(o models.Order) dto.OrderListDTO {
	d := dto.OrderListDTO{
		ID:            o.ID,
		Reference:     o.Reference,
		Status:        o.Status,
		Price:         o.Price,
		ServiceTitle:  o.MasterService.Title,
		RequestedTime: o.RequestedTime,
		ProposedTime:  o.ProposedTime,
		ConfirmedTime: o.ConfirmedTime,
	}
	if o.Snapshot != nil {
		d.DesignTitle = o.Snapshot.Title
	}
	return d
}

func rangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	const layout = "2006-01-02"

	fromStr := c.DefaultQuery("from", time.Now().AddDate(0, -1, 0).Format(layout))
	toStr := c.DefaultQuery("to", time.Now().AddDate(0, 1, 0).Format(layout))

	from, err := time.Parse(layout, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid 'from' date.")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(layout, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid 'to' date.")
		return time.Time{}, time.Time{}, false
	}

	// Inclusive upper day.
	return from, to.AddDate(0, 0, 1), true
}
