package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/PolishedStudio01/salon-scheduler/internal/domain/design"
	domainorder "github.com/PolishedStudio01/salon-scheduler/internal/domain/order"
	"github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/httperr"
	"github.com/PolishedStudio01/salon-scheduler/internal/scheduler"
)

// writeError is the single translation point from core errors to HTTP.
// Recoverable conditions get actionable messages; invalid transitions stay
// deliberately vague for the caller.
func writeError(c *gin.Context, err error) {
	var (
		invalid     *domainorder.InvalidTransitionError
		window      *domainorder.CompletionWindowError
		rating      *domainorder.RatingError
		unavailable *schedule.SlotUnavailableError
		overlap     *schedule.OverlapError
		noDesign    *design.DesignUnavailableError
		business    httperr.BusinessError
	)

	switch {
	case errors.As(err, &invalid):
		httperr.BadRequest(c, "action_not_available", "This action is not available.")

	case errors.Is(err, domainorder.ErrConcurrentUpdate):
		httperr.Conflict(c, "action_not_available", "This action is not available.")

	case errors.As(err, &window):
		if window.TooEarly {
			httperr.Unprocessable(c, "completion_too_early", "The appointment has not taken place yet.")
		} else {
			httperr.Unprocessable(c, "completion_too_late", "The completion window has closed; cancel instead.")
		}

	case errors.As(err, &rating):
		httperr.BadRequest(c, "invalid_rating", "Rating must be between 1 and 5.")

	case errors.Is(err, domainorder.ErrAlreadyRated):
		httperr.BadRequest(c, "already_rated", "This order has already been rated.")

	case errors.As(err, &unavailable):
		httperr.Conflict(c, "slot_unavailable", "That time is no longer available; please choose another.")

	case errors.As(err, &overlap):
		httperr.Conflict(c, "slot_overlap", "The interval overlaps an existing slot.")

	case errors.As(err, &noDesign):
		httperr.BadRequest(c, "design_unavailable", "The selected design is no longer available.")

	case errors.Is(err, scheduler.ErrBusy):
		httperr.TooManyRequests(c, "busy", "The calendar is busy; please retry.")

	case errors.As(err, &business):
		httperr.BadRequest(c, business.Code, "Request could not be processed.")

	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}
