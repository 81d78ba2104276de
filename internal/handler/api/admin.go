package api

import (
	"net/http"

	resdto "warehouse-booking/internal/handler/dto/response"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	completion commands.CompletionCommands
	errors     errorRenderer
}

func NewAdminHandler(completion commands.CompletionCommands, cfg config.BookingConfig) *AdminHandler {
	return &AdminHandler{completion: completion, errors: newErrorRenderer(cfg)}
}

// @Summary Complete reservation
// @Description Move an active reservation to completed
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/reservations/{id}/complete [post]
func (h *AdminHandler) CompleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.completion.CompleteReservation(c.Request.Context(), id)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	resp, err := resdto.FromReservationView(view)
	if err != nil {
		abortMapping(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
