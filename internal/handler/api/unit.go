package api

import (
	"net/http"

	reqdto "warehouse-booking/internal/handler/dto/request"
	resdto "warehouse-booking/internal/handler/dto/response"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UnitHandler struct {
	units        queries.UnitQueries
	availability queries.AvailabilityQueries
	errors       errorRenderer
}

func NewUnitHandler(units queries.UnitQueries, availability queries.AvailabilityQueries, cfg config.BookingConfig) *UnitHandler {
	return &UnitHandler{
		units:        units,
		availability: availability,
		errors:       newErrorRenderer(cfg),
	}
}

// @Summary Get unit
// @Description Get a storage unit with its active pricing rules
// @Tags units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} resdto.UnitResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /units/{id} [get]
func (h *UnitHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.units.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	resp, err := resdto.FromUnitView(view)
	if err != nil {
		abortMapping(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Check availability
// @Description Report whether the unit is free for the half-open window [start, end)
// @Tags units
// @Produce json
// @Param id path string true "Unit ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /units/{id}/availability [get]
func (h *UnitHandler) Availability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err)
		return
	}
	available, err := h.availability.CheckAvailability(c.Request.Context(), id, q.Start, q.End)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewAvailabilityResponse(id, q.Start, q.End, available))
}

// @Summary Quote price
// @Description Price the window with the unit's active rules without booking it
// @Tags units
// @Produce json
// @Param id path string true "Unit ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /units/{id}/quote [get]
func (h *UnitHandler) Quote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var q reqdto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err)
		return
	}
	view, err := h.units.Quote(c.Request.Context(), id, q.Start, q.End)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	resp, err := resdto.FromQuoteView(view)
	if err != nil {
		abortMapping(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
