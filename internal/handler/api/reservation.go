package api

import (
	"net/http"

	reqdto "warehouse-booking/internal/handler/dto/request"
	resdto "warehouse-booking/internal/handler/dto/response"
	"warehouse-booking/internal/handler/httperr"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/usecase/commands"
	"warehouse-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader     = "Idempotency-Key"
	idempotentReplayedHeader = "Idempotent-Replayed"
)

type ReservationHandler struct {
	cmds   commands.ReservationCommands
	q      queries.ReservationQueries
	errors errorRenderer
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries, cfg config.BookingConfig) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, errors: newErrorRenderer(cfg)}
}

// @Summary Create reservation
// @Description Book a unit for [start_at, end_at). The price is computed from the unit's active pricing rules.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID; a retry with the same key and body replays the first result"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var idempotencyKey *uuid.UUID
	if raw := c.GetHeader(idempotencyKeyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
			return
		}
		idempotencyKey = &key
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req.ToCommand(), userID, idempotencyKey)
	if err != nil {
		h.errors.abort(c, err)
		return
	}

	resp, err := resdto.FromReservationView(result.Reservation)
	if err != nil {
		abortMapping(c, err)
		return
	}
	if result.IsReplayed {
		c.Header(idempotentReplayedHeader, "true")
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List own reservations
// @Description Newest first, keyset paginated
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param limit query int false "Max items (default 20, max 200)"
// @Param after query string false "Cursor from next_cursor"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err)
		return
	}

	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}
	items, next, err := h.q.ListByUser(c.Request.Context(), userID,
		queries.ReservationFilters{Status: q.Status}, cursor, queries.ValidateLimit(q.Limit))
	if err != nil {
		h.errors.abort(c, err)
		return
	}

	resp, err := resdto.FromReservationList(items, next)
	if err != nil {
		abortMapping(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, id)
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

// @Summary Update reservation
// @Description Reschedule, change the note, or cancel by setting status. Omitted fields are unchanged.
// @Description status accepts only "cancelled" or the current status (a no-op). Confirmed and active follow payments, completed is set by an administrator; requesting them returns 422.
// @Description Supplying start_at or end_at re-runs validation: the resulting start must not be in the past, so a started reservation cannot be rescheduled (400).
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	view, err := h.cmds.UpdateReservation(c.Request.Context(), id, req.ToCommand(), userID)
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

// @Summary Cancel reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	cancelled, err := h.cmds.CancelReservation(c.Request.Context(), id, userID)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CancelReservationResponse{ID: id, Cancelled: cancelled})
}
