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
)

type PaymentHandler struct {
	cmds   commands.PaymentCommands
	q      queries.PaymentQueries
	errors errorRenderer
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries, cfg config.BookingConfig) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q, errors: newErrorRenderer(cfg)}
}

// @Summary Record payment
// @Description Add a pending payment. The first payment confirms a pending reservation.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid amount", nil)
		return
	}

	view, err := h.cmds.RecordPayment(c.Request.Context(), reservationID, cmd, userID)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	resp, err := resdto.FromPaymentView(view)
	if err != nil {
		abortMapping(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.PaymentListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/payments [get]
func (h *PaymentHandler) ListByReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	items, err := h.q.ListByReservation(c.Request.Context(), userID, reservationID)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	resp, err := resdto.FromPaymentList(items)
	if err != nil {
		abortMapping(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Complete payment
// @Description Mark a payment completed. A confirmed reservation becomes active once completed payments cover its total.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /payments/{id}/complete [post]
func (h *PaymentHandler) Complete(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := h.cmds.CompletePayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		h.errors.abort(c, err)
		return
	}
	resp, err := resdto.FromPaymentView(view)
	if err != nil {
		abortMapping(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
