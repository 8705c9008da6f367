package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/dto"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/httpresp"
	"github.com/BruksfildServices01/tutor-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/tutor-booking/internal/usecase/booking"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	svc *ucBooking.Service
	log *zap.Logger
}

func NewBookingHandler(svc *ucBooking.Service, log *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

func actor(c *gin.Context) ucBooking.Actor {
	return ucBooking.Actor{
		UserID: middleware.UserID(c),
		Email:  middleware.UserEmail(c),
	}
}

// ======================================================
// POST /api/bookings
// ======================================================

func (h *BookingHandler) Submit(c *gin.Context) {
	var req ucBooking.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "The booking request could not be read.")
		return
	}
	req.IdempotencyKey = c.GetHeader(HeaderIdempotencyKey)

	b, err := h.svc.SubmitBooking(c.Request.Context(), actor(c), req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.FromBooking(b))
}

// ======================================================
// GET /api/bookings/:reference
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.GetBooking(c.Request.Context(), actor(c), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b))
}

// ======================================================
// POST /api/bookings/:reference/cancel
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.svc.CancelBooking(c.Request.Context(), actor(c), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b))
}

// ======================================================
// POST /api/bookings/:reference/complete
// ======================================================

func (h *BookingHandler) Complete(c *gin.Context) {
	b, err := h.svc.CompleteBooking(c.Request.Context(), actor(c), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b))
}
