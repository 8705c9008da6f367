package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/dto"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/tutor-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves availability to anyone browsing a tutor.
type PublicHandler struct {
	svc *ucBooking.Service
	log *zap.Logger
}

func NewPublicHandler(svc *ucBooking.Service, log *zap.Logger) *PublicHandler {
	return &PublicHandler{svc: svc, log: log}
}

// ======================================================
// GET /api/tutors/:tutorId/available-dates
// ======================================================

func (h *PublicHandler) AvailableDates(c *gin.Context) {
	tutorID := c.Param("tutorId")

	dates, err := h.svc.GetAvailableDates(c.Request.Context(), tutorID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.AvailableDatesDTO{TutorID: tutorID, Dates: dates})
}

// ======================================================
// GET /api/tutors/:tutorId/available-slots?date=YYYY-MM-DD
// ======================================================

func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	tutorID := c.Param("tutorId")

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Pick a date first.")
		return
	}

	res, err := h.svc.GetAvailableSlots(c.Request.Context(), tutorID, date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	out := dto.AvailableSlotsDTO{
		TutorID: tutorID,
		Date:    res.Date,
		Slots:   make([]dto.SlotDTO, 0, len(res.Slots)),
		Message: res.Message,
	}
	for _, s := range res.Slots {
		out.Slots = append(out.Slots, dto.SlotDTO{Start: s.Start, End: s.End})
	}

	httpresp.OK(c, out)
}
