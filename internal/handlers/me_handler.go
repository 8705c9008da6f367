package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/dto"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/tutor-booking/internal/usecase/booking"
)

type MeHandler struct {
	svc *ucBooking.Service
	log *zap.Logger
}

func NewMeHandler(svc *ucBooking.Service, log *zap.Logger) *MeHandler {
	return &MeHandler{svc: svc, log: log}
}

// Bookings lists the caller's sessions as tutor and as tutee.
func (h *MeHandler) Bookings(c *gin.Context) {
	mine, err := h.svc.ListMyBookings(c.Request.Context(), actor(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.MyBookingsDTO{
		Upcoming: dto.FromBookings(mine.Upcoming),
		Past:     dto.FromBookings(mine.Past),
	})
}
