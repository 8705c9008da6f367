package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/dto"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/httpresp"
	"github.com/BruksfildServices01/tutor-booking/internal/middleware"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/tutor-booking/internal/usecase/availability"
)

// AvailabilityHandler lets the signed-in tutor manage their own calendar.
type AvailabilityHandler struct {
	store       *ucAvailability.Store
	loc         *time.Location
	horizonDays int
	now         func() time.Time
	log         *zap.Logger
}

func NewAvailabilityHandler(
	store *ucAvailability.Store,
	loc *time.Location,
	horizonDays int,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		store:       store,
		loc:         loc,
		horizonDays: horizonDays,
		now:         time.Now,
		log:         log,
	}
}

// ======================================================
// WINDOWS
// ======================================================

func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	ws, err := h.store.GetWindows(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, ws)
}

func (h *AvailabilityHandler) UpsertWindow(c *gin.Context) {
	var req dto.WindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "The window could not be read.")
		return
	}

	w, err := h.store.UpsertWindow(c.Request.Context(), middleware.UserID(c), req.Model())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, w)
}

func (h *AvailabilityHandler) RemoveWindow(c *gin.Context) {
	if err := h.store.RemoveWindow(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// BLACKOUTS
// ======================================================

// ListBlackouts defaults to [today, today+horizon] when from/to are omitted.
func (h *AvailabilityHandler) ListBlackouts(c *gin.Context) {
	defFrom, defTo := defaultRange(h.now(), h.loc, h.horizonDays)

	from, fromSet, ok := queryDate(c, "from", h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_from", "From must use the YYYY-MM-DD format.")
		return
	}
	to, toSet, ok := queryDate(c, "to", h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_to", "To must use the YYYY-MM-DD format.")
		return
	}
	if fromSet {
		defFrom = timezone.FormatDate(from)
	}
	if toSet {
		defTo = timezone.FormatDate(to)
	}

	list, err := h.store.GetBlackouts(c.Request.Context(), middleware.UserID(c), defFrom, defTo)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AvailabilityHandler) AddBlackout(c *gin.Context) {
	var req dto.BlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "The blackout could not be read.")
		return
	}

	b, err := h.store.AddBlackout(c.Request.Context(), middleware.UserID(c), req.Model())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *AvailabilityHandler) RemoveBlackout(c *gin.Context) {
	if err := h.store.RemoveBlackout(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
