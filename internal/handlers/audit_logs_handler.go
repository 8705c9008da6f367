package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/audit"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/httpresp"
	"github.com/BruksfildServices01/tutor-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
	loc   *time.Location
	log   *zap.Logger
}

func NewAuditLogsHandler(store audit.Store, loc *time.Location, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, loc: loc, log: log}
}

// List returns the caller's own audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultLimit)))
	if limit <= 0 || limit > audit.MaxLimit {
		limit = audit.DefaultLimit
	}

	f := audit.Filter{
		ActorID: middleware.UserID(c),
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		Page:    page,
		Limit:   limit,
	}

	// --------------------------------------------------
	// Optional date filters (inclusive days)
	// --------------------------------------------------
	if from, set, ok := queryDate(c, "from", h.loc); !ok {
		httperr.BadRequest(c, "invalid_from", "From must use the YYYY-MM-DD format.")
		return
	} else if set {
		f.From = &from
	}

	if to, set, ok := queryDate(c, "to", h.loc); !ok {
		httperr.BadRequest(c, "invalid_to", "To must use the YYYY-MM-DD format.")
		return
	} else if set {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
