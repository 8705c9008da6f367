package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

// --------------------------------------------------
// Dates are always interpreted in the service timezone
// --------------------------------------------------

// queryDate parses an optional YYYY-MM-DD query parameter. ok is false when the
// parameter is present but malformed.
func queryDate(c *gin.Context, name string, loc *time.Location) (t time.Time, present bool, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false, true
	}

	t, err := timezone.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, true, false
	}
	return t, true, true
}

// defaultRange is [today, today+days] in loc, formatted as dates.
func defaultRange(now time.Time, loc *time.Location, days int) (string, string) {
	today := timezone.StartOfDay(now.In(loc))
	return timezone.FormatDate(today), timezone.FormatDate(today.AddDate(0, 0, days))
}
