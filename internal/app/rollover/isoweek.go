// internal/app/rollover/isoweek.go
package rollover

import (
	"time"

	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// ISO-8601 weeks run Monday through Sunday; time.ISOWeek applies the
// Thursday-anchored numbering rule (week 1 contains the year's first
// Thursday).

// weekBounds returns the Monday 00:00 UTC start and the Sunday date of the
// ISO week containing t.
func weekBounds(t time.Time) (start, end time.Time) {
	t = t.UTC()
	// Monday=0 ... Sunday=6.
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// coversInstant reports whether doc's stored week range contains t.
func coversInstant(doc *models.CurrentWeekDocument, t time.Time) bool {
	if doc.WeekStartDate.IsZero() {
		return false
	}
	return !t.Before(doc.WeekStartDate) && t.Before(doc.WeekStartDate.AddDate(0, 0, 7))
}
