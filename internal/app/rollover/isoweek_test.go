package rollover

import (
	"testing"
	"time"

	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "midweek",
			in:        time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC), // Wednesday
			wantStart: date(2026, 1, 5),
			wantEnd:   date(2026, 1, 11),
		},
		{
			name:      "monday is its own start",
			in:        date(2026, 1, 5),
			wantStart: date(2026, 1, 5),
			wantEnd:   date(2026, 1, 11),
		},
		{
			name:      "sunday belongs to the preceding monday",
			in:        time.Date(2026, 1, 11, 23, 59, 0, 0, time.UTC),
			wantStart: date(2026, 1, 5),
			wantEnd:   date(2026, 1, 11),
		},
		{
			name:      "year boundary week spans both years",
			in:        date(2026, 1, 1), // Thursday; ISO week 1 of 2026
			wantStart: date(2025, 12, 29),
			wantEnd:   date(2026, 1, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := weekBounds(tt.in)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start: got %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end: got %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestCoversInstant(t *testing.T) {
	start, end := weekBounds(date(2026, 1, 7))
	doc := &models.CurrentWeekDocument{WeekStartDate: start, WeekEndDate: end}

	if !coversInstant(doc, date(2026, 1, 5)) {
		t.Error("monday start should be covered")
	}
	if !coversInstant(doc, time.Date(2026, 1, 11, 23, 0, 0, 0, time.UTC)) {
		t.Error("late sunday should be covered")
	}
	if coversInstant(doc, date(2026, 1, 12)) {
		t.Error("next monday should not be covered")
	}
	if coversInstant(doc, date(2026, 1, 4)) {
		t.Error("preceding sunday should not be covered")
	}
	if coversInstant(&models.CurrentWeekDocument{}, date(2026, 1, 7)) {
		t.Error("zero document should not cover anything")
	}
}
