// internal/domain/models/week.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrentWeekDocument holds the live goal list for a user's active ISO week.
// One document per user; created or replaced each rollover cycle.
type CurrentWeekDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	WeekNumber    int                `bson:"week_number" json:"week_number"` // ISO-8601 week
	Year          int                `bson:"year" json:"year"`               // ISO-8601 year
	WeekStartDate time.Time          `bson:"week_start_date" json:"week_start_date"`
	WeekEndDate   time.Time          `bson:"week_end_date" json:"week_end_date"`
	Goals         []Goal             `bson:"goals" json:"goals"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Goal is a single instantiated goal inside a week.
type Goal struct {
	ID          string     `bson:"id" json:"id"`                                     // uuid, stable across carry-over
	TemplateID  string     `bson:"template_id,omitempty" json:"template_id,omitempty"` // empty for ad hoc goals
	Title       string     `bson:"title" json:"title"`
	Recurrence  string     `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}

// PastWeeksDocument is a per-user archive of week summaries. Weeks is
// prepend-at-head: index 0 is always the most recently archived week, and
// entries are immutable once written.
//
// CompletedOnce records template ids of one-shot goals that have been
// completed, so they are never re-instantiated after the week that carried
// them leaves the current-week document.
type PastWeeksDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Weeks         []WeekSummary      `bson:"weeks" json:"weeks"`
	CompletedOnce []string           `bson:"completed_once,omitempty" json:"completed_once,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// WeekSummary is one archived week.
type WeekSummary struct {
	WeekNumber     int       `bson:"week_number" json:"week_number"`
	Year           int       `bson:"year" json:"year"`
	WeekStartDate  time.Time `bson:"week_start_date" json:"week_start_date"`
	WeekEndDate    time.Time `bson:"week_end_date" json:"week_end_date"`
	GoalsCompleted int       `bson:"goals_completed" json:"goals_completed"`
	GoalsTotal     int       `bson:"goals_total" json:"goals_total"`
	CompletionRate int       `bson:"completion_rate" json:"completion_rate"` // round(completed/total*100)
	ArchivedAt     time.Time `bson:"archived_at" json:"archived_at"`
}
