// internal/domain/models/dream.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DreamsDocument holds a user's dreams and their recurring goal templates.
// One document per user (unique user_id index).
type DreamsDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Dreams        []Dream              `bson:"dreams" json:"dreams"`
	GoalTemplates []WeeklyGoalTemplate `bson:"goal_templates" json:"goal_templates"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updated_at"`
}

// Dream is a long-horizon aspiration entry.
type Dream struct {
	ID          string    `bson:"id" json:"id"` // uuid
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Goal template recurrence values.
const (
	RecurrenceWeekly = "weekly"
	RecurrenceOnce   = "once"
)

// WeeklyGoalTemplate is a recurring-goal definition. Templates are consumed,
// not mutated, by the rollover engine; edits go through the dreams store.
type WeeklyGoalTemplate struct {
	ID         string     `bson:"id" json:"id"` // uuid
	DreamID    string     `bson:"dream_id,omitempty" json:"dream_id,omitempty"`
	Title      string     `bson:"title" json:"title"`
	Recurrence string     `bson:"recurrence" json:"recurrence"` // weekly | once
	Active     bool       `bson:"active" json:"active"`
	TargetDate *time.Time `bson:"target_date,omitempty" json:"target_date,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}
