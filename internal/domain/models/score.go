// internal/domain/models/score.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScoreDocument is a user's quarterly self-assessment. One document per
// (user, year, quarter).
type ScoreDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	Year    int                `bson:"year" json:"year"`
	Quarter int                `bson:"quarter" json:"quarter"` // 1..4
	Values  map[string]int     `bson:"values" json:"values"`   // category -> 0..10
	Total   int                `bson:"total" json:"total"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
