// internal/domain/models/connect.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectsDocument holds a user's peer connects. One document per user.
type ConnectsDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Connects  []Connect          `bson:"connects" json:"connects"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Connect records one intentional contact with another person.
type Connect struct {
	ID        string    `bson:"id" json:"id"` // uuid
	PeerName  string    `bson:"peer_name" json:"peer_name"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Date      time.Time `bson:"date" json:"date"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
