// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents members, coaches, and admins.
//
// NOTE:
//   - AssignedCoachID/AssignedTeamName are a denormalized back-reference to
//     the coach's Team document. They are written only by the coordinator
//     package, never by profile edits.
//   - Score, DreamsCount, and ConnectsCount are aggregate counters kept in
//     step by the scoring, dreams, and connects stores.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Role       string             `bson:"role" json:"role"` // admin | coach | member
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`

	IsCoach          bool                `bson:"is_coach" json:"is_coach"`
	AssignedCoachID  *primitive.ObjectID `bson:"assigned_coach_id,omitempty" json:"assigned_coach_id,omitempty"`
	AssignedTeamName string              `bson:"assigned_team_name,omitempty" json:"assigned_team_name,omitempty"`

	Score         int `bson:"score" json:"score"`
	DreamsCount   int `bson:"dreams_count" json:"dreams_count"`
	ConnectsCount int `bson:"connects_count" json:"connects_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
