// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team is a coach's roster. One team per coach: ManagerID carries a unique
// index on the teams collection.
//
// Invariant (spans two documents, no shared transaction): every user id in
// TeamMembers has assigned_coach_id == ManagerID, and every user pointing at
// ManagerID appears in TeamMembers. The coordinator package owns all writes
// that touch both sides.
type Team struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ManagerID  primitive.ObjectID `bson:"manager_id" json:"manager_id"`
	TeamName   string             `bson:"team_name" json:"team_name"`
	TeamNameCI string             `bson:"team_name_ci" json:"team_name_ci"`
	Mission    string             `bson:"mission,omitempty" json:"mission,omitempty"`

	// TeamMembers has set semantics; order is irrelevant.
	TeamMembers []primitive.ObjectID `bson:"team_members" json:"team_members"`

	NextMeeting *time.Time `bson:"next_meeting,omitempty" json:"next_meeting,omitempty"`
	Status      string     `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether userID is in the roster.
func (t *Team) HasMember(userID primitive.ObjectID) bool {
	for _, id := range t.TeamMembers {
		if id == userID {
			return true
		}
	}
	return false
}
