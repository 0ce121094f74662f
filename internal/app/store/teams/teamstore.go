// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/status"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// ErrDuplicateManager is returned when creating a second team for the same
// coach; manager_id carries a unique index.
var ErrDuplicateManager = errors.New("coach already manages a team")

// GetByID loads a team by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.New(apperr.NotFound, "team not found")
		}
		return nil, err
	}
	return &t, nil
}

// GetByManager loads the team managed by the given coach.
func (s *Store) GetByManager(ctx context.Context, managerID primitive.ObjectID) (*models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"manager_id": managerID}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.New(apperr.NotFound, "coach does not have a team")
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a new team with an empty roster.
func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	t.ID = primitive.NewObjectID()
	t.TeamNameCI = text.Fold(t.TeamName)
	if t.TeamMembers == nil {
		t.TeamMembers = []primitive.ObjectID{}
	}
	if t.Status == "" {
		t.Status = status.Active
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateManager
		}
		return models.Team{}, err
	}
	return t, nil
}

// Delete removes a team document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AddMember adds userID to the roster. $addToSet keeps set semantics, so a
// repeated add is a no-op.
func (s *Store) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, bson.M{
		"$addToSet": bson.M{"team_members": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// RemoveMember pulls userID from the roster; pulling an absent id is a no-op.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, bson.M{
		"$pull": bson.M{"team_members": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// ClearMembers empties the roster.
func (s *Store) ClearMembers(ctx context.Context, teamID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, bson.M{"$set": bson.M{
		"team_members": []primitive.ObjectID{},
		"updated_at":   time.Now().UTC(),
	}})
	return err
}

// SetManager transfers ownership of the team to a new coach.
func (s *Store) SetManager(ctx context.Context, teamID, managerID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, bson.M{"$set": bson.M{
		"manager_id": managerID,
		"updated_at": time.Now().UTC(),
	}})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateManager
	}
	return err
}

// TeamInfoUpdate holds the coach-editable team fields.
type TeamInfoUpdate struct {
	TeamName    string
	Mission     string
	NextMeeting *time.Time
}

// UpdateInfo updates the coach-editable fields.
func (s *Store) UpdateInfo(ctx context.Context, teamID primitive.ObjectID, upd TeamInfoUpdate) error {
	set := bson.M{
		"team_name":    upd.TeamName,
		"team_name_ci": text.Fold(upd.TeamName),
		"mission":      upd.Mission,
		"updated_at":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if upd.NextMeeting != nil {
		set["next_meeting"] = *upd.NextMeeting
	} else {
		update["$unset"] = bson.M{"next_meeting": ""}
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, update)
	return err
}
