// internal/app/store/users/userstore.go
package userstore

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
	"github.com/mkelsey/dreamcoach/internal/app/system/normalize"
	"github.com/mkelsey/dreamcoach/internal/app/system/status"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when creating a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"coach"|"member"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	if u.Status == "" {
		u.Status = status.Active
	}

	switch u.Role {
	case "admin", "coach", "member":
	default:
		return models.User{}, errBadRole
	}
	if !status.IsValid(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetAssignedCoach points a user at a coach's team. Writing the same values
// twice is a no-op, which is what makes assign retry-safe.
func (s *Store) SetAssignedCoach(ctx context.Context, userID, coachID primitive.ObjectID, teamName string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"assigned_coach_id":  coachID,
		"assigned_team_name": teamName,
		"updated_at":         time.Now().UTC(),
	}})
	return err
}

// ClearAssignedCoach nulls a user's coach back-reference. Clearing an
// already-clear reference is a no-op.
func (s *Store) ClearAssignedCoach(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$unset": bson.M{"assigned_coach_id": "", "assigned_team_name": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// SetCoachRole marks a user as a coach.
func (s *Store) SetCoachRole(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"role":       "coach",
		"is_coach":   true,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ClearCoachRole demotes a coach back to member.
func (s *Store) ClearCoachRole(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"role":       "member",
		"is_coach":   false,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ListByAssignedCoach returns every user whose back-reference points at the
// given coach. Used by reconciliation to find drift.
func (s *Store) ListByAssignedCoach(ctx context.Context, coachID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"assigned_coach_id": coachID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListActiveIDs returns the ids of all active users; the rollover sweep
// walks this list.
func (s *Store) ListActiveIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": status.Active})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// IncDreamsCount adjusts the dreams counter by delta.
func (s *Store) IncDreamsCount(ctx context.Context, userID primitive.ObjectID, delta int) error {
	return s.incCounter(ctx, userID, "dreams_count", delta)
}

// IncConnectsCount adjusts the connects counter by delta.
func (s *Store) IncConnectsCount(ctx context.Context, userID primitive.ObjectID, delta int) error {
	return s.incCounter(ctx, userID, "connects_count", delta)
}

// SetScore sets the user's aggregate quarterly score.
func (s *Store) SetScore(ctx context.Context, userID primitive.ObjectID, score int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"score":      score,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (s *Store) incCounter(ctx context.Context, userID primitive.ObjectID, field string, delta int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
