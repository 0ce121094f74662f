// internal/app/store/weeks/weekstore.go
package weekstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("current_weeks")}
}

// GetByUser loads the user's current week document, or nil if none exists
// (absence is a state the rollover engine handles, not an error).
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.CurrentWeekDocument, error) {
	var w models.CurrentWeekDocument
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&w); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// Upsert writes the week document keyed by user_id, replacing any stale one.
func (s *Store) Upsert(ctx context.Context, w models.CurrentWeekDocument) error {
	now := time.Now().UTC()
	w.UpdatedAt = now
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.Goals == nil {
		w.Goals = []models.Goal{}
	}
	// _id is omitted so an upsert over an existing document keeps its id.
	doc := bson.M{
		"user_id":         w.UserID,
		"week_number":     w.WeekNumber,
		"year":            w.Year,
		"week_start_date": w.WeekStartDate,
		"week_end_date":   w.WeekEndDate,
		"goals":           w.Goals,
		"created_at":      w.CreatedAt,
		"updated_at":      w.UpdatedAt,
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"user_id": w.UserID}, doc, options.Replace().SetUpsert(true))
	return err
}

// SetGoals overwrites the goal list of the user's current week.
func (s *Store) SetGoals(ctx context.Context, userID primitive.ObjectID, goals []models.Goal) error {
	if goals == nil {
		goals = []models.Goal{}
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"goals":      goals,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Delete removes the user's current week document.
func (s *Store) Delete(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
