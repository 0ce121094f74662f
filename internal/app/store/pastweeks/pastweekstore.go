// internal/app/store/pastweeks/pastweekstore.go
package pastweekstore

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
	return &Store{c: db.Collection("past_weeks")}
}

// GetByUser loads the user's archive, or an empty document for a user with
// no archived weeks yet.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.PastWeeksDocument, error) {
	var d models.PastWeeksDocument
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			now := time.Now().UTC()
			return &models.PastWeeksDocument{
				UserID:    userID,
				Weeks:     []models.WeekSummary{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, err
	}
	return &d, nil
}

// PrependSummary pushes a week summary at the head of the archive
// (most-recent-first invariant) and unions completed one-shot template ids
// into completed_once. Creates the document on first archive.
func (s *Store) PrependSummary(ctx context.Context, userID primitive.ObjectID, summary models.WeekSummary, completedOnce []string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$push": bson.M{"weeks": bson.M{
			"$each":     []models.WeekSummary{summary},
			"$position": 0,
		}},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
	}
	if len(completedOnce) > 0 {
		update["$addToSet"] = bson.M{"completed_once": bson.M{"$each": completedOnce}}
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	return err
}
