// internal/app/store/scoring/scorestore.go
package scorestore

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
	return &Store{c: db.Collection("scoring")}
}

// GetByQuarter loads the user's score document for one quarter, or nil if
// they have not scored that quarter yet.
func (s *Store) GetByQuarter(ctx context.Context, userID primitive.ObjectID, year, quarter int) (*models.ScoreDocument, error) {
	var d models.ScoreDocument
	filter := bson.M{"user_id": userID, "year": year, "quarter": quarter}
	if err := s.c.FindOne(ctx, filter).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// Upsert writes a quarterly score document keyed by (user, year, quarter)
// and recomputes the total from the category values.
func (s *Store) Upsert(ctx context.Context, d models.ScoreDocument) (models.ScoreDocument, error) {
	d.Total = 0
	for _, v := range d.Values {
		d.Total += v
	}
	now := time.Now().UTC()
	d.UpdatedAt = now

	filter := bson.M{"user_id": d.UserID, "year": d.Year, "quarter": d.Quarter}
	update := bson.M{
		"$set": bson.M{
			"values":     d.Values,
			"total":      d.Total,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"user_id":    d.UserID,
			"year":       d.Year,
			"quarter":    d.Quarter,
			"created_at": now,
		},
	}
	if _, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return models.ScoreDocument{}, err
	}
	return d, nil
}

// ListByUser returns all of a user's score documents, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ScoreDocument, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "quarter", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.ScoreDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
