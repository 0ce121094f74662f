// internal/app/store/connects/connectstore.go
package connectstore

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
	return &Store{c: db.Collection("connects")}
}

// GetByUser loads the user's connects document, or an empty one.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.ConnectsDocument, error) {
	var d models.ConnectsDocument
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			now := time.Now().UTC()
			return &models.ConnectsDocument{
				UserID:    userID,
				Connects:  []models.Connect{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, err
	}
	return &d, nil
}

// AddConnect appends a connect entry, creating the document if needed.
func (s *Store) AddConnect(ctx context.Context, userID primitive.ObjectID, c models.Connect) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push":        bson.M{"connects": c},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

// RemoveConnect deletes the connect entry with the given id.
func (s *Store) RemoveConnect(ctx context.Context, userID primitive.ObjectID, connectID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"connects": bson.M{"id": connectID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}
