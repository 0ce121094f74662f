// internal/app/store/dreams/dreamstore.go
package dreamstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("dreams")}
}

// GetByUser loads the user's dreams document. A user who has never written a
// dream gets an empty, valid document rather than NotFound.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.DreamsDocument, error) {
	var d models.DreamsDocument
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			now := time.Now().UTC()
			return &models.DreamsDocument{
				UserID:        userID,
				Dreams:        []models.Dream{},
				GoalTemplates: []models.WeeklyGoalTemplate{},
				CreatedAt:     now,
				UpdatedAt:     now,
			}, nil
		}
		return nil, err
	}
	return &d, nil
}

// Templates returns the user's goal templates; the rollover engine consumes
// these without mutating them.
func (s *Store) Templates(ctx context.Context, userID primitive.ObjectID) ([]models.WeeklyGoalTemplate, error) {
	d, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return d.GoalTemplates, nil
}

// AddDream appends a dream entry, creating the document if needed.
func (s *Store) AddDream(ctx context.Context, userID primitive.ObjectID, dream models.Dream) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push":        bson.M{"dreams": dream},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"user_id": userID, "goal_templates": []models.WeeklyGoalTemplate{}, "created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

// UpdateDream replaces the dream entry with the matching id.
func (s *Store) UpdateDream(ctx context.Context, userID primitive.ObjectID, dream models.Dream) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "dreams.id": dream.ID},
		bson.M{"$set": bson.M{"dreams.$": dream, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "dream not found")
	}
	return nil
}

// RemoveDream deletes the dream entry with the given id.
func (s *Store) RemoveDream(ctx context.Context, userID primitive.ObjectID, dreamID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"dreams": bson.M{"id": dreamID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// AddTemplate appends a goal template, creating the document if needed.
func (s *Store) AddTemplate(ctx context.Context, userID primitive.ObjectID, tpl models.WeeklyGoalTemplate) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push":        bson.M{"goal_templates": tpl},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"user_id": userID, "dreams": []models.Dream{}, "created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

// UpdateTemplate replaces the template with the matching id.
func (s *Store) UpdateTemplate(ctx context.Context, userID primitive.ObjectID, tpl models.WeeklyGoalTemplate) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "goal_templates.id": tpl.ID},
		bson.M{"$set": bson.M{"goal_templates.$": tpl, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "goal template not found")
	}
	return nil
}

// RemoveTemplate deletes the template with the given id.
func (s *Store) RemoveTemplate(ctx context.Context, userID primitive.ObjectID, templateID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"goal_templates": bson.M{"id": templateID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}
