// Package assignmentstore persists review assignments and owns their
// cascading delete.
package assignmentstore

import (
	"context"
	"time"

	"github.com/dalemusser/peerhub/internal/app/system/txn"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("review_assignments")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ReviewAssignment, error) {
	var a models.ReviewAssignment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.ReviewAssignment{}, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, a models.ReviewAssignment) (models.ReviewAssignment, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.ReviewAssignment{}, err
	}
	return a, nil
}

// Update applies the given field changes. Callers decide which fields may
// change; the store only stamps updated_at.
type Update struct {
	Description *string
	Questions   []string
	StartDate   *time.Time
	DueDate     *time.Time
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Questions != nil {
		set["questions"] = u.Questions
	}
	if u.StartDate != nil {
		set["start_date"] = *u.StartDate
	}
	if u.DueDate != nil {
		set["due_date"] = *u.DueDate
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteCascade removes the assignment and all of its reviews in one
// transaction. Returns the number of reviews deleted.
func (s *Store) DeleteCascade(ctx context.Context, id primitive.ObjectID, log *zap.Logger) (int64, error) {
	var reviewsDeleted int64
	err := txn.Run(ctx, s.db, log, func(ctx context.Context) error {
		res, err := s.db.Collection("reviews").DeleteMany(ctx, bson.M{"assignment_id": id})
		if err != nil {
			return err
		}
		reviewsDeleted = res.DeletedCount

		del, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if del.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reviewsDeleted, nil
}

// ListByWorkspace returns a workspace's assignments ordered by due date.
func (s *Store) ListByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) ([]models.ReviewAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"workspace_id": workspaceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ReviewAssignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
