// Package reviewstore persists Review rows: bulk creation by the graph
// generator and the single atomic completion update by the submission
// validator. No other writer touches this collection.
package reviewstore

import (
	"context"
	"time"

	"github.com/dalemusser/peerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reviews")}
}

// InsertPending bulk-inserts pending review rows. The write is unordered
// and duplicate-tolerant: rows that collide with the unique
// (assignment_id, user_id, target_id) index are skipped, which is what
// makes a repeated generation run a no-op instead of an error.
// Returns the number of rows actually inserted.
func (s *Store) InsertPending(ctx context.Context, reviews []models.Review) (int64, error) {
	if len(reviews) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(reviews))
	for _, rv := range reviews {
		rv.ID = primitive.NewObjectID()
		rv.Ratings = []int{}
		rv.Completed = false
		rv.CreatedAt = now
		rv.UpdatedAt = now
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(rv))
	}

	res, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil && !wafflemongo.IsDup(err) {
		return 0, err
	}
	if res == nil {
		return 0, nil
	}
	return res.InsertedCount, nil
}

// GetByPairing looks up the one review keyed by (assignment, reviewer,
// target). Absence means the pairing was never generated — the caller was
// not assigned to review this person.
func (s *Store) GetByPairing(ctx context.Context, assignmentID, reviewerID, targetID primitive.ObjectID) (models.Review, error) {
	var rv models.Review
	err := s.c.FindOne(ctx, bson.M{
		"assignment_id": assignmentID,
		"user_id":       reviewerID,
		"target_id":     targetID,
	}).Decode(&rv)
	if err != nil {
		return models.Review{}, err
	}
	return rv, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var rv models.Review
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rv); err != nil {
		return models.Review{}, err
	}
	return rv, nil
}

// Complete sets the ratings, comment, and completed flag on the pairing's
// row in a single update — there is no read-modify-write window, so
// concurrent submissions by the assigned reviewer serialize to last-writer-
// wins on the row. Returns the review ID, or mongo.ErrNoDocuments when the
// pairing does not exist.
func (s *Store) Complete(ctx context.Context, assignmentID, reviewerID, targetID primitive.ObjectID, ratings []int, comment string) (primitive.ObjectID, error) {
	filter := bson.M{
		"assignment_id": assignmentID,
		"user_id":       reviewerID,
		"target_id":     targetID,
	}
	update := bson.M{"$set": bson.M{
		"ratings":    ratings,
		"comment":    comment,
		"completed":  true,
		"updated_at": time.Now().UTC(),
	}}

	var rv models.Review
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rv); err != nil {
		return primitive.NilObjectID, err
	}
	return rv.ID, nil
}

// CountByAssignment returns the number of review rows for an assignment.
func (s *Store) CountByAssignment(ctx context.Context, assignmentID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"assignment_id": assignmentID})
}

// ListByReviewer returns every review assigned to a reviewer for an
// assignment, pending and completed.
func (s *Store) ListByReviewer(ctx context.Context, assignmentID, reviewerID primitive.ObjectID) ([]models.Review, error) {
	return s.list(ctx, bson.M{"assignment_id": assignmentID, "user_id": reviewerID})
}

// ListAboutTarget returns every review targeting a user for an assignment.
func (s *Store) ListAboutTarget(ctx context.Context, assignmentID, targetID primitive.ObjectID) ([]models.Review, error) {
	return s.list(ctx, bson.M{"assignment_id": assignmentID, "target_id": targetID})
}

// ListCompletedForTarget returns only completed reviews targeting a user.
func (s *Store) ListCompletedForTarget(ctx context.Context, assignmentID, targetID primitive.ObjectID) ([]models.Review, error) {
	return s.list(ctx, bson.M{
		"assignment_id": assignmentID,
		"target_id":     targetID,
		"completed":     true,
	})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "target_id", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
