// Package reviewanalytics provides the read-only aggregation pipelines
// behind the instructor analytics: rankings, completion status, and
// per-assignment rating series. All of them read completed Review rows at
// query time — there is no materialized analytics state to go stale.
package reviewanalytics

import (
	"context"
	"time"

	"github.com/dalemusser/peerhub/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RankedTarget is one row of the assignment ranking: a reviewee and the
// mean of every individual rating submitted about them.
type RankedTarget struct {
	TargetID    primitive.ObjectID `bson:"_id" json:"target_id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Average     float64            `bson:"average" json:"average"`
	RatingCount int64              `bson:"rating_count" json:"rating_count"`
}

// RankByAssignment returns reviewees ordered ascending by average rating
// (lowest-rated first, for instructor attention), ties broken by ascending
// target ID. Only completed reviews count; every individual rating counts
// once.
func RankByAssignment(ctx context.Context, db *mongo.Database, assignmentID primitive.ObjectID, p paging.Page) ([]RankedTarget, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"assignment_id": assignmentID, "completed": true}}},
		bson.D{{Key: "$unwind", Value: "$ratings"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$target_id",
			"average":      bson.M{"$avg": "$ratings"},
			"rating_count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "average", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$skip", Value: p.Skip()}},
		bson.D{{Key: "$limit", Value: p.Limit()}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"full_name": bson.M{"$ifNull": bson.A{
				bson.M{"$first": "$user.full_name"}, "",
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"user": 0}}},
	}

	cur, err := db.Collection("reviews").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []RankedTarget
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewerCompletion is one reviewer's progress through their assigned
// reviews for an assignment.
type ReviewerCompletion struct {
	ReviewerID primitive.ObjectID `bson:"_id" json:"reviewer_id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	Assigned   int64              `bson:"assigned" json:"assigned"`
	Completed  int64              `bson:"completed" json:"completed"`
	Fraction   float64            `bson:"fraction" json:"fraction"`
}

// CompletionStatus returns reviewers ordered ascending by completion
// fraction (least complete first). Reviewers who have finished every
// assigned review are excluded — the report exists to chase stragglers.
func CompletionStatus(ctx context.Context, db *mongo.Database, assignmentID primitive.ObjectID, p paging.Page) ([]ReviewerCompletion, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"assignment_id": assignmentID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$user_id",
			"assigned": bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$completed", 1, 0},
			}},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"fraction": bson.M{"$divide": bson.A{"$completed", "$assigned"}},
		}}},
		bson.D{{Key: "$match", Value: bson.M{"fraction": bson.M{"$lt": 1}}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "fraction", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$skip", Value: p.Skip()}},
		bson.D{{Key: "$limit", Value: p.Limit()}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"full_name": bson.M{"$ifNull": bson.A{
				bson.M{"$first": "$user.full_name"}, "",
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"user": 0}}},
	}

	cur, err := db.Collection("reviews").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []ReviewerCompletion
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SeriesPoint is one assignment's average rating for a target, used for
// trend display across a workspace.
type SeriesPoint struct {
	AssignmentID primitive.ObjectID `bson:"_id" json:"assignment_id"`
	Description  string             `bson:"description" json:"description"`
	DueDate      time.Time          `bson:"due_date" json:"due_date"`
	Average      float64            `bson:"average" json:"average"`
	RatingCount  int64              `bson:"rating_count" json:"rating_count"`
}

// SeriesForUser returns one point per assignment in the workspace that has
// at least one completed review targeting the user, ordered by assignment
// due date. Assignments with no completed reviews for the target are
// omitted, not zero-filled.
func SeriesForUser(ctx context.Context, db *mongo.Database, targetID, workspaceID primitive.ObjectID) ([]SeriesPoint, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"target_id": targetID, "completed": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "review_assignments",
			"localField":   "assignment_id",
			"foreignField": "_id",
			"as":           "assignment",
		}}},
		bson.D{{Key: "$unwind", Value: "$assignment"}},
		bson.D{{Key: "$match", Value: bson.M{"assignment.workspace_id": workspaceID}}},
		bson.D{{Key: "$unwind", Value: "$ratings"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$assignment_id",
			"description":  bson.M{"$first": "$assignment.description"},
			"due_date":     bson.M{"$first": "$assignment.due_date"},
			"average":      bson.M{"$avg": "$ratings"},
			"rating_count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "due_date", Value: 1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := db.Collection("reviews").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []SeriesPoint
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
