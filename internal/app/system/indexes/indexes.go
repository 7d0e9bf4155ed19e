// Package indexes reconciles the Mongo indexes the review engine relies on.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.

The reviews unique index is load-bearing, not an optimization: it is what
serializes concurrent generation runs for the same assignment into
"first wins, rest no-op".
*/
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	if err := ensureWorkspaces(ctx, db); err != nil {
		problems = append(problems, "workspaces: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureGroupMemberships(ctx, db); err != nil {
		problems = append(problems, "group_memberships: "+err.Error())
	}
	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "review_assignments: "+err.Error())
	}
	if err := ensureReviews(ctx, db); err != nil {
		problems = append(problems, "reviews: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	if log != nil {
		log.Info("indexes ensured")
	}
	return nil
}

func createAll(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensureWorkspaces(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("workspaces"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("workspaces_name_ci").SetUnique(true),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetName("users_workspace_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetName("users_workspace_role"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("groups"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("groups_workspace_name_ci").SetUnique(true),
		},
	})
}

func ensureGroupMemberships(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("group_memberships"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("memberships_group_user").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}},
			Options: options.Index().SetName("memberships_workspace"),
		},
	})
}

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("review_assignments"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workspace_id", Value: 1}, {Key: "due_date", Value: 1}},
			Options: options.Index().SetName("assignments_workspace_due"),
		},
	})
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("reviews"), []mongo.IndexModel{
		{
			// One Review per ordered (reviewer, target) pair per assignment.
			Keys: bson.D{
				{Key: "assignment_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "target_id", Value: 1},
			},
			Options: options.Index().SetName("reviews_pairing").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "assignment_id", Value: 1}, {Key: "target_id", Value: 1}, {Key: "completed", Value: 1}},
			Options: options.Index().SetName("reviews_target_completed"),
		},
		{
			Keys:    bson.D{{Key: "assignment_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "completed", Value: 1}},
			Options: options.Index().SetName("reviews_reviewer_completed"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("audit_events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("audit_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("audit_actor_created"),
		},
	})
}
