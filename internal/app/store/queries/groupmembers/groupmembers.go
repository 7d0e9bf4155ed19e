// Package groupmembers is the membership resolver: it answers "which
// groups does this workspace have right now, and who is in each" for the
// review graph generator. Membership is owned by the workspace
// collaborator; this is strictly a read.
package groupmembers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupMembers is one group's current member list.
type GroupMembers struct {
	GroupID   primitive.ObjectID   `bson:"_id"`
	MemberIDs []primitive.ObjectID `bson:"member_ids"`
}

// ListGroupsWithMembers returns every active group in the workspace with
// its current member user IDs. Groups with no members come back with an
// empty list; users in no group simply do not appear. Member order within
// a group is ascending user ID so generation is deterministic.
func ListGroupsWithMembers(ctx context.Context, db *mongo.Database, workspaceID primitive.ObjectID) ([]GroupMembers, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"workspace_id": workspaceID, "status": "active"}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "group_memberships",
			"localField":   "_id",
			"foreignField": "group_id",
			"as":           "memberships",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"member_ids": bson.M{"$sortArray": bson.M{
				"input":  "$memberships.user_id",
				"sortBy": 1,
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := db.Collection("groups").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []GroupMembers
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
