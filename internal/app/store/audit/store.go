// Package audit persists instructor-action audit events.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event types recorded by the review engine.
const (
	EventAssignmentCreated  = "assignment_created"
	EventAssignmentEdited   = "assignment_edited"
	EventAssignmentDeleted  = "assignment_deleted"
	EventReviewsGenerated   = "reviews_generated"
	EventGenerationConflict = "reviews_generation_noop"
)

// Event is one recorded instructor action.
type Event struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EventUID     string              `bson:"event_uid" json:"event_uid"` // stable UUID for cross-system correlation
	EventType    string              `bson:"event_type" json:"event_type"`
	ActorID      *primitive.ObjectID `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	WorkspaceID  *primitive.ObjectID `bson:"workspace_id,omitempty" json:"workspace_id,omitempty"`
	AssignmentID *primitive.ObjectID `bson:"assignment_id,omitempty" json:"assignment_id,omitempty"`
	Success      bool                `bson:"success" json:"success"`
	Details      map[string]string   `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Create inserts an audit event, assigning its ID, UUID, and timestamp.
func (s *Store) Create(ctx context.Context, e Event) error {
	e.ID = primitive.NewObjectID()
	e.EventUID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// ListRecent returns the newest events, limited to limit.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
