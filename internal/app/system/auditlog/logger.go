// Package auditlog records instructor actions to Mongo and structured logs.
package auditlog

import (
	"context"
	"strconv"

	"github.com/dalemusser/peerhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config controls where admin-action events go.
// Values: "all" (Mongo + zap), "db" (Mongo only), "log" (zap only), "off".
type Config struct {
	Admin string
}

// Logger provides convenience methods for logging audit events.
// A nil *Logger is a no-op, which lets tests pass nil.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) log(ctx context.Context, e audit.Event) {
	if l == nil || l.config.Admin == "off" {
		return
	}

	if l.config.Admin == "all" || l.config.Admin == "log" {
		fields := []zap.Field{
			zap.Bool("audit", true),
			zap.String("event_type", e.EventType),
			zap.Bool("success", e.Success),
		}
		if e.ActorID != nil {
			fields = append(fields, zap.String("actor_id", e.ActorID.Hex()))
		}
		if e.AssignmentID != nil {
			fields = append(fields, zap.String("assignment_id", e.AssignmentID.Hex()))
		}
		for k, v := range e.Details {
			fields = append(fields, zap.String("detail_"+k, v))
		}
		if e.Success {
			l.zapLog.Info("audit event", fields...)
		} else {
			l.zapLog.Warn("audit event", fields...)
		}
	}

	if l.config.Admin == "all" || l.config.Admin == "db" {
		if err := l.store.Create(ctx, e); err != nil {
			// Audit persistence failure must not fail the user's request.
			l.zapLog.Warn("audit event not persisted", zap.Error(err))
		}
	}
}

// AssignmentCreated records a successful assignment creation.
func (l *Logger) AssignmentCreated(ctx context.Context, actorID, workspaceID, assignmentID primitive.ObjectID, details map[string]string) {
	l.log(ctx, audit.Event{
		EventType:    audit.EventAssignmentCreated,
		ActorID:      &actorID,
		WorkspaceID:  &workspaceID,
		AssignmentID: &assignmentID,
		Success:      true,
		Details:      details,
	})
}

// AssignmentEdited records a successful assignment edit.
func (l *Logger) AssignmentEdited(ctx context.Context, actorID, assignmentID primitive.ObjectID) {
	l.log(ctx, audit.Event{
		EventType:    audit.EventAssignmentEdited,
		ActorID:      &actorID,
		AssignmentID: &assignmentID,
		Success:      true,
	})
}

// AssignmentDeleted records an assignment delete with its review cascade count.
func (l *Logger) AssignmentDeleted(ctx context.Context, actorID, assignmentID primitive.ObjectID, reviewsDeleted int64) {
	l.log(ctx, audit.Event{
		EventType:    audit.EventAssignmentDeleted,
		ActorID:      &actorID,
		AssignmentID: &assignmentID,
		Success:      true,
		Details:      map[string]string{"reviews_deleted": strconv.FormatInt(reviewsDeleted, 10)},
	})
}

// ReviewsGenerated records a generation run for an assignment.
func (l *Logger) ReviewsGenerated(ctx context.Context, actorID, assignmentID primitive.ObjectID, created int64) {
	eventType := audit.EventReviewsGenerated
	if created == 0 {
		eventType = audit.EventGenerationConflict
	}
	l.log(ctx, audit.Event{
		EventType:    eventType,
		ActorID:      &actorID,
		AssignmentID: &assignmentID,
		Success:      true,
		Details:      map[string]string{"reviews_created": strconv.FormatInt(created, 10)},
	})
}
