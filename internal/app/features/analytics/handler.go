// internal/app/features/analytics/handler.go
package analytics

import (
	assignmentstore "github.com/dalemusser/peerhub/internal/app/store/assignments"
	reviewstore "github.com/dalemusser/peerhub/internal/app/store/reviews"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the read-only analytics projections: per-user averages,
// assignment rankings, completion status, and cross-assignment series.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Assignments *assignmentstore.Store
	Reviews     *reviewstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Assignments: assignmentstore.New(db),
		Reviews:     reviewstore.New(db),
	}
}
