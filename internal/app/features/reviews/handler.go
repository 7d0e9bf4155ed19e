// internal/app/features/reviews/handler.go
package reviews

import (
	"github.com/dalemusser/peerhub/internal/app/services/submission"
	assignmentstore "github.com/dalemusser/peerhub/internal/app/store/assignments"
	reviewstore "github.com/dalemusser/peerhub/internal/app/store/reviews"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for review submission and reads.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Assignments *assignmentstore.Store
	Reviews     *reviewstore.Store
	Submission  *submission.Validator
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Assignments: assignmentstore.New(db),
		Reviews:     reviewstore.New(db),
		Submission:  submission.New(db, logger),
	}
}
