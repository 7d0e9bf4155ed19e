// internal/app/features/assignments/handler.go
package assignments

import (
	"github.com/dalemusser/peerhub/internal/app/services/reviewgen"
	assignmentstore "github.com/dalemusser/peerhub/internal/app/store/assignments"
	reviewstore "github.com/dalemusser/peerhub/internal/app/store/reviews"
	userstore "github.com/dalemusser/peerhub/internal/app/store/users"
	"github.com/dalemusser/peerhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for assignment lifecycle operations:
// create, edit, delete, and triggering review generation.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	AuditLog    *auditlog.Logger
	Assignments *assignmentstore.Store
	Reviews     *reviewstore.Store
	Users       *userstore.Store
	Generator   *reviewgen.Generator
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		AuditLog:    audit,
		Assignments: assignmentstore.New(db),
		Reviews:     reviewstore.New(db),
		Users:       userstore.New(db),
		Generator:   reviewgen.New(db, logger),
	}
}
