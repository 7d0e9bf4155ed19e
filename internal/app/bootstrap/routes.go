// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/dalemusser/peerhub/internal/app/features/analytics"
	assignmentsfeature "github.com/dalemusser/peerhub/internal/app/features/assignments"
	healthfeature "github.com/dalemusser/peerhub/internal/app/features/health"
	reviewsfeature "github.com/dalemusser/peerhub/internal/app/features/reviews"
	auditstore "github.com/dalemusser/peerhub/internal/app/store/audit"
	"github.com/dalemusser/peerhub/internal/app/system/auditlog"
	"github.com/dalemusser/peerhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. PeerHub applies session middleware and
// mounts the feature routers: assignments, reviews, analytics, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.PeerHubMongoDatabase
	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{Admin: appCfg.AuditLogAdmin})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.PeerHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Assignment lifecycle and review generation
	assignmentsHandler := assignmentsfeature.NewHandler(db, audit, logger)
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler, sessionMgr))

	// Review submission and reads
	reviewsHandler := reviewsfeature.NewHandler(db, logger)
	r.Mount("/reviews", reviewsfeature.Routes(reviewsHandler, sessionMgr))

	// Analytics projections
	analyticsHandler := analyticsfeature.NewHandler(db, logger)
	r.Mount("/analytics", analyticsfeature.Routes(analyticsHandler, sessionMgr))

	return r, nil
}
