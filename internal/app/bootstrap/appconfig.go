// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging level, and request limits. AppConfig is everything specific to
// PeerHub: the Mongo connection, the session cookie shared with the
// identity service, and audit logging behavior.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration. The key must match the identity
	// service that issues the session cookie; PeerHub only verifies it.
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: peerhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Audit logging: "all" (db+log), "db", "log", or "off".
	AuditLogAdmin string
}
