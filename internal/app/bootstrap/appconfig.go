// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging
// level, CORS); AppConfig is everything specific to DreamCoach. Values are
// loaded in LoadConfig from config files, DREAMCOACH_* environment
// variables, and command-line flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: dreamcoach-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Weekly rollover sweep
	RolloverSweepInterval time.Duration // how often the background sweep runs
}
