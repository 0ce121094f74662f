// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	connectsfeature "github.com/mkelsey/dreamcoach/internal/app/features/connects"
	dreamsfeature "github.com/mkelsey/dreamcoach/internal/app/features/dreams"
	healthfeature "github.com/mkelsey/dreamcoach/internal/app/features/health"
	scoringfeature "github.com/mkelsey/dreamcoach/internal/app/features/scoring"
	teamsfeature "github.com/mkelsey/dreamcoach/internal/app/features/teams"
	weeksfeature "github.com/mkelsey/dreamcoach/internal/app/features/weeks"
	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It creates the session manager, applies the
// session-loading middleware globally, and mounts one subrouter per feature.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	// Team management: admin membership surgery plus the coach's own team.
	r.Mount("/teams", teamsfeature.Routes(teamsfeature.NewHandler(db, logger), sessionMgr))

	// Weekly goals: current week, goal mutations, and the archive.
	r.Mount("/weeks", weeksfeature.Routes(weeksfeature.NewHandler(db, logger), sessionMgr))

	// Dreams and recurring goal templates.
	r.Mount("/dreams", dreamsfeature.Routes(dreamsfeature.NewHandler(db, logger), sessionMgr))

	// Peer connects.
	r.Mount("/connects", connectsfeature.Routes(connectsfeature.NewHandler(db, logger), sessionMgr))

	// Quarterly scoring.
	r.Mount("/scoring", scoringfeature.Routes(scoringfeature.NewHandler(db, logger), sessionMgr))

	return r, nil
}
