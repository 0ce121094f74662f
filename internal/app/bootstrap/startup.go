// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/rollover"
	dreamstore "github.com/mkelsey/dreamcoach/internal/app/store/dreams"
	pastweekstore "github.com/mkelsey/dreamcoach/internal/app/store/pastweeks"
	userstore "github.com/mkelsey/dreamcoach/internal/app/store/users"
	weekstore "github.com/mkelsey/dreamcoach/internal/app/store/weeks"
	"github.com/mkelsey/dreamcoach/internal/app/system/workers"
)

// rolloverSweep lives for the whole process; Shutdown stops it.
var rolloverSweep *workers.RolloverSweep

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It starts
// the background rollover sweep so users who never sign in still get their
// weeks archived on schedule.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	engine := rollover.New(weekstore.New(db), pastweekstore.New(db), dreamstore.New(db), logger)

	rolloverSweep = workers.NewRolloverSweep(engine, userstore.New(db), logger, appCfg.RolloverSweepInterval)
	rolloverSweep.Start()
	return nil
}
