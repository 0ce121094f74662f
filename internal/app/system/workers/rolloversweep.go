// internal/app/system/workers/rolloversweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/rollover"
)

// ActiveUserSource lists the users the sweep visits.
type ActiveUserSource interface {
	ListActiveIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

// RolloverSweep is a background worker that walks every active user and
// rolls stale weeks forward. Users also roll over lazily on access; the
// sweep keeps archives current for users who have not signed in.
type RolloverSweep struct {
	engine   *rollover.Engine
	users    ActiveUserSource
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewRolloverSweep creates a new rollover sweep worker.
func NewRolloverSweep(engine *rollover.Engine, users ActiveUserSource, logger *zap.Logger, interval time.Duration) *RolloverSweep {
	return &RolloverSweep{
		engine:   engine,
		users:    users,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *RolloverSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("rollover sweep worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *RolloverSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("rollover sweep worker stopped")
}

func (w *RolloverSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *RolloverSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ids, err := w.users.ListActiveIDs(ctx)
	if err != nil {
		w.log.Error("rollover sweep: listing active users failed", zap.Error(err))
		return
	}

	rolled := 0
	for _, id := range ids {
		state, err := w.engine.Evaluate(ctx, id)
		if err != nil {
			w.log.Warn("rollover sweep: evaluate failed",
				zap.String("user_id", id.Hex()), zap.Error(err))
			continue
		}
		if state == rollover.StateCurrent {
			continue
		}
		if _, err := w.engine.EnsureCurrentWeek(ctx, id); err != nil {
			w.log.Warn("rollover sweep: rollover failed",
				zap.String("user_id", id.Hex()), zap.Error(err))
			continue
		}
		rolled++
	}

	if rolled > 0 {
		w.log.Info("rollover sweep completed", zap.Int("users_rolled", rolled))
	}
}
