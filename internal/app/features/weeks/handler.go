// internal/app/features/weeks/handler.go

// Package weeks serves a user's current goal week and past-week archive.
// Every read of the current week goes through the rollover engine, so a
// stale week is archived and replaced on access.
package weeks

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/rollover"
	dreamstore "github.com/mkelsey/dreamcoach/internal/app/store/dreams"
	pastweekstore "github.com/mkelsey/dreamcoach/internal/app/store/pastweeks"
	weekstore "github.com/mkelsey/dreamcoach/internal/app/store/weeks"
)

const dbTimeout = 10 * time.Second

// Handler is the shared dependency container for the weeks feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a weeks Handler; called from bootstrap BuildHandler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) weeks() *weekstore.Store    { return weekstore.New(h.DB) }
func (h *Handler) past() *pastweekstore.Store { return pastweekstore.New(h.DB) }

func (h *Handler) engine() *rollover.Engine {
	return rollover.New(h.weeks(), h.past(), dreamstore.New(h.DB), h.Log)
}
