// internal/app/features/scoring/handler.go

// Package scoring records quarterly self-assessment scores.
package scoring

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	scorestore "github.com/mkelsey/dreamcoach/internal/app/store/scoring"
	userstore "github.com/mkelsey/dreamcoach/internal/app/store/users"
)

const dbTimeout = 10 * time.Second

// Handler is the shared dependency container for the scoring feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a scoring Handler; called from bootstrap BuildHandler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) scores() *scorestore.Store { return scorestore.New(h.DB) }
func (h *Handler) users() *userstore.Store   { return userstore.New(h.DB) }
