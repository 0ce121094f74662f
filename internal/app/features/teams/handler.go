// internal/app/features/teams/handler.go

// Package teams exposes the team management API: admin operations that move
// users between coaches and teams, and the coach's own team page.
package teams

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/coordinator"
	teamstore "github.com/mkelsey/dreamcoach/internal/app/store/teams"
	userstore "github.com/mkelsey/dreamcoach/internal/app/store/users"
)

const dbTimeout = 10 * time.Second

// Handler is the shared dependency container for the teams feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a teams Handler; called from bootstrap BuildHandler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) users() *userstore.Store { return userstore.New(h.DB) }
func (h *Handler) teams() *teamstore.Store { return teamstore.New(h.DB) }

func (h *Handler) coordinator() *coordinator.Coordinator {
	return coordinator.New(h.users(), h.teams(), h.Log)
}
