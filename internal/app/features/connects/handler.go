// internal/app/features/connects/handler.go

// Package connects records a user's intentional contacts with other people.
package connects

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	connectstore "github.com/mkelsey/dreamcoach/internal/app/store/connects"
	userstore "github.com/mkelsey/dreamcoach/internal/app/store/users"
)

const dbTimeout = 10 * time.Second

// Handler is the shared dependency container for the connects feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a connects Handler; called from bootstrap BuildHandler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) connects() *connectstore.Store { return connectstore.New(h.DB) }
func (h *Handler) users() *userstore.Store       { return userstore.New(h.DB) }
