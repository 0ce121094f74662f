// internal/app/features/dreams/handler.go

// Package dreams manages a user's dreams and the recurring goal templates
// hung off them.
package dreams

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	dreamstore "github.com/mkelsey/dreamcoach/internal/app/store/dreams"
	userstore "github.com/mkelsey/dreamcoach/internal/app/store/users"
)

const dbTimeout = 10 * time.Second

// Handler is the shared dependency container for the dreams feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a dreams Handler; called from bootstrap BuildHandler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) dreams() *dreamstore.Store { return dreamstore.New(h.DB) }
func (h *Handler) users() *userstore.Store   { return userstore.New(h.DB) }
