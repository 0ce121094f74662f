// internal/app/coordinator/coordinator.go

// Package coordinator executes the multi-document User/Team state
// transitions. There is no cross-document transaction: each operation is an
// ordered sequence of single-document writes, Team side first, User side
// second. Every step is idempotent, so a sequence that fails partway can be
// re-issued as-is and self-heals.
package coordinator

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// UserStore is the narrow user capability the coordinator needs.
// Implemented by store/users; faked in tests.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SetAssignedCoach(ctx context.Context, userID, coachID primitive.ObjectID, teamName string) error
	ClearAssignedCoach(ctx context.Context, userID primitive.ObjectID) error
	SetCoachRole(ctx context.Context, userID primitive.ObjectID) error
	ClearCoachRole(ctx context.Context, userID primitive.ObjectID) error
	ListByAssignedCoach(ctx context.Context, coachID primitive.ObjectID) ([]models.User, error)
}

// TeamStore is the narrow team capability the coordinator needs.
type TeamStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	GetByManager(ctx context.Context, managerID primitive.ObjectID) (*models.Team, error)
	Create(ctx context.Context, t models.Team) (models.Team, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error
	RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error
	SetManager(ctx context.Context, teamID, managerID primitive.ObjectID) error
}

// Coordinator orchestrates assign/unassign/promote/replace and the
// reconciliation repair pass.
type Coordinator struct {
	users UserStore
	teams TeamStore
	log   *zap.Logger
}

// New builds a Coordinator. Stores are injected so tests can substitute
// in-memory fakes.
func New(users UserStore, teams TeamStore, logger *zap.Logger) *Coordinator {
	return &Coordinator{users: users, teams: teams, log: logger}
}
