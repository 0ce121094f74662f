// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// TestContext returns a context with the standard test timeout.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestDB connects to the Mongo instance named by
// DREAMCOACH_TEST_MONGO_URI and returns a per-test database that is dropped
// on cleanup. Tests that need a real database are skipped when the variable
// is unset, so the suite stays runnable everywhere.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("DREAMCOACH_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("DREAMCOACH_TEST_MONGO_URI not set; skipping Mongo-backed test")
	}

	ctx, cancel := TestContext()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect: %v", err)
	}

	db := client.Database("dreamcoach_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// NewMember builds an unassigned member user in a MemUserStore.
func NewMember(users *MemUserStore, name string) models.User {
	return users.Put(models.User{
		ID:       primitive.NewObjectID(),
		FullName: name,
		Role:     "member",
		Status:   "active",
	})
}

// NewCoachWithTeam builds a coach user plus their team in the fakes.
func NewCoachWithTeam(users *MemUserStore, teams *MemTeamStore, name, teamName string) (models.User, models.Team) {
	coach := users.Put(models.User{
		ID:       primitive.NewObjectID(),
		FullName: name,
		Role:     "coach",
		IsCoach:  true,
		Status:   "active",
	})
	team := teams.Put(models.Team{
		ID:          primitive.NewObjectID(),
		ManagerID:   coach.ID,
		TeamName:    teamName,
		TeamMembers: []primitive.ObjectID{},
		Status:      "active",
	})
	return coach, team
}

// Enroll wires a user onto a team in both fakes, bypassing the coordinator.
// Used to stage preconditions without exercising the code under test.
func Enroll(users *MemUserStore, teams *MemTeamStore, user models.User, team models.Team) {
	_ = teams.AddMember(context.Background(), team.ID, user.ID)
	_ = users.SetAssignedCoach(context.Background(), user.ID, team.ManagerID, team.TeamName)
}
