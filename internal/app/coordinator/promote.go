// internal/app/coordinator/promote.go
package coordinator

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/teamnames"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// PromoteUserToCoach creates an empty team managed by the user and marks the
// user as a coach. If teamName is empty a readable adjective+noun name is
// generated.
//
// Sequence: create Team, then flip the user's role. A user-side failure
// leaves an empty team behind; ReplaceTeamCoach with the disband option
// removes the orphan so promote can be re-issued.
func (c *Coordinator) PromoteUserToCoach(ctx context.Context, userID primitive.ObjectID, teamName string) (models.Team, error) {
	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return models.Team{}, err
	}
	if _, err := c.teams.GetByManager(ctx, userID); err == nil {
		return models.Team{}, apperr.New(apperr.Conflict, "user already manages a team")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return models.Team{}, err
	}
	if user.AssignedCoachID != nil {
		return models.Team{}, apperr.New(apperr.Conflict, "user must leave their current team before becoming a coach")
	}

	if teamName == "" {
		teamName = teamnames.Random()
	}

	team, err := c.teams.Create(ctx, models.Team{
		ManagerID:   userID,
		TeamName:    teamName,
		TeamMembers: []primitive.ObjectID{},
	})
	if err != nil {
		return models.Team{}, apperr.Wrap(apperr.Unknown, "creating team", err)
	}

	if err := c.users.SetCoachRole(ctx, userID); err != nil {
		c.log.Error("promote: user write failed after team create; invariant transiently broken",
			zap.String("user_id", userID.Hex()),
			zap.String("team_id", team.ID.Hex()),
			zap.Error(err))
		return models.Team{}, apperr.Wrap(apperr.PartialConsistency, "setting coach role", err)
	}
	return team, nil
}
