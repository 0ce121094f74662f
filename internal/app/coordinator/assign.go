// internal/app/coordinator/assign.go
package coordinator

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
)

// AssignUserToCoach enrolls a user on a coach's team.
//
// Sequence: validate against current reads, add to team_members, then set
// the user's back-reference. If the user-side write fails the team-side
// write is NOT rolled back; the error is classified PartialConsistency and
// the caller re-issues the same call, which is a no-op on the team side.
func (c *Coordinator) AssignUserToCoach(ctx context.Context, userID, coachID primitive.ObjectID) error {
	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	team, err := c.teams.GetByManager(ctx, coachID)
	if err != nil {
		return err
	}

	// Already assigned is an explicit conflict, never a silent merge. The
	// one exception: a retry of a partially-applied assign to the same
	// coach is allowed through so it can finish.
	if user.AssignedCoachID != nil && *user.AssignedCoachID != coachID {
		return apperr.New(apperr.Conflict, "user is already assigned to a coach")
	}
	if team.HasMember(userID) && user.AssignedCoachID != nil {
		return apperr.New(apperr.Conflict, "user is already a member of this team")
	}

	if err := c.teams.AddMember(ctx, team.ID, userID); err != nil {
		return apperr.Wrap(apperr.Unknown, "adding team member", err)
	}
	if err := c.users.SetAssignedCoach(ctx, userID, coachID, team.TeamName); err != nil {
		c.log.Error("assign: user write failed after team write; invariant transiently broken",
			zap.String("user_id", userID.Hex()),
			zap.String("coach_id", coachID.Hex()),
			zap.Error(err))
		return apperr.Wrap(apperr.PartialConsistency, "setting user coach reference", err)
	}
	return nil
}

// UnassignUserFromTeam removes a user from a coach's team. Idempotent by
// construction: pulling an absent member and clearing an already-clear
// back-reference are both no-ops, so a retry after partial failure always
// converges.
func (c *Coordinator) UnassignUserFromTeam(ctx context.Context, userID, coachID primitive.ObjectID) error {
	team, err := c.teams.GetByManager(ctx, coachID)
	if err != nil {
		return err
	}
	if _, err := c.users.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := c.teams.RemoveMember(ctx, team.ID, userID); err != nil {
		return apperr.Wrap(apperr.Unknown, "removing team member", err)
	}
	if err := c.users.ClearAssignedCoach(ctx, userID); err != nil {
		c.log.Error("unassign: user write failed after team write; invariant transiently broken",
			zap.String("user_id", userID.Hex()),
			zap.String("coach_id", coachID.Hex()),
			zap.Error(err))
		return apperr.Wrap(apperr.PartialConsistency, "clearing user coach reference", err)
	}
	return nil
}
