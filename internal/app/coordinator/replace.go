// internal/app/coordinator/replace.go
package coordinator

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
)

// Demote options for ReplaceTeamCoach.
const (
	DemoteDisbandTeam = "disband-team"
	DemoteUnassigned  = "unassigned"
	DemoteReassign    = "reassign"
)

// ReplaceRequest describes a coach replacement.
//
// Branches:
//   - DemoteOption == DemoteDisbandTeam: dissolve the old coach's team.
//   - NewCoachID set: transfer team ownership; the old coach is demoted per
//     DemoteOption (DemoteUnassigned, or DemoteReassign into AssignToTeamID's
//     team).
//   - NewCoachID nil and AssignToTeamID set: merge the old team's members
//     into AssignToTeamID's team, then disband the old team.
type ReplaceRequest struct {
	OldCoachID     primitive.ObjectID
	NewCoachID     *primitive.ObjectID
	DemoteOption   string
	AssignToTeamID *primitive.ObjectID
}

// ReplaceTeamCoach runs the disband, replace, or merge branch. Each branch
// is a sequence of idempotent member-by-member steps, so a mid-sequence
// failure is retried with the same request.
func (c *Coordinator) ReplaceTeamCoach(ctx context.Context, req ReplaceRequest) error {
	team, err := c.teams.GetByManager(ctx, req.OldCoachID)
	if err != nil {
		return err
	}

	switch {
	case req.DemoteOption == DemoteDisbandTeam:
		return c.disband(ctx, req.OldCoachID)

	case req.NewCoachID != nil:
		return c.replace(ctx, req)

	case req.AssignToTeamID != nil:
		return c.merge(ctx, team.ID, req.OldCoachID, *req.AssignToTeamID)

	default:
		return apperr.New(apperr.Validation, "a new coach, a merge target, or the disband option is required")
	}
}

// disband clears the roster, nulls every former member's back-reference,
// deletes the team, and demotes the coach. Every step tolerates re-runs.
func (c *Coordinator) disband(ctx context.Context, coachID primitive.ObjectID) error {
	team, err := c.teams.GetByManager(ctx, coachID)
	if err != nil {
		return err
	}

	for _, memberID := range team.TeamMembers {
		if err := c.users.ClearAssignedCoach(ctx, memberID); err != nil {
			c.log.Error("disband: clearing member reference failed; invariant transiently broken",
				zap.String("team_id", team.ID.Hex()),
				zap.String("member_id", memberID.Hex()),
				zap.Error(err))
			return apperr.Wrap(apperr.PartialConsistency, "clearing member coach reference", err)
		}
	}
	if err := c.teams.Delete(ctx, team.ID); err != nil {
		return apperr.Wrap(apperr.Unknown, "deleting team", err)
	}
	if err := c.users.ClearCoachRole(ctx, coachID); err != nil {
		c.log.Error("disband: demoting coach failed after team delete",
			zap.String("coach_id", coachID.Hex()),
			zap.Error(err))
		return apperr.Wrap(apperr.PartialConsistency, "demoting coach", err)
	}
	return nil
}

// replace transfers team ownership to a new coach and demotes the old one.
func (c *Coordinator) replace(ctx context.Context, req ReplaceRequest) error {
	newCoachID := *req.NewCoachID

	team, err := c.teams.GetByManager(ctx, req.OldCoachID)
	if err != nil {
		return err
	}
	newCoach, err := c.users.GetByID(ctx, newCoachID)
	if err != nil {
		return err
	}

	// A new coach who already manages a team makes "replace" ambiguous with
	// "merge"; the caller must resolve that with an explicit merge target.
	if _, err := c.teams.GetByManager(ctx, newCoachID); err == nil {
		return apperr.New(apperr.Conflict, "new coach already manages a team; merge the teams explicitly instead")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return err
	}

	if err := c.teams.SetManager(ctx, team.ID, newCoachID); err != nil {
		return apperr.Wrap(apperr.Unknown, "transferring team ownership", err)
	}
	if err := c.users.SetCoachRole(ctx, newCoachID); err != nil {
		c.log.Error("replace: promoting new coach failed after ownership transfer",
			zap.String("team_id", team.ID.Hex()),
			zap.String("new_coach_id", newCoachID.Hex()),
			zap.Error(err))
		return apperr.Wrap(apperr.PartialConsistency, "promoting new coach", err)
	}

	// New coach was a member somewhere: pull them out of that roster.
	if newCoach.AssignedCoachID != nil {
		if oldTeam, err := c.teams.GetByManager(ctx, *newCoach.AssignedCoachID); err == nil {
			if err := c.teams.RemoveMember(ctx, oldTeam.ID, newCoachID); err != nil {
				return apperr.Wrap(apperr.PartialConsistency, "removing new coach from former team", err)
			}
		}
		if err := c.users.ClearAssignedCoach(ctx, newCoachID); err != nil {
			return apperr.Wrap(apperr.PartialConsistency, "clearing new coach membership", err)
		}
	}

	// Repoint every member's back-reference at the new coach.
	for _, memberID := range team.TeamMembers {
		if memberID == newCoachID {
			if err := c.teams.RemoveMember(ctx, team.ID, newCoachID); err != nil {
				return apperr.Wrap(apperr.PartialConsistency, "removing new coach from roster", err)
			}
			continue
		}
		if err := c.users.SetAssignedCoach(ctx, memberID, newCoachID, team.TeamName); err != nil {
			c.log.Error("replace: repointing member failed; invariant transiently broken",
				zap.String("team_id", team.ID.Hex()),
				zap.String("member_id", memberID.Hex()),
				zap.Error(err))
			return apperr.Wrap(apperr.PartialConsistency, "repointing member", err)
		}
	}

	// Demote the old coach per the requested option.
	if err := c.users.ClearCoachRole(ctx, req.OldCoachID); err != nil {
		return apperr.Wrap(apperr.PartialConsistency, "demoting old coach", err)
	}
	if req.DemoteOption == DemoteReassign && req.AssignToTeamID != nil {
		target, err := c.teams.GetByID(ctx, *req.AssignToTeamID)
		if err != nil {
			return err
		}
		if err := c.AssignUserToCoach(ctx, req.OldCoachID, target.ManagerID); err != nil {
			return err
		}
	}
	return nil
}

// merge moves every member of the old team onto the target team using the
// ordinary assign sequence, then disbands the now-empty old team.
func (c *Coordinator) merge(ctx context.Context, oldTeamID, oldCoachID, targetTeamID primitive.ObjectID) error {
	if oldTeamID == targetTeamID {
		return apperr.New(apperr.Validation, "cannot merge a team into itself")
	}
	target, err := c.teams.GetByID(ctx, targetTeamID)
	if err != nil {
		return err
	}
	oldTeam, err := c.teams.GetByID(ctx, oldTeamID)
	if err != nil {
		return err
	}

	for _, memberID := range oldTeam.TeamMembers {
		if err := c.UnassignUserFromTeam(ctx, memberID, oldCoachID); err != nil {
			return err
		}
		if err := c.AssignUserToCoach(ctx, memberID, target.ManagerID); err != nil {
			return err
		}
	}
	return c.disband(ctx, oldCoachID)
}
