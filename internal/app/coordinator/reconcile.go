// internal/app/coordinator/reconcile.go
package coordinator

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
)

// ReconcileReport summarizes what a repair pass fixed.
type ReconcileReport struct {
	Repointed int `json:"repointed"` // listed members whose back-reference was wrong
	Enrolled  int `json:"enrolled"`  // users pointing at the coach but missing from the roster
}

// ReconcileTeam repairs drift between a team's roster and its members' back
// references. It is safe to run at any time and as often as needed: every
// fix is an idempotent single-document write toward the invariant
//
//	u.id in team.team_members  <=>  u.assigned_coach_id == team.manager_id
//
// The roster is treated as authoritative for listed members; users pointing
// at the coach from outside the roster are enrolled.
func (c *Coordinator) ReconcileTeam(ctx context.Context, coachID primitive.ObjectID) (ReconcileReport, error) {
	var report ReconcileReport

	team, err := c.teams.GetByManager(ctx, coachID)
	if err != nil {
		return report, err
	}

	// Forward direction: every listed member points back at the coach.
	for _, memberID := range team.TeamMembers {
		member, err := c.users.GetByID(ctx, memberID)
		if apperr.IsKind(err, apperr.NotFound) {
			// Roster references a deleted user; drop the entry.
			if err := c.teams.RemoveMember(ctx, team.ID, memberID); err != nil {
				return report, apperr.Wrap(apperr.Unknown, "removing dangling roster entry", err)
			}
			report.Repointed++
			continue
		}
		if err != nil {
			return report, err
		}
		if member.AssignedCoachID == nil || *member.AssignedCoachID != coachID {
			if err := c.users.SetAssignedCoach(ctx, memberID, coachID, team.TeamName); err != nil {
				return report, apperr.Wrap(apperr.Unknown, "repointing member", err)
			}
			report.Repointed++
		}
	}

	// Reverse direction: everyone pointing at the coach is on the roster.
	pointing, err := c.users.ListByAssignedCoach(ctx, coachID)
	if err != nil {
		return report, err
	}
	for _, u := range pointing {
		if u.ID == coachID || team.HasMember(u.ID) {
			continue
		}
		if err := c.teams.AddMember(ctx, team.ID, u.ID); err != nil {
			return report, apperr.Wrap(apperr.Unknown, "enrolling stray member", err)
		}
		report.Enrolled++
	}

	if report.Repointed > 0 || report.Enrolled > 0 {
		c.log.Info("team reconciled",
			zap.String("coach_id", coachID.Hex()),
			zap.Int("repointed", report.Repointed),
			zap.Int("enrolled", report.Enrolled))
	}
	return report, nil
}
