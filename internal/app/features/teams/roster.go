// internal/app/features/teams/roster.go
package teams

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

type rosterResponse struct {
	Team    models.Team   `json:"team"`
	Members []models.User `json:"members"`
}

// ServeRoster returns a coach's team and its members. Admins can view any
// roster; a coach only their own.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	coachID, err := pathCoachID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	u, _ := auth.CurrentUser(r)
	if u.Role != "admin" && u.ID != coachID.Hex() {
		envelope.WriteError(w, apperr.New(apperr.Forbidden, "you do not have access to this roster"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	team, err := h.teams().GetByManager(ctx, coachID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	members := []models.User{}
	for _, memberID := range team.TeamMembers {
		member, err := h.users().GetByID(ctx, memberID)
		if apperr.IsKind(err, apperr.NotFound) {
			// Dangling roster entry; reconciliation cleans these up.
			h.Log.Warn("roster references missing user",
				zap.String("team_id", team.ID.Hex()),
				zap.String("member_id", memberID.Hex()))
			continue
		}
		if err != nil {
			envelope.WriteError(w, err)
			return
		}
		members = append(members, *member)
	}

	envelope.WriteOK(w, rosterResponse{Team: *team, Members: members})
}
