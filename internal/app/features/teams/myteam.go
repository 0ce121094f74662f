// internal/app/features/teams/myteam.go
package teams

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/features/shared"
	teamstore "github.com/mkelsey/dreamcoach/internal/app/store/teams"
	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
	"github.com/mkelsey/dreamcoach/internal/app/system/htmlsanitize"
)

// ServeMyTeam returns the signed-in coach's team.
func (h *Handler) ServeMyTeam(w http.ResponseWriter, r *http.Request) {
	coachID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	team, err := h.teams().GetByManager(ctx, coachID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, team)
}

type updateTeamRequest struct {
	TeamName    string     `json:"team_name"`
	Mission     string     `json:"mission"`
	NextMeeting *time.Time `json:"next_meeting,omitempty"`
}

// HandleUpdateMyTeam lets a coach edit their team's name, mission, and next
// meeting time. Free-text fields are sanitized before storage.
func (h *Handler) HandleUpdateMyTeam(w http.ResponseWriter, r *http.Request) {
	coachID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	var req updateTeamRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	name := strings.TrimSpace(htmlsanitize.Clean(req.TeamName))
	if name == "" {
		envelope.WriteError(w, apperr.New(apperr.Validation, "team name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	team, err := h.teams().GetByManager(ctx, coachID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	upd := teamstore.TeamInfoUpdate{
		TeamName:    name,
		Mission:     htmlsanitize.Clean(req.Mission),
		NextMeeting: req.NextMeeting,
	}
	if err := h.teams().UpdateInfo(ctx, team.ID, upd); err != nil {
		h.Log.Warn("update team failed", zap.String("team_id", team.ID.Hex()), zap.Error(err))
		envelope.WriteError(w, err)
		return
	}

	team, err = h.teams().GetByID(ctx, team.ID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, team)
}
