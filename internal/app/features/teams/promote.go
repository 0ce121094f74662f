// internal/app/features/teams/promote.go
package teams

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/features/shared"
	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
	"github.com/mkelsey/dreamcoach/internal/app/system/htmlsanitize"
)

type promoteRequest struct {
	UserID   string `json:"user_id"`
	TeamName string `json:"team_name,omitempty"` // blank picks a generated name
}

// HandlePromote turns a member into a coach with a fresh team (admin only).
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	userID, err := shared.PathOID(req.UserID)
	if err != nil {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed user id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	team, err := h.coordinator().PromoteUserToCoach(ctx, userID, htmlsanitize.Clean(req.TeamName))
	if err != nil {
		h.Log.Warn("promote failed", zap.String("user_id", req.UserID), zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, team)
}
