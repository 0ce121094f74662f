// internal/app/features/teams/assign.go
package teams

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/features/shared"
	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
)

type membershipRequest struct {
	UserID  string `json:"user_id"`
	CoachID string `json:"coach_id"`
}

// HandleAssign enrolls a user onto a coach's team (admin only).
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	userID, err := shared.PathOID(req.UserID)
	if err != nil {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed user id"))
		return
	}
	coachID, err := shared.PathOID(req.CoachID)
	if err != nil {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed coach id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if err := h.coordinator().AssignUserToCoach(ctx, userID, coachID); err != nil {
		h.Log.Warn("assign failed",
			zap.String("user_id", req.UserID),
			zap.String("coach_id", req.CoachID),
			zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, map[string]string{"user_id": req.UserID, "coach_id": req.CoachID})
}

// HandleUnassign removes a user from a coach's team (admin only). Repeating
// an unassign is a no-op success.
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	userID, err := shared.PathOID(req.UserID)
	if err != nil {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed user id"))
		return
	}
	coachID, err := shared.PathOID(req.CoachID)
	if err != nil {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed coach id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if err := h.coordinator().UnassignUserFromTeam(ctx, userID, coachID); err != nil {
		h.Log.Warn("unassign failed",
			zap.String("user_id", req.UserID),
			zap.String("coach_id", req.CoachID),
			zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, map[string]string{"user_id": req.UserID})
}
