// internal/app/features/teams/replace.go
package teams

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/coordinator"
	"github.com/mkelsey/dreamcoach/internal/app/features/shared"
	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
)

type replaceRequest struct {
	OldCoachID     string `json:"old_coach_id"`
	NewCoachID     string `json:"new_coach_id,omitempty"`
	DemoteOption   string `json:"demote_option,omitempty"`
	AssignToTeamID string `json:"assign_to_team_id,omitempty"`
}

// HandleReplaceCoach runs one of the coach replacement branches: disband the
// team, hand it to a new coach, or merge its members into another team
// (admin only).
func (h *Handler) HandleReplaceCoach(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	oldCoachID, err := shared.PathOID(req.OldCoachID)
	if err != nil {
		envelope.WriteError(w, apperr.New(apperr.Validation, "malformed old coach id"))
		return
	}

	creq := coordinator.ReplaceRequest{
		OldCoachID:   oldCoachID,
		DemoteOption: req.DemoteOption,
	}
	if req.NewCoachID != "" {
		id, err := shared.PathOID(req.NewCoachID)
		if err != nil {
			envelope.WriteError(w, apperr.New(apperr.Validation, "malformed new coach id"))
			return
		}
		creq.NewCoachID = &id
	}
	if req.AssignToTeamID != "" {
		id, err := shared.PathOID(req.AssignToTeamID)
		if err != nil {
			envelope.WriteError(w, apperr.New(apperr.Validation, "malformed team id"))
			return
		}
		creq.AssignToTeamID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if err := h.coordinator().ReplaceTeamCoach(ctx, creq); err != nil {
		h.Log.Warn("replace coach failed",
			zap.String("old_coach_id", req.OldCoachID),
			zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, map[string]string{"old_coach_id": req.OldCoachID})
}

// HandleReconcile runs the invariant repair pass for one coach's team
// (admin only).
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	coachID, err := pathCoachID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	report, err := h.coordinator().ReconcileTeam(ctx, coachID)
	if err != nil {
		h.Log.Warn("reconcile failed", zap.String("coach_id", coachID.Hex()), zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, report)
}

func pathCoachID(r *http.Request) (primitive.ObjectID, error) {
	return shared.PathOID(chi.URLParam(r, "coachID"))
}
