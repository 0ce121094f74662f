// internal/app/features/connects/connects.go
package connects

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/features/shared"
	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
	"github.com/mkelsey/dreamcoach/internal/app/system/htmlsanitize"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

// ServeConnects returns the signed-in user's connects document.
func (h *Handler) ServeConnects(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.connects().GetByUser(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, doc)
}

type connectRequest struct {
	PeerName string     `json:"peer_name"`
	Notes    string     `json:"notes,omitempty"`
	Date     *time.Time `json:"date,omitempty"` // defaults to now
}

// HandleAddConnect records a contact and bumps the connects counter.
func (h *Handler) HandleAddConnect(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	var req connectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	peer := strings.TrimSpace(htmlsanitize.Clean(req.PeerName))
	if peer == "" {
		envelope.WriteError(w, apperr.New(apperr.Validation, "peer name is required"))
		return
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	c := models.Connect{
		ID:        uuid.NewString(),
		PeerName:  peer,
		Notes:     htmlsanitize.Clean(req.Notes),
		Date:      date,
		CreatedAt: now,
	}
	if err := h.connects().AddConnect(ctx, userID, c); err != nil {
		h.Log.Warn("add connect failed", zap.String("user_id", userID.Hex()), zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	if err := h.users().IncConnectsCount(ctx, userID, 1); err != nil {
		h.Log.Warn("connects counter update failed", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	envelope.WriteOK(w, c)
}

// HandleRemoveConnect deletes a connect entry and decrements the counter.
func (h *Handler) HandleRemoveConnect(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	connectID := chi.URLParam(r, "connectID")

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.connects().GetByUser(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	exists := false
	for _, c := range doc.Connects {
		if c.ID == connectID {
			exists = true
			break
		}
	}
	if !exists {
		envelope.WriteOK(w, map[string]string{"id": connectID})
		return
	}

	if err := h.connects().RemoveConnect(ctx, userID, connectID); err != nil {
		envelope.WriteError(w, err)
		return
	}
	if err := h.users().IncConnectsCount(ctx, userID, -1); err != nil {
		h.Log.Warn("connects counter update failed", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	envelope.WriteOK(w, map[string]string{"id": connectID})
}
