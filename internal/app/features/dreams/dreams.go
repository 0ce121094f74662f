// internal/app/features/dreams/dreams.go
package dreams

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

// ServeDreams returns the signed-in user's dreams document.
func (h *Handler) ServeDreams(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.dreams().GetByUser(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, doc)
}

type dreamRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (req *dreamRequest) sanitize() (dreamRequest, error) {
	out := dreamRequest{
		Title:       strings.TrimSpace(htmlsanitize.Clean(req.Title)),
		Description: htmlsanitize.Clean(req.Description),
		Category:    strings.TrimSpace(htmlsanitize.Clean(req.Category)),
	}
	if out.Title == "" {
		return out, apperr.New(apperr.Validation, "dream title is required")
	}
	return out, nil
}

// HandleAddDream appends a new dream and bumps the user's dreams counter.
func (h *Handler) HandleAddDream(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	var req dreamRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	clean, err := req.sanitize()
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	dream := models.Dream{
		ID:          uuid.NewString(),
		Title:       clean.Title,
		Description: clean.Description,
		Category:    clean.Category,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.dreams().AddDream(ctx, userID, dream); err != nil {
		h.Log.Warn("add dream failed", zap.String("user_id", userID.Hex()), zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	if err := h.users().IncDreamsCount(ctx, userID, 1); err != nil {
		h.Log.Warn("dreams counter update failed", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	envelope.WriteOK(w, dream)
}

// HandleUpdateDream replaces an existing dream's editable fields.
func (h *Handler) HandleUpdateDream(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	dreamID := chi.URLParam(r, "dreamID")

	var req dreamRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	clean, err := req.sanitize()
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.dreams().GetByUser(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	var existing *models.Dream
	for i := range doc.Dreams {
		if doc.Dreams[i].ID == dreamID {
			existing = &doc.Dreams[i]
			break
		}
	}
	if existing == nil {
		envelope.WriteError(w, apperr.New(apperr.NotFound, "dream not found"))
		return
	}

	updated := models.Dream{
		ID:          dreamID,
		Title:       clean.Title,
		Description: clean.Description,
		Category:    clean.Category,
		CreatedAt:   existing.CreatedAt,
	}
	if err := h.dreams().UpdateDream(ctx, userID, updated); err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, updated)
}

// HandleRemoveDream deletes a dream and decrements the dreams counter.
func (h *Handler) HandleRemoveDream(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	dreamID := chi.URLParam(r, "dreamID")

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.dreams().GetByUser(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	exists := false
	for _, d := range doc.Dreams {
		if d.ID == dreamID {
			exists = true
			break
		}
	}
	if !exists {
		// Deleting something already gone is a success, but the counter
		// must not move twice.
		envelope.WriteOK(w, map[string]string{"id": dreamID})
		return
	}

	if err := h.dreams().RemoveDream(ctx, userID, dreamID); err != nil {
		envelope.WriteError(w, err)
		return
	}
	if err := h.users().IncDreamsCount(ctx, userID, -1); err != nil {
		h.Log.Warn("dreams counter update failed", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	envelope.WriteOK(w, map[string]string{"id": dreamID})
}
