// internal/app/features/dreams/templates.go
package dreams

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mkelsey/dreamcoach/internal/app/features/shared"
	"github.com/mkelsey/dreamcoach/internal/app/system/apperr"
	"github.com/mkelsey/dreamcoach/internal/app/system/envelope"
	"github.com/mkelsey/dreamcoach/internal/app/system/htmlsanitize"
	"github.com/mkelsey/dreamcoach/internal/domain/models"
)

type templateRequest struct {
	DreamID    string     `json:"dream_id,omitempty"`
	Title      string     `json:"title"`
	Recurrence string     `json:"recurrence"`
	Active     *bool      `json:"active,omitempty"` // defaults to true
	TargetDate *time.Time `json:"target_date,omitempty"`
}

func (req *templateRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" {
		return apperr.New(apperr.Validation, "template title is required")
	}
	switch req.Recurrence {
	case models.RecurrenceWeekly, models.RecurrenceOnce:
		return nil
	default:
		return apperr.New(apperr.Validation, `recurrence must be "weekly" or "once"`)
	}
}

func (req *templateRequest) active() bool {
	if req.Active == nil {
		return true
	}
	return *req.Active
}

// HandleAddTemplate creates a recurring goal template. Changes take effect
// at the next rollover; the current week is never rewritten.
func (h *Handler) HandleAddTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	var req templateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	tpl := models.WeeklyGoalTemplate{
		ID:         uuid.NewString(),
		DreamID:    req.DreamID,
		Title:      strings.TrimSpace(htmlsanitize.Clean(req.Title)),
		Recurrence: req.Recurrence,
		Active:     req.active(),
		TargetDate: req.TargetDate,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.dreams().AddTemplate(ctx, userID, tpl); err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, tpl)
}

// HandleUpdateTemplate replaces a template's editable fields.
func (h *Handler) HandleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	templateID := chi.URLParam(r, "templateID")

	var req templateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	if err := req.validate(); err != nil {
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
	var existing *models.WeeklyGoalTemplate
	for i := range doc.GoalTemplates {
		if doc.GoalTemplates[i].ID == templateID {
			existing = &doc.GoalTemplates[i]
			break
		}
	}
	if existing == nil {
		envelope.WriteError(w, apperr.New(apperr.NotFound, "goal template not found"))
		return
	}

	tpl := models.WeeklyGoalTemplate{
		ID:         templateID,
		DreamID:    req.DreamID,
		Title:      strings.TrimSpace(htmlsanitize.Clean(req.Title)),
		Recurrence: req.Recurrence,
		Active:     req.active(),
		TargetDate: req.TargetDate,
		CreatedAt:  existing.CreatedAt,
	}
	if err := h.dreams().UpdateTemplate(ctx, userID, tpl); err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, tpl)
}

// HandleRemoveTemplate deletes a template. Goals already instantiated from
// it stay in the current week.
func (h *Handler) HandleRemoveTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	templateID := chi.URLParam(r, "templateID")

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	if err := h.dreams().RemoveTemplate(ctx, userID, templateID); err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, map[string]string{"id": templateID})
}
