// internal/app/features/weeks/currentweek.go
package weeks

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

// ServeCurrentWeek returns the signed-in user's active week, rolling it over
// first if it has gone stale.
func (h *Handler) ServeCurrentWeek(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.engine().EnsureCurrentWeek(ctx, userID)
	if err != nil {
		h.Log.Warn("ensure current week failed", zap.String("user_id", userID.Hex()), zap.Error(err))
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, doc)
}

type addGoalRequest struct {
	Title string `json:"title"`
}

// HandleAddGoal appends an ad hoc goal to the current week. Ad hoc goals
// have no template and live only inside this week.
func (h *Handler) HandleAddGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	var req addGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		envelope.WriteError(w, err)
		return
	}
	title := strings.TrimSpace(htmlsanitize.Clean(req.Title))
	if title == "" {
		envelope.WriteError(w, apperr.New(apperr.Validation, "goal title is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.engine().EnsureCurrentWeek(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	goal := models.Goal{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	goals := append(doc.Goals, goal)
	if err := h.weeks().SetGoals(ctx, userID, goals); err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, goal)
}

// HandleToggleGoal flips a goal's completed flag.
func (h *Handler) HandleToggleGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	goalID := chi.URLParam(r, "goalID")

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.engine().EnsureCurrentWeek(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	found := false
	for i := range doc.Goals {
		if doc.Goals[i].ID != goalID {
			continue
		}
		found = true
		doc.Goals[i].Completed = !doc.Goals[i].Completed
		if doc.Goals[i].Completed {
			now := time.Now().UTC()
			doc.Goals[i].CompletedAt = &now
		} else {
			doc.Goals[i].CompletedAt = nil
		}
	}
	if !found {
		envelope.WriteError(w, apperr.New(apperr.NotFound, "goal not found in the current week"))
		return
	}
	if err := h.weeks().SetGoals(ctx, userID, doc.Goals); err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, doc.Goals)
}

// HandleRemoveGoal drops a goal from the current week. Removing a goal that
// is already gone is a no-op success.
func (h *Handler) HandleRemoveGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	goalID := chi.URLParam(r, "goalID")

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.engine().EnsureCurrentWeek(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	goals := doc.Goals[:0]
	for _, g := range doc.Goals {
		if g.ID != goalID {
			goals = append(goals, g)
		}
	}
	if err := h.weeks().SetGoals(ctx, userID, goals); err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, goals)
}

// ServePastWeeks returns the archive, most recent week first.
func (h *Handler) ServePastWeeks(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.SessionUserOID(r)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	doc, err := h.past().GetByUser(ctx, userID)
	if err != nil {
		envelope.WriteError(w, err)
		return
	}
	envelope.WriteOK(w, doc)
}
