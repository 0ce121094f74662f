// internal/app/features/weeks/routes.go
package weeks

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// CURRENT WEEK
		pr.Get("/current", h.ServeCurrentWeek)
		pr.Post("/current/goals", h.HandleAddGoal)
		pr.Post("/current/goals/{goalID}/toggle", h.HandleToggleGoal)
		pr.Post("/current/goals/{goalID}/delete", h.HandleRemoveGoal)

		// ARCHIVE
		pr.Get("/past", h.ServePastWeeks)
	})

	return r
}
