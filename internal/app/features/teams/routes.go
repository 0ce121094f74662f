// internal/app/features/teams/routes.go
package teams

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// ADMIN: membership surgery
		pr.Group(func(ar chi.Router) {
			ar.Use(sm.RequireRole("admin"))

			ar.Post("/assign", h.HandleAssign)
			ar.Post("/unassign", h.HandleUnassign)
			ar.Post("/promote", h.HandlePromote)
			ar.Post("/replace", h.HandleReplaceCoach)
			ar.Post("/{coachID}/reconcile", h.HandleReconcile)
		})

		// ROSTER (admin, or the coach who owns it)
		pr.Group(func(rr chi.Router) {
			rr.Use(sm.RequireRole("admin", "coach"))
			rr.Get("/{coachID}/roster", h.ServeRoster)
		})

		// COACH: own team
		pr.Group(func(cr chi.Router) {
			cr.Use(sm.RequireRole("coach"))
			cr.Get("/mine", h.ServeMyTeam)
			cr.Post("/mine", h.HandleUpdateMyTeam)
		})
	})

	return r
}
