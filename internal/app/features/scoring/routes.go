// internal/app/features/scoring/routes.go
package scoring

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeScores)
		pr.Get("/{year}/{quarter}", h.ServeQuarter)
		pr.Post("/", h.HandleUpsertScore)
	})

	return r
}
