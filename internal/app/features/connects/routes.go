// internal/app/features/connects/routes.go
package connects

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeConnects)
		pr.Post("/", h.HandleAddConnect)
		pr.Post("/{connectID}/delete", h.HandleRemoveConnect)
	})

	return r
}
