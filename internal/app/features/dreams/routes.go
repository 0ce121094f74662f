// internal/app/features/dreams/routes.go
package dreams

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// DREAMS
		pr.Get("/", h.ServeDreams)
		pr.Post("/", h.HandleAddDream)
		pr.Post("/{dreamID}", h.HandleUpdateDream)
		pr.Post("/{dreamID}/delete", h.HandleRemoveDream)

		// GOAL TEMPLATES
		pr.Post("/templates", h.HandleAddTemplate)
		pr.Post("/templates/{templateID}", h.HandleUpdateTemplate)
		pr.Post("/templates/{templateID}/delete", h.HandleRemoveTemplate)
	})

	return r
}
