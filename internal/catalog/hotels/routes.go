package hotels

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/hotels", h.List)
	r.Post("/hotels", h.Create)
	r.Get("/hotels/{id}", h.Show)
	r.Put("/hotels/{id}", h.Update)
	r.Delete("/hotels/{id}", h.Delete)
}
