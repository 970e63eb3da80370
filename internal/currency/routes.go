package currency

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/currency-conversions", h.List)
	r.Post("/currency-conversions", h.Create)
	r.Put("/currency-conversions/{id}", h.Update)
	r.Delete("/currency-conversions/{id}", h.Delete)
}
