package bookings

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bookings", h.List)
	r.Post("/bookings", h.Create)
	r.Get("/bookings/{id}", h.Show)
	r.Put("/bookings/{id}", h.Update)
	r.Delete("/bookings/{id}", h.Delete)
	r.Get("/bookings/invoice/{invoiceNumber}", h.ShowByInvoice)
}
