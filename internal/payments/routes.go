package payments

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/payments", h.Create)
	r.Get("/bookings/{id}/payments", h.ListByBooking)
	r.Get("/bookings/{id}/payment-status", h.Status)
}
