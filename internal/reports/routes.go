package reports

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/profit-loss", h.ProfitLoss)
		r.Get("/bookings-summary", h.BookingsSummary)
		r.Get("/unpaid-invoices", h.UnpaidInvoices)
	})
}
