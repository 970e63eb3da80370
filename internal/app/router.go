package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"log/slog"

	"github.com/rihlah-erp/rihlah-erp/internal/bookings"
	"github.com/rihlah-erp/rihlah-erp/internal/catalog/hotels"
	svccatalog "github.com/rihlah-erp/rihlah-erp/internal/catalog/services"
	"github.com/rihlah-erp/rihlah-erp/internal/currency"
	"github.com/rihlah-erp/rihlah-erp/internal/customers"
	"github.com/rihlah-erp/rihlah-erp/internal/expenses"
	"github.com/rihlah-erp/rihlah-erp/internal/payments"
	"github.com/rihlah-erp/rihlah-erp/internal/reports"
	"github.com/rihlah-erp/rihlah-erp/internal/settings"
	"github.com/rihlah-erp/rihlah-erp/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	CustomersHandler *customers.Handler
	HotelsHandler    *hotels.Handler
	ServicesHandler  *svccatalog.Handler
	CurrencyHandler  *currency.Handler
	BookingsHandler  *bookings.Handler
	PaymentsHandler  *payments.Handler
	ExpensesHandler  *expenses.Handler
	SettingsHandler  *settings.Handler
	UsersHandler     *users.Handler
	ReportsHandler   *reports.Handler
}

// NewRouter constructs the chi.Router with Rihlah defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		params.CustomersHandler.MountRoutes(r)
		params.HotelsHandler.MountRoutes(r)
		params.ServicesHandler.MountRoutes(r)
		params.CurrencyHandler.MountRoutes(r)
		params.BookingsHandler.MountRoutes(r)
		params.PaymentsHandler.MountRoutes(r)
		params.ExpensesHandler.MountRoutes(r)
		params.SettingsHandler.MountRoutes(r)
		params.UsersHandler.MountRoutes(r)
		params.ReportsHandler.MountRoutes(r)
	})

	return r
}
