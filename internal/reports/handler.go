package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

const dateLayout = "2006-01-02"

// parseRange reads optional start_date/end_date query params. An end date is
// pushed one day forward so bookings created any time that day are included.
func parseRange(r *http.Request) (DateRange, error) {
	var out DateRange
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return out, fmt.Errorf("%w: invalid start_date, expected YYYY-MM-DD", httpx.ErrValidation)
		}
		out.Start = &t
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return out, fmt.Errorf("%w: invalid end_date, expected YYYY-MM-DD", httpx.ErrValidation)
		}
		end := t.Add(24 * time.Hour)
		out.End = &end
	}
	return out, nil
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dr, err := parseRange(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	stats, err := h.service.Dashboard(r.Context(), dr)
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	dr, err := parseRange(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rows, err := h.service.ProfitLoss(r.Context(), dr)
	if err != nil {
		h.logger.Error("profit-loss report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) BookingsSummary(w http.ResponseWriter, r *http.Request) {
	dr, err := parseRange(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rows, err := h.service.BookingsSummary(r.Context(), dr)
	if err != nil {
		h.logger.Error("bookings summary report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (h *Handler) UnpaidInvoices(w http.ResponseWriter, r *http.Request) {
	dr, err := parseRange(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rows, err := h.service.UnpaidInvoices(r.Context(), dr)
	if err != nil {
		h.logger.Error("unpaid invoices report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"rows": rows})
}
