package httpadapter

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"

	"ad-agency/internal/core/domain"
	"ad-agency/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the engine, jobs and admin services plus a logger for
// structured logging. Routes are registered on a chi.Router for
// convenient method handling.
type Handler struct {
	engine port.Activation
	jobs   port.Jobs
	admin  port.Admin
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. The three
// service interfaces are usually satisfied by one usecase.Service. The
// returned Handler registers handlers for each endpoint on a new
// chi.Router, plus the prometheus endpoint.
func NewHandler(engine port.Activation, jobs port.Jobs, admin port.Admin, logger *slog.Logger) *Handler {
	h := &Handler{engine: engine, jobs: jobs, admin: admin, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/spend", h.handleRecordSpend)

		r.Post("/brands", h.handleCreateBrand)
		r.Get("/brands", h.handleListBrands)
		r.Post("/brands/{brandID}/campaigns", h.handleCreateCampaign)
		r.Get("/brands/{brandID}/campaigns", h.handleListCampaigns)
		r.Post("/campaigns/{campaignID}/schedules", h.handleCreateSchedule)
		r.Post("/campaigns/{campaignID}/activate", h.handleActivateCampaign)
		r.Post("/campaigns/{campaignID}/deactivate", h.handleDeactivateCampaign)

		r.Post("/jobs/{job}", h.handleRunJob)
	})
	r.Handle("/metrics", promhttp.Handler())
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// writeError maps service errors onto HTTP statuses. Validation failures
// become 400, missing entities 404, duplicate schedule windows 409 and
// everything else a logged 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, port.ErrDuplicateSchedule):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidWindow),
		errors.Is(err, domain.ErrInvalidBudget):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
