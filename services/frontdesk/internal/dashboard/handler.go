package dashboard

import (
	"errors"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/api"
)

type Handler struct {
	logger     apt.Logger
	tlm        *telemetry.HTTP
	aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		logger:     logger,
		tlm:        telemetry.NewHTTP(),
		aggregator: aggregator,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.GetDashboard)
}

// GetDashboard serves the cached snapshot, or a fresh load with refresh=true.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetDashboard")
	defer finish()

	log := api.RequestLogger(h.logger, r)

	var (
		m   *Metrics
		err error
	)
	if api.QueryBool(r, "refresh") {
		m, err = h.aggregator.Refresh(r.Context())
	} else {
		m, err = h.aggregator.Current(r.Context())
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Retryable() {
			log.Error("dashboard unavailable", "source", le.Source, "error", le.Err)
			apt.RespondError(w, http.StatusServiceUnavailable, "Dashboard could not be loaded, please retry")
			return
		}
		api.RespondServiceError(w, log, err, "Dashboard")
		return
	}

	apt.RespondSuccess(w, m)
}
