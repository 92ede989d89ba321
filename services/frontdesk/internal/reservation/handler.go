package reservation

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/api"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
)

const (
	resourceName = "Reservation"
	basePath     = "/reservations"
)

type Handler struct {
	logger  apt.Logger
	tlm     *telemetry.HTTP
	manager *Manager
}

func NewHandler(manager *Manager, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		logger:  logger,
		tlm:     telemetry.NewHTTP(),
		manager: manager,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route(basePath, func(r chi.Router) {
		r.Get("/", h.ListReservations)
		r.Post("/", h.CreateReservation)
		r.Get("/today", h.ListTodays)
		r.Get("/counts", h.GetCounts)
		r.Get("/{id}", h.GetReservation)
		r.Put("/{id}", h.UpdateReservation)
		r.Delete("/{id}", h.DeleteReservation)
	})
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListReservations")
	defer finish()

	log := h.log(r)
	q := r.URL.Query()

	bucket, err := calendar.ParseBucket(q.Get("bucket"))
	if err != nil {
		log.Debug("invalid bucket", "bucket", q.Get("bucket"))
		apt.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.manager.InBucket(r.Context(), bucket)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	api.RespondList(w, Search(items, q.Get("q")))
}

func (h *Handler) ListTodays(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTodays")
	defer finish()

	items, err := h.manager.Todays(r.Context())
	if err != nil {
		api.RespondServiceError(w, h.log(r), err, resourceName)
		return
	}

	api.RespondList(w, items)
}

func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCounts")
	defer finish()

	items, err := h.manager.List(r.Context())
	if err != nil {
		api.RespondServiceError(w, h.log(r), err, resourceName)
		return
	}

	apt.RespondSuccess(w, h.manager.BucketCounts(items))
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateReservation")
	defer finish()

	log := h.log(r)

	in, ok := api.DecodePayload[CreateInput](w, r, log)
	if !ok {
		return
	}

	res, err := h.manager.Create(r.Context(), in)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	log.Info("reservation booked", "id", res.ID, "party_size", res.PartySize)
	api.RespondCreated(w, res, api.ResourceLinks(basePath, res.ID)...)
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetReservation")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	res, err := h.manager.Get(r.Context(), id)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}
	if res == nil {
		api.RespondNotFound(w, resourceName)
		return
	}

	apt.RespondSuccess(w, res, api.ResourceLinks(basePath, res.ID)...)
}

func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateReservation")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	patch, ok := api.DecodePayload[Patch](w, r, log)
	if !ok {
		return
	}

	res, err := h.manager.Update(r.Context(), id, patch)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	apt.RespondSuccess(w, res, api.ResourceLinks(basePath, res.ID)...)
}

func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteReservation")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.manager.Delete(r.Context(), id); err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return api.RequestLogger(h.logger, r)
}
