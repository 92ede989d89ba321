package menu

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/api"
)

const (
	resourceName = "Menu item"
	basePath     = "/menu/items"
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
		r.Get("/", h.ListMenuItems)
		r.Post("/", h.CreateMenuItem)
		r.Get("/categories", h.ListCategories)
		r.Get("/{id}", h.GetMenuItem)
		r.Put("/{id}", h.UpdateMenuItem)
		r.Delete("/{id}", h.DeleteMenuItem)
		r.Post("/{id}/toggle-availability", h.ToggleAvailability)
	})
}

func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenuItems")
	defer finish()

	log := h.log(r)
	q := r.URL.Query()

	items, err := h.manager.ByCategory(r.Context(), q.Get("category"))
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	api.RespondList(w, Search(items, q.Get("q")))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCategories")
	defer finish()

	items, err := h.manager.List(r.Context())
	if err != nil {
		api.RespondServiceError(w, h.log(r), err, resourceName)
		return
	}

	apt.RespondSuccess(w, CategoryCounts(items))
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateMenuItem")
	defer finish()

	log := h.log(r)

	in, ok := api.DecodePayload[CreateInput](w, r, log)
	if !ok {
		return
	}

	item, err := h.manager.Create(r.Context(), in)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	log.Info("menu item created", "id", item.ID, "name", item.Name)
	api.RespondCreated(w, item, api.ResourceLinks(basePath, item.ID)...)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenuItem")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.manager.Get(r.Context(), id)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}
	if item == nil {
		api.RespondNotFound(w, resourceName)
		return
	}

	apt.RespondSuccess(w, item, api.ResourceLinks(basePath, item.ID)...)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateMenuItem")
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

	item, err := h.manager.Update(r.Context(), id, patch)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	apt.RespondSuccess(w, item, api.ResourceLinks(basePath, item.ID)...)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMenuItem")
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

func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ToggleAvailability")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.manager.ToggleAvailability(r.Context(), id)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	apt.RespondSuccess(w, item, api.ResourceLinks(basePath, item.ID)...)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return api.RequestLogger(h.logger, r)
}
