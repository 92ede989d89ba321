package inventory

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/api"
)

const resourceName = "Inventory item"

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
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Post("/", h.CreateItem)
		r.Get("/low-stock", h.ListLowStock)
		r.Get("/summary", h.GetSummary)
		r.Get("/{id}", h.GetItem)
		r.Put("/{id}", h.UpdateItem)
		r.Delete("/{id}", h.DeleteItem)
		r.Post("/{id}/adjust", h.AdjustQuantity)
	})
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListItems")
	defer finish()

	log := h.log(r)

	items, err := h.manager.List(r.Context())
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	q := r.URL.Query()
	items = FilterItems(items, q.Get("filter"))
	items = Search(items, q.Get("q"))

	api.RespondList(w, items)
}

func (h *Handler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListLowStock")
	defer finish()

	items, err := h.manager.LowStock(r.Context())
	if err != nil {
		api.RespondServiceError(w, h.log(r), err, resourceName)
		return
	}

	api.RespondList(w, items)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetSummary")
	defer finish()

	items, err := h.manager.List(r.Context())
	if err != nil {
		api.RespondServiceError(w, h.log(r), err, resourceName)
		return
	}

	apt.RespondSuccess(w, Summarize(items))
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateItem")
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

	api.RespondCreated(w, item, api.ResourceLinks("/inventory", item.ID)...)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetItem")
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

	apt.RespondSuccess(w, item, api.ResourceLinks("/inventory", item.ID)...)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateItem")
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

	apt.RespondSuccess(w, item, api.ResourceLinks("/inventory", item.ID)...)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteItem")
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

type adjustRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AdjustQuantity")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	req, ok := api.DecodePayload[adjustRequest](w, r, log)
	if !ok {
		return
	}

	item, err := h.manager.AdjustQuantity(r.Context(), id, req.Delta)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	apt.RespondSuccess(w, item, api.ResourceLinks("/inventory", item.ID)...)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return api.RequestLogger(h.logger, r)
}
