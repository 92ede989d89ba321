package order

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/api"
)

const (
	resourceName = "Order"
	basePath     = "/orders"

	filterAll   = "all"
	filterToday = "today"
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
		r.Get("/", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/today", h.ListTodays)
		r.Get("/counts", h.GetCounts)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)
		r.Post("/{id}/bill", h.GenerateBill)
	})
}

// ListOrders accepts status=<status>, filter=today|all|<status> and q=<term>.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	q := r.URL.Query()

	status := q.Get("status")
	filter := q.Get("filter")
	if filter != "" && filter != filterAll && filter != filterToday {
		status, filter = filter, ""
	}
	if status != "" && orderstatus.ByName(status) == nil {
		log.Debug("invalid status filter", "status", status)
		apt.RespondError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	items, err := h.manager.List(r.Context())
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	if filter == filterToday {
		items = h.manager.Today(items)
	}
	if status != "" {
		items = ByStatus(items, status)
	}
	items = Search(items, q.Get("q"))
	SortNewestFirst(items)

	api.RespondList(w, items)
}

func (h *Handler) ListTodays(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTodays")
	defer finish()

	items, err := h.manager.TodaysOrders(r.Context())
	if err != nil {
		api.RespondServiceError(w, h.log(r), err, resourceName)
		return
	}

	SortNewestFirst(items)
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

	apt.RespondSuccess(w, h.manager.StatusCounts(items))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)

	in, ok := api.DecodePayload[CreateInput](w, r, log)
	if !ok {
		return
	}

	o, err := h.manager.Create(r.Context(), in)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	log.Info("order created", "id", o.ID, "order_number", o.OrderNumber, "table", o.TableNumber)
	api.RespondCreated(w, o, h.links(o.ID)...)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	o, err := h.manager.Get(r.Context(), id)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}
	if o == nil {
		api.RespondNotFound(w, resourceName)
		return
	}

	apt.RespondSuccess(w, o, h.links(o.ID)...)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrder")
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

	o, err := h.manager.Update(r.Context(), id, patch)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	apt.RespondSuccess(w, o, h.links(o.ID)...)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteOrder")
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

func (h *Handler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GenerateBill")
	defer finish()

	log := h.log(r)

	id, ok := api.ParseIDParam(w, r, log)
	if !ok {
		return
	}

	bill, err := h.manager.GenerateBill(r.Context(), id)
	if err != nil {
		api.RespondServiceError(w, log, err, resourceName)
		return
	}

	apt.RespondSuccess(w, bill)
}

func (h *Handler) links(id int64) []apt.Link {
	links := api.ResourceLinks(basePath, id)
	return append(links, apt.NewLinkBuilder().Custom("bill", api.ResourcePath(basePath, id)+"/bill").Build()...)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return api.RequestLogger(h.logger, r)
}
