package order

import (
	"context"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/pkg/event"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

type ManagerDeps struct {
	Store     record.Store
	Publisher events.Publisher
	Calendar  *calendar.Calendar
	Numbers   *NumberGenerator
}

// Manager owns the order lifecycle and bill computation.
type Manager struct {
	orders    *record.Collection[*Order]
	publisher events.Publisher
	cal       *calendar.Calendar
	numbers   *NumberGenerator
	logger    apt.Logger
}

func NewManager(deps ManagerDeps, logger apt.Logger) *Manager {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = pkg.NoopPublisher{}
	}
	cal := deps.Calendar
	if cal == nil {
		cal = calendar.New(nil, nil)
	}
	numbers := deps.Numbers
	if numbers == nil {
		numbers = NewNumberGenerator(cal.Now)
	}
	return &Manager{
		orders:    record.NewCollection(deps.Store, record.Order, fromRecord),
		publisher: publisher,
		cal:       cal,
		numbers:   numbers,
		logger:    logger,
	}
}

// List returns every order in storage order.
func (m *Manager) List(ctx context.Context) ([]*Order, error) {
	items, err := m.orders.All(ctx)
	if err != nil {
		m.logger.Error("cannot list orders", "error", err)
		return []*Order{}, err
	}
	return items, nil
}

// Get returns the order or nil when it does not exist.
func (m *Manager) Get(ctx context.Context, id int64) (*Order, error) {
	o, _, err := m.orders.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (m *Manager) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if err := record.Invalid(record.CollectionOrder, validateCreate(in)); err != nil {
		return nil, err
	}

	o, err := m.orders.Create(ctx, in.toRecord(m.numbers.Next()))
	if err != nil {
		m.logger.Error("cannot create order", "table", in.TableNumber, "error", err)
		return nil, err
	}

	m.publish(ctx, event.EventOrderCreated, o, "")
	return o, nil
}

// Update merges a patch. Any status may follow any other; the first entry
// into completed stamps completedAt and later ones keep it.
func (m *Manager) Update(ctx context.Context, id int64, p Patch) (*Order, error) {
	if err := record.Invalid(record.CollectionOrder, validatePatch(p)); err != nil {
		return nil, err
	}

	current, err := m.Get(ctx, id)
	if err != nil {
		m.logger.Error("cannot load order for update", "id", id, "error", err)
		return nil, err
	}
	if current == nil {
		return nil, record.NotFound(record.CollectionOrder, id)
	}

	patch := p.toRecord()
	if p.Status != nil {
		status := strings.TrimSpace(*p.Status)
		if status == orderstatus.Statuses.Completed.Code() && current.CompletedAt == nil {
			patch["completedAt"] = m.cal.Now()
		}
	}

	o, err := m.orders.Update(ctx, id, patch)
	if err != nil {
		m.logger.Error("cannot update order", "id", id, "error", err)
		return nil, err
	}

	if o.Status != current.Status {
		m.publish(ctx, event.EventOrderStatusChanged, o, current.Status)
	}
	return o, nil
}

// UpdateStatus is Update with only a status.
func (m *Manager) UpdateStatus(ctx context.Context, id int64, status string) (*Order, error) {
	return m.Update(ctx, id, Patch{Status: &status})
}

func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.orders.Delete(ctx, id); err != nil {
		m.logger.Error("cannot delete order", "id", id, "error", err)
		return err
	}
	m.publish(ctx, event.EventOrderDeleted, &Order{ID: id}, "")
	return nil
}

// ByStatus returns the orders currently in status.
func (m *Manager) ByStatus(ctx context.Context, status string) ([]*Order, error) {
	items, err := m.List(ctx)
	if err != nil {
		return []*Order{}, err
	}
	return ByStatus(items, status), nil
}

// TodaysOrders returns orders created on the current local day.
func (m *Manager) TodaysOrders(ctx context.Context) ([]*Order, error) {
	items, err := m.List(ctx)
	if err != nil {
		return []*Order{}, err
	}
	return m.Today(items), nil
}

// Today keeps the orders created on the current local day.
func (m *Manager) Today(items []*Order) []*Order {
	out := make([]*Order, 0, len(items))
	for _, o := range items {
		if m.cal.IsToday(o.CreatedAt) {
			out = append(out, o)
		}
	}
	return out
}

// StatusCounts tallies today's orders and each status.
func (m *Manager) StatusCounts(items []*Order) Counts {
	c := Counts{Today: len(m.Today(items))}
	for _, o := range items {
		switch o.Status {
		case orderstatus.Statuses.Pending.Code():
			c.Pending++
		case orderstatus.Statuses.Preparing.Code():
			c.Preparing++
		case orderstatus.Statuses.Completed.Code():
			c.Completed++
		case orderstatus.Statuses.Cancelled.Code():
			c.Cancelled++
		}
	}
	return c
}

// GenerateBill computes a fresh bill for the order.
func (m *Manager) GenerateBill(ctx context.Context, id int64) (*Bill, error) {
	o, err := m.Get(ctx, id)
	if err != nil {
		m.logger.Error("cannot load order for bill", "id", id, "error", err)
		return nil, err
	}
	if o == nil {
		return nil, record.NotFound(record.CollectionOrder, id)
	}
	return NewBill(o, m.cal.Now()), nil
}

func (m *Manager) publish(ctx context.Context, eventType string, o *Order, previous string) {
	evt := event.NewOrderEvent(eventType, o.ID, m.cal.Now())
	evt.OrderNumber = o.OrderNumber
	evt.TableNumber = o.TableNumber
	evt.Status = o.Status
	evt.PreviousStatus = previous
	evt.TotalAmount = o.TotalAmount.InexactFloat64()
	if err := pkg.PublishJSON(ctx, m.publisher, event.OrdersTopic, evt); err != nil {
		m.logger.Error("cannot publish order event", "id", o.ID, "type", eventType, "error", err)
	}
}
