package reservation

import (
	"context"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/appetiteclub/frontdesk/pkg/event"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// DefaultMinLead is how far ahead a booking must be made.
const DefaultMinLead = time.Hour

type ManagerDeps struct {
	Store     record.Store
	Publisher events.Publisher
	Calendar  *calendar.Calendar
	// MinLead overrides DefaultMinLead when positive.
	MinLead time.Duration
}

// Manager is the reservation book.
type Manager struct {
	reservations *record.Collection[*Reservation]
	publisher    events.Publisher
	cal          *calendar.Calendar
	minLead      time.Duration
	logger       apt.Logger
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
	minLead := deps.MinLead
	if minLead <= 0 {
		minLead = DefaultMinLead
	}
	return &Manager{
		reservations: record.NewCollection(deps.Store, record.Reservation, fromRecord),
		publisher:    publisher,
		cal:          cal,
		minLead:      minLead,
		logger:       logger,
	}
}

// MinLead is how far ahead a new booking must be.
func (m *Manager) MinLead() time.Duration {
	return m.minLead
}

// List returns every reservation in storage order.
func (m *Manager) List(ctx context.Context) ([]*Reservation, error) {
	items, err := m.reservations.All(ctx)
	if err != nil {
		m.logger.Error("cannot list reservations", "error", err)
		return []*Reservation{}, err
	}
	return items, nil
}

// Get returns the reservation or nil when it does not exist.
func (m *Manager) Get(ctx context.Context, id int64) (*Reservation, error) {
	res, _, err := m.reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Manager) Create(ctx context.Context, in CreateInput) (*Reservation, error) {
	at, errs := validateCreate(in, m.cal.Now(), m.minLead)
	if err := record.Invalid(record.CollectionReservation, errs); err != nil {
		return nil, err
	}

	res, err := m.reservations.Create(ctx, in.toRecord(at))
	if err != nil {
		m.logger.Error("cannot create reservation", "customer", in.CustomerName, "error", err)
		return nil, err
	}

	m.publish(ctx, event.EventReservationBooked, res)
	return res, nil
}

func (m *Manager) Update(ctx context.Context, id int64, p Patch) (*Reservation, error) {
	at, errs := validatePatch(p, m.cal.Location())
	if err := record.Invalid(record.CollectionReservation, errs); err != nil {
		return nil, err
	}

	res, err := m.reservations.Update(ctx, id, p.toRecord(at))
	if err != nil {
		m.logger.Error("cannot update reservation", "id", id, "error", err)
		return nil, err
	}

	m.publish(ctx, event.EventReservationUpdated, res)
	return res, nil
}

func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.reservations.Delete(ctx, id); err != nil {
		m.logger.Error("cannot delete reservation", "id", id, "error", err)
		return err
	}
	m.publish(ctx, event.EventReservationCancelled, &Reservation{ID: id})
	return nil
}

// Todays returns reservations on the current local day, in storage order.
func (m *Manager) Todays(ctx context.Context) ([]*Reservation, error) {
	return m.InBucket(ctx, calendar.BucketToday)
}

// InBucket returns reservations falling into a date bucket, in storage order.
func (m *Manager) InBucket(ctx context.Context, b calendar.Bucket) ([]*Reservation, error) {
	items, err := m.List(ctx)
	if err != nil {
		return []*Reservation{}, err
	}
	return m.Filter(items, b), nil
}

// Filter keeps the reservations that fall into bucket b.
func (m *Manager) Filter(items []*Reservation, b calendar.Bucket) []*Reservation {
	out := make([]*Reservation, 0, len(items))
	for _, it := range items {
		if m.cal.InBucket(it.DateTime, b) {
			out = append(out, it)
		}
	}
	return out
}

// BucketCounts counts reservations per date bucket.
func (m *Manager) BucketCounts(items []*Reservation) map[calendar.Bucket]int {
	counts := make(map[calendar.Bucket]int, len(calendar.Buckets))
	for _, b := range calendar.Buckets {
		counts[b] = len(m.Filter(items, b))
	}
	return counts
}

func (m *Manager) publish(ctx context.Context, eventType string, res *Reservation) {
	evt := event.NewReservationEvent(eventType, res.ID, m.cal.Now())
	evt.CustomerName = res.CustomerName
	evt.DateTime = res.DateTime
	evt.PartySize = res.PartySize
	if err := pkg.PublishJSON(ctx, m.publisher, event.ReservationsTopic, evt); err != nil {
		m.logger.Error("cannot publish reservation event", "id", res.ID, "type", eventType, "error", err)
	}
}
