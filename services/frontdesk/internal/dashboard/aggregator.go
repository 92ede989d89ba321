package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"golang.org/x/sync/errgroup"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/inventory"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/order"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservation"
)

const DefaultTTL = 15 * time.Second

type Deps struct {
	Orders       OrderSource
	Reservations ReservationSource
	Inventory    InventorySource
	Calendar     *calendar.Calendar
}

type Config struct {
	TTL         time.Duration
	RecentLimit int
}

// Aggregator loads dashboard metrics and keeps the latest snapshot for TTL.
type Aggregator struct {
	orders       OrderSource
	reservations ReservationSource
	inventory    InventorySource
	cal          *calendar.Calendar
	ttl          time.Duration
	recentLimit  int
	logger       apt.Logger

	mu         sync.Mutex
	snapshot   *Metrics
	loadedAt   time.Time
	generation uint64
}

func NewAggregator(deps Deps, cfg Config, logger apt.Logger) *Aggregator {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	cal := deps.Calendar
	if cal == nil {
		cal = calendar.New(nil, nil)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	limit := cfg.RecentLimit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &Aggregator{
		orders:       deps.Orders,
		reservations: deps.Reservations,
		inventory:    deps.Inventory,
		cal:          cal,
		ttl:          ttl,
		recentLimit:  limit,
		logger:       logger,
	}
}

// Load reads all sources concurrently. The first failure cancels the other
// reads and fails the whole load.
func (a *Aggregator) Load(ctx context.Context) (*Metrics, error) {
	var (
		orders []*order.Order
		todays []*reservation.Reservation
		low    []*inventory.Item
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := a.orders.List(gctx)
		if err != nil {
			return &LoadError{Source: "orders", Err: err}
		}
		orders = items
		return nil
	})
	g.Go(func() error {
		items, err := a.reservations.Todays(gctx)
		if err != nil {
			return &LoadError{Source: "reservations", Err: err}
		}
		todays = items
		return nil
	})
	g.Go(func() error {
		items, err := a.inventory.LowStock(gctx)
		if err != nil {
			return &LoadError{Source: "inventory", Err: err}
		}
		low = items
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("dashboard load failed", "error", err)
		return nil, err
	}

	return Compute(a.cal, orders, todays, low, a.recentLimit), nil
}

// Current returns the snapshot while it is fresher than TTL, otherwise it
// refreshes.
func (a *Aggregator) Current(ctx context.Context) (*Metrics, error) {
	a.mu.Lock()
	snap, loadedAt := a.snapshot, a.loadedAt
	a.mu.Unlock()

	if snap != nil && a.cal.Now().Sub(loadedAt) < a.ttl {
		return snap, nil
	}
	return a.Refresh(ctx)
}

// Refresh always reloads. Only the load holding the latest generation
// replaces the snapshot; an older load still returns its own result.
func (a *Aggregator) Refresh(ctx context.Context) (*Metrics, error) {
	gen := a.nextGeneration()

	m, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen == a.generation {
		a.snapshot = m
		a.loadedAt = a.cal.Now()
	} else {
		a.logger.Debug("discarding superseded dashboard load", "generation", gen, "latest", a.generation)
	}
	return m, nil
}

// Invalidate drops the snapshot and supersedes loads already in flight.
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshot = nil
	a.generation++
}

func (a *Aggregator) nextGeneration() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	return a.generation
}
