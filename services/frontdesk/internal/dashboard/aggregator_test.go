package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/event"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/inventory"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/order"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservation"
)

var fixedNow = time.Date(2024, 1, 20, 20, 0, 0, 0, time.UTC)

func newOrder(id int64, status string, total string, created time.Time) *order.Order {
	return &order.Order{
		ID:          id,
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
		CreatedAt:   created,
	}
}

func TestCompute(t *testing.T) {
	cal := calendar.New(calendar.Fixed(fixedNow), time.UTC)
	yesterday := fixedNow.AddDate(0, 0, -1)

	orders := []*order.Order{
		newOrder(1, "completed", "19.00", fixedNow.Add(-3*time.Hour)),
		newOrder(2, "completed", "12.50", fixedNow.Add(-2*time.Hour)),
		newOrder(3, "completed", "99.00", yesterday),
		newOrder(4, "pending", "8.00", fixedNow.Add(-time.Hour)),
		newOrder(5, "preparing", "7.00", fixedNow.Add(-30*time.Minute)),
		newOrder(6, "cancelled", "5.00", fixedNow.Add(-10*time.Minute)),
	}
	todays := make([]*reservation.Reservation, 0, 7)
	for i := 0; i < 7; i++ {
		todays = append(todays, &reservation.Reservation{ID: int64(i + 1)})
	}
	low := []*inventory.Item{{ID: 1}, {ID: 2}}

	m := Compute(cal, orders, todays, low, 0)

	if !m.TodaysRevenue.Equal(decimal.RequireFromString("31.50")) {
		t.Errorf("TodaysRevenue = %s, want 31.50", m.TodaysRevenue)
	}
	if m.ActiveOrders != 2 {
		t.Errorf("ActiveOrders = %d, want 2", m.ActiveOrders)
	}
	if m.UpcomingReservations != 7 {
		t.Errorf("UpcomingReservations = %d, want 7", m.UpcomingReservations)
	}
	if m.LowStockItems != 2 {
		t.Errorf("LowStockItems = %d, want 2", m.LowStockItems)
	}
	if len(m.RecentOrders) != 5 || m.RecentOrders[0].ID != 6 || m.RecentOrders[4].ID != 1 {
		t.Errorf("RecentOrders ids = %v, want newest five starting at 6", orderIDs(m.RecentOrders))
	}
	if len(m.UpcomingReservationsList) != 5 || m.UpcomingReservationsList[0].ID != 1 {
		t.Errorf("UpcomingReservationsList has %d entries, want first 5 in storage order", len(m.UpcomingReservationsList))
	}
	if orders[0].ID != 1 {
		t.Error("Compute() should not reorder the input slice")
	}
}

func TestComputeEmpty(t *testing.T) {
	m := Compute(calendar.New(calendar.Fixed(fixedNow), time.UTC), nil, nil, nil, 5)

	if !m.TodaysRevenue.IsZero() || m.ActiveOrders != 0 || m.UpcomingReservations != 0 || m.LowStockItems != 0 {
		t.Errorf("Compute() = %+v, want zero metrics", m)
	}
	if m.RecentOrders == nil || m.UpcomingReservationsList == nil {
		t.Error("lists should be empty, not nil")
	}
}

func orderIDs(items []*order.Order) []int64 {
	out := make([]int64, 0, len(items))
	for _, o := range items {
		out = append(out, o.ID)
	}
	return out
}

func newTestAggregator(orders *MockOrders, res *MockReservations, inv *MockInventory, clock calendar.Clock) *Aggregator {
	return NewAggregator(Deps{
		Orders:       orders,
		Reservations: res,
		Inventory:    inv,
		Calendar:     calendar.New(clock, time.UTC),
	}, Config{TTL: 15 * time.Second}, nil)
}

func TestAggregatorLoadFailsFast(t *testing.T) {
	storeErr := record.Transport("fetch reservation", errors.New("connection refused"))
	cancelled := make(chan struct{})

	a := newTestAggregator(
		&MockOrders{ListFunc: func(ctx context.Context) ([]*order.Order, error) {
			<-ctx.Done()
			close(cancelled)
			return []*order.Order{}, ctx.Err()
		}},
		&MockReservations{TodaysFunc: func(ctx context.Context) ([]*reservation.Reservation, error) {
			return []*reservation.Reservation{}, storeErr
		}},
		&MockInventory{},
		calendar.Fixed(fixedNow),
	)

	m, err := a.Load(context.Background())
	if m != nil {
		t.Error("Load() should not return partial metrics")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, want LoadError", err)
	}
	if le.Source != "reservations" || !le.Retryable() {
		t.Errorf("LoadError = %+v, want retryable reservations failure", le)
	}
	if !errors.Is(err, record.ErrTransport) {
		t.Error("LoadError should wrap the store error")
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Error("other reads were not cancelled")
	}
}

func TestAggregatorCurrentUsesTTL(t *testing.T) {
	now := fixedNow
	var calls atomic.Int32
	orders := &MockOrders{ListFunc: func(ctx context.Context) ([]*order.Order, error) {
		calls.Add(1)
		return []*order.Order{}, nil
	}}
	a := newTestAggregator(orders, &MockReservations{}, &MockInventory{}, func() time.Time { return now })
	ctx := context.Background()

	if _, err := a.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	now = now.Add(10 * time.Second)
	if _, err := a.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("loads within TTL = %d, want 1", got)
	}

	now = now.Add(10 * time.Second)
	if _, err := a.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("loads after TTL = %d, want 2", got)
	}

	if _, err := a.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("loads after Refresh = %d, want 3", got)
	}
}

func TestAggregatorStaleLoadDoesNotOverwrite(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	orders := &MockOrders{ListFunc: func(ctx context.Context) ([]*order.Order, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []*order.Order{newOrder(1, "pending", "1", fixedNow)}, nil
		}
		return []*order.Order{
			newOrder(2, "pending", "1", fixedNow),
			newOrder(3, "preparing", "1", fixedNow),
		}, nil
	}}
	a := newTestAggregator(orders, &MockReservations{}, &MockInventory{}, calendar.Fixed(fixedNow))
	ctx := context.Background()

	slow := make(chan *Metrics)
	go func() {
		m, _ := a.Refresh(ctx)
		slow <- m
	}()
	<-started

	fresh, err := a.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	close(release)
	stale := <-slow

	if stale.ActiveOrders != 1 || fresh.ActiveOrders != 2 {
		t.Fatalf("stale = %d, fresh = %d active orders", stale.ActiveOrders, fresh.ActiveOrders)
	}

	current, err := a.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.ActiveOrders != 2 {
		t.Errorf("snapshot ActiveOrders = %d, want the newer load's 2", current.ActiveOrders)
	}
}

func TestEventSubscriberInvalidates(t *testing.T) {
	var calls atomic.Int32
	orders := &MockOrders{ListFunc: func(ctx context.Context) ([]*order.Order, error) {
		calls.Add(1)
		return []*order.Order{}, nil
	}}
	a := newTestAggregator(orders, &MockReservations{}, &MockInventory{}, calendar.Fixed(fixedNow))
	sub := &MockSubscriber{}
	ctx := context.Background()

	if err := NewEventSubscriber(sub, a, nil).Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := a.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	if err := sub.Deliver(ctx, event.OrdersTopic, []byte(`{"event_type":"order.created"}`)); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if _, err := a.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("loads = %d, want 2 after invalidation", got)
	}

	if err := sub.Deliver(ctx, event.InventoryTopic, []byte(`not json`)); err != nil {
		t.Errorf("Deliver() error = %v, want malformed events ignored", err)
	}
	if _, err := a.Current(ctx); err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("loads = %d, want 2 after a malformed event", got)
	}
}

func TestHandlerGetDashboard(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		failOrders     bool
		expectedStatus int
	}{
		{name: "cached", path: "/dashboard", expectedStatus: http.StatusOK},
		{name: "refresh", path: "/dashboard?refresh=true", expectedStatus: http.StatusOK},
		{name: "storeDown", path: "/dashboard", failOrders: true, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &MockOrders{}
			if tt.failOrders {
				orders.ListFunc = func(ctx context.Context) ([]*order.Order, error) {
					return []*order.Order{}, errors.New("boom")
				}
			}
			a := newTestAggregator(orders, &MockReservations{}, &MockInventory{}, calendar.Fixed(fixedNow))

			r := chi.NewRouter()
			NewHandler(a, nil).RegisterRoutes(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.expectedStatus {
				t.Errorf("GetDashboard() status = %d, want %d, body %s", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}
