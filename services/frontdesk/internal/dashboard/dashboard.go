// Package dashboard aggregates the front desk overview from orders,
// reservations and inventory.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/inventory"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/order"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservation"
)

const (
	DefaultRecentLimit   = 5
	DefaultUpcomingLimit = 5
)

type OrderSource interface {
	List(ctx context.Context) ([]*order.Order, error)
}

type ReservationSource interface {
	Todays(ctx context.Context) ([]*reservation.Reservation, error)
}

type InventorySource interface {
	LowStock(ctx context.Context) ([]*inventory.Item, error)
}

// Metrics is one consistent overview built from a single load.
type Metrics struct {
	TodaysRevenue            decimal.Decimal            `json:"todaysRevenue"`
	ActiveOrders             int                        `json:"activeOrders"`
	UpcomingReservations     int                        `json:"upcomingReservations"`
	LowStockItems            int                        `json:"lowStockItems"`
	RecentOrders             []*order.Order             `json:"recentOrders"`
	UpcomingReservationsList []*reservation.Reservation `json:"upcomingReservationsList"`
	GeneratedAt              time.Time                  `json:"generatedAt"`
}

// LoadError reports that one of the reads behind a dashboard load failed.
// No partial metrics are returned alongside it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load dashboard %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Retryable is always true; a later load may succeed.
func (e *LoadError) Retryable() bool {
	return true
}

// Compute derives metrics from already loaded data.
func Compute(cal *calendar.Calendar, orders []*order.Order, todays []*reservation.Reservation, low []*inventory.Item, recentLimit int) *Metrics {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	revenue := decimal.Zero
	active := 0
	for _, o := range orders {
		if o.Status == orderstatus.Statuses.Completed.Code() && cal.IsToday(o.CreatedAt) {
			revenue = revenue.Add(o.TotalAmount)
		}
		if o.IsActive() {
			active++
		}
	}

	recent := append([]*order.Order{}, orders...)
	order.SortNewestFirst(recent)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	upcoming := todays
	if len(upcoming) > DefaultUpcomingLimit {
		upcoming = upcoming[:DefaultUpcomingLimit]
	}
	upcoming = append([]*reservation.Reservation{}, upcoming...)

	return &Metrics{
		TodaysRevenue:            revenue.Round(2),
		ActiveOrders:             active,
		UpcomingReservations:     len(todays),
		LowStockItems:            len(low),
		RecentOrders:             recent,
		UpcomingReservationsList: upcoming,
		GeneratedAt:              cal.Now(),
	}
}
