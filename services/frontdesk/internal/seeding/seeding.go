// Package seeding loads idempotent demo data through the domain managers.
package seeding

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/inventory"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/menu"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/order"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservation"
)

// Application is the name seed records are tracked under.
const Application = "frontdesk_demo"

//go:embed seed.json
var demoData []byte

type Deps struct {
	Inventory    *inventory.Manager
	Menu         *menu.Manager
	Orders       *order.Manager
	Reservations *reservation.Manager
	Calendar     *calendar.Calendar
}

type demoOrderItem struct {
	Menu     string `json:"menu"`
	Quantity int    `json:"quantity"`
}

type demoOrder struct {
	TableNumber int             `json:"tableNumber"`
	Status      string          `json:"status"`
	Items       []demoOrderItem `json:"items"`
}

type demoReservation struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	PartySize    int    `json:"partySize"`
	Day          int    `json:"day"`
	Time         string `json:"time"`
	Notes        string `json:"notes"`
}

type demoSet struct {
	Inventory    []inventory.CreateInput `json:"inventory"`
	Menu         []menu.CreateInput      `json:"menu"`
	Orders       []demoOrder             `json:"orders"`
	Reservations []demoReservation       `json:"reservations"`
}

func loadDemoSet() (*demoSet, error) {
	var set demoSet
	if err := json.Unmarshal(demoData, &set); err != nil {
		return nil, fmt.Errorf("cannot parse demo data: %w", err)
	}
	return &set, nil
}

// Seeds returns the demo seeds in dependency order: menu before orders.
func Seeds(deps Deps, logger apt.Logger) ([]seed.Seed, error) {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if deps.Calendar == nil {
		deps.Calendar = calendar.New(nil, nil)
	}
	set, err := loadDemoSet()
	if err != nil {
		return nil, err
	}

	return []seed.Seed{
		{
			ID:          "2024-01-20_frontdesk_inventory",
			Description: "Stock the pantry with a few items, some below threshold",
			Run: func(ctx context.Context) error {
				return seedInventory(ctx, deps, set.Inventory, logger)
			},
		},
		{
			ID:          "2024-01-20_frontdesk_menu_and_orders",
			Description: "Create the sample menu and orders across every status",
			Run: func(ctx context.Context) error {
				return seedMenuAndOrders(ctx, deps, set, logger)
			},
		},
		{
			ID:          "2024-01-20_frontdesk_reservations",
			Description: "Book reservations for today, tomorrow and later this week",
			Run: func(ctx context.Context) error {
				return seedReservations(ctx, deps, set.Reservations, logger)
			},
		},
	}, nil
}

// Apply runs every demo seed not yet recorded by tracker.
func Apply(ctx context.Context, tracker seed.Tracker, deps Deps, logger apt.Logger) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	seeds, err := Seeds(deps, logger)
	if err != nil {
		return err
	}

	logger.Info("applying demo seeds", "count", len(seeds))
	if err := seed.Apply(ctx, tracker, seeds, Application); err != nil {
		return err
	}
	logger.Info("demo seeds applied")
	return nil
}

// DemoSeedingFunc returns an OnStart hook that seeds in the background so a
// slow store does not hold up startup.
func DemoSeedingFunc(seedCtx context.Context, tracker seed.Tracker, deps Deps, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return func(ctx context.Context) error {
		logger.Info("starting demo seeding in background")
		go func() {
			if err := Apply(seedCtx, tracker, deps, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("demo seeds failed", "error", err)
			}
		}()
		return nil
	}
}

func seedInventory(ctx context.Context, deps Deps, items []inventory.CreateInput, logger apt.Logger) error {
	for _, in := range items {
		if _, err := deps.Inventory.Create(ctx, in); err != nil {
			return fmt.Errorf("inventory item %s: %w", in.Name, err)
		}
	}
	logger.Info("demo inventory seeded", "count", len(items))
	return nil
}

func seedMenuAndOrders(ctx context.Context, deps Deps, set *demoSet, logger apt.Logger) error {
	byName := make(map[string]*menu.MenuItem, len(set.Menu))
	for _, in := range set.Menu {
		item, err := deps.Menu.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("menu item %s: %w", in.Name, err)
		}
		byName[item.Name] = item
	}

	for _, d := range set.Orders {
		lines := make([]order.LineItem, 0, len(d.Items))
		for _, it := range d.Items {
			mi, ok := byName[it.Menu]
			if !ok {
				return fmt.Errorf("demo order for table %d references unknown menu item %q", d.TableNumber, it.Menu)
			}
			lines = append(lines, order.LineItem{ID: mi.ID, Name: mi.Name, Price: mi.Price, Quantity: it.Quantity})
		}

		o, err := deps.Orders.Create(ctx, order.CreateInput{TableNumber: d.TableNumber, Items: lines})
		if err != nil {
			return fmt.Errorf("order for table %d: %w", d.TableNumber, err)
		}
		if d.Status != "" && d.Status != o.Status {
			if _, err := deps.Orders.UpdateStatus(ctx, o.ID, d.Status); err != nil {
				return fmt.Errorf("order %s status: %w", o.OrderNumber, err)
			}
		}
	}

	logger.Info("demo menu and orders seeded", "menu", len(set.Menu), "orders", len(set.Orders))
	return nil
}

func seedReservations(ctx context.Context, deps Deps, items []demoReservation, logger apt.Logger) error {
	now := deps.Calendar.Now()
	for _, d := range items {
		at, err := slot(deps.Calendar, d.Day, d.Time)
		if err != nil {
			return fmt.Errorf("reservation for %s: %w", d.CustomerName, err)
		}
		for at.Sub(now) < deps.Reservations.MinLead() {
			at = at.AddDate(0, 0, 1)
		}

		in := reservation.CreateInput{
			CustomerName: d.CustomerName,
			Phone:        d.Phone,
			DateTime:     at.Format(time.RFC3339),
			PartySize:    d.PartySize,
			Notes:        d.Notes,
		}
		if _, err := deps.Reservations.Create(ctx, in); err != nil {
			return fmt.Errorf("reservation for %s: %w", d.CustomerName, err)
		}
	}
	logger.Info("demo reservations seeded", "count", len(items))
	return nil
}

// slot resolves a day offset and a "15:04" clock time to a local timestamp.
func slot(cal *calendar.Calendar, day int, clock string) (time.Time, error) {
	hm, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	start := cal.StartOfDay(cal.Now()).AddDate(0, 0, day)
	return time.Date(start.Year(), start.Month(), start.Day(), hm.Hour(), hm.Minute(), 0, 0, cal.Location()), nil
}
