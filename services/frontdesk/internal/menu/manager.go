package menu

import (
	"context"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

type ManagerDeps struct {
	Store record.Store
}

// Manager maintains the menu catalog. It has no cross-entity effects.
type Manager struct {
	items  *record.Collection[*MenuItem]
	logger apt.Logger
}

func NewManager(deps ManagerDeps, logger apt.Logger) *Manager {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Manager{
		items:  record.NewCollection(deps.Store, record.MenuItem, fromRecord),
		logger: logger,
	}
}

func (m *Manager) List(ctx context.Context) ([]*MenuItem, error) {
	items, err := m.items.All(ctx)
	if err != nil {
		m.logger.Error("cannot list menu items", "error", err)
		return []*MenuItem{}, err
	}
	return items, nil
}

// Get returns the item or nil when it does not exist.
func (m *Manager) Get(ctx context.Context, id int64) (*MenuItem, error) {
	item, _, err := m.items.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (m *Manager) Create(ctx context.Context, in CreateInput) (*MenuItem, error) {
	if err := record.Invalid(record.CollectionMenuItem, validateCreate(in)); err != nil {
		return nil, err
	}

	item, err := m.items.Create(ctx, in.toRecord())
	if err != nil {
		m.logger.Error("cannot create menu item", "name", in.Name, "error", err)
		return nil, err
	}
	return item, nil
}

func (m *Manager) Update(ctx context.Context, id int64, p Patch) (*MenuItem, error) {
	if err := record.Invalid(record.CollectionMenuItem, validatePatch(p)); err != nil {
		return nil, err
	}

	item, err := m.items.Update(ctx, id, p.toRecord())
	if err != nil {
		m.logger.Error("cannot update menu item", "id", id, "error", err)
		return nil, err
	}
	return item, nil
}

func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.items.Delete(ctx, id); err != nil {
		m.logger.Error("cannot delete menu item", "id", id, "error", err)
		return err
	}
	return nil
}

// ByCategory lists items of one category.
func (m *Manager) ByCategory(ctx context.Context, category string) ([]*MenuItem, error) {
	items, err := m.List(ctx)
	if err != nil {
		return []*MenuItem{}, err
	}
	return FilterByCategory(items, category), nil
}

// ToggleAvailability flips the available flag of an item.
func (m *Manager) ToggleAvailability(ctx context.Context, id int64) (*MenuItem, error) {
	current, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, record.NotFound(record.CollectionMenuItem, id)
	}

	next := !current.Available
	return m.Update(ctx, id, Patch{Available: &next})
}
