package record

import (
	"context"
	"fmt"
)

// Collection binds a Store, a Mapping and a decoder so managers can work in
// typed entities and UI-keyed patches.
type Collection[T any] struct {
	store   Store
	mapping *Mapping
	decode  func(Record) T
}

func NewCollection[T any](store Store, mapping *Mapping, decode func(Record) T) *Collection[T] {
	return &Collection[T]{store: store, mapping: mapping, decode: decode}
}

func (c *Collection[T]) Name() string {
	return c.mapping.Collection()
}

// All returns every record decoded, in storage order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	recs, err := c.store.FetchAll(ctx, c.Name(), c.mapping.BackendFields())
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", c.Name(), err)
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.decode(r))
	}
	return out, nil
}

// ByID returns the decoded record, or found=false when it does not exist.
func (c *Collection[T]) ByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	r, err := c.store.FetchByID(ctx, c.Name(), id, c.mapping.BackendFields())
	if err != nil {
		return zero, false, fmt.Errorf("cannot get %s %d: %w", c.Name(), id, err)
	}
	if r == nil {
		return zero, false, nil
	}
	return c.decode(r), true, nil
}

// Create stores a UI-keyed record and returns the stored entity.
func (c *Collection[T]) Create(ctx context.Context, ui Record) (T, error) {
	var zero T
	results, err := c.store.CreateRecords(ctx, c.Name(), []Record{c.mapping.ToBackend(ui)})
	if err != nil {
		return zero, fmt.Errorf("cannot create %s: %w", c.Name(), err)
	}
	res, err := First(c.Name(), 0, results)
	if err != nil {
		return zero, fmt.Errorf("cannot create %s: %w", c.Name(), err)
	}
	return c.decode(res.Record), nil
}

// Update merges a UI-keyed patch into the record with the given id.
func (c *Collection[T]) Update(ctx context.Context, id int64, ui Record) (T, error) {
	var zero T
	patch := c.mapping.ToBackend(ui)
	patch[KeyID] = id
	results, err := c.store.UpdateRecords(ctx, c.Name(), []Record{patch})
	if err != nil {
		return zero, fmt.Errorf("cannot update %s %d: %w", c.Name(), id, err)
	}
	res, err := First(c.Name(), id, results)
	if err != nil {
		return zero, fmt.Errorf("cannot update %s %d: %w", c.Name(), id, err)
	}
	return c.decode(res.Record), nil
}

func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	results, err := c.store.DeleteRecords(ctx, c.Name(), []int64{id})
	if err != nil {
		return fmt.Errorf("cannot delete %s %d: %w", c.Name(), id, err)
	}
	if _, err := First(c.Name(), id, results); err != nil {
		return fmt.Errorf("cannot delete %s %d: %w", c.Name(), id, err)
	}
	return nil
}
