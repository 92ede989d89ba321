package seeding

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt/seed"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// SeedsCollection holds the applied seed records for stores other than Mongo.
const SeedsCollection = "_seeds"

// StoreTracker records applied seeds in a record.Store collection, so any
// store driver can track seeding.
type StoreTracker struct {
	store record.Store
}

func NewStoreTracker(store record.Store) *StoreTracker {
	return &StoreTracker{store: store}
}

func (t *StoreTracker) HasRun(ctx context.Context, id string) (bool, error) {
	rows, err := t.store.FetchAll(ctx, SeedsCollection, nil)
	if err != nil {
		return false, fmt.Errorf("cannot read seed records: %w", err)
	}
	for _, r := range rows {
		if seedID, _ := record.AsString(r["seed_id"]); seedID == id {
			return true, nil
		}
	}
	return false, nil
}

func (t *StoreTracker) MarkRun(ctx context.Context, rec seed.Record) error {
	results, err := t.store.CreateRecords(ctx, SeedsCollection, []record.Record{{
		"seed_id":     rec.ID,
		"application": rec.Application,
		"description": rec.Description,
		"applied_at":  rec.AppliedAt,
	}})
	if err != nil {
		return fmt.Errorf("cannot record seed %s: %w", rec.ID, err)
	}
	if _, err := record.First(SeedsCollection, 0, results); err != nil {
		return fmt.Errorf("cannot record seed %s: %w", rec.ID, err)
	}
	return nil
}
