package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/appetiteclub/apt"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(WithNow(func() time.Time { return now }))

	results, err := store.CreateRecords(ctx, CollectionInventory, []Record{
		{"Name": "Flour", "quantity": 10},
		{"Name": "Salt", "quantity": 2},
	})
	if err != nil {
		t.Fatalf("CreateRecords() error = %v", err)
	}
	if len(results) != 2 || results[0].ID != 1 || results[1].ID != 2 {
		t.Fatalf("CreateRecords() results = %+v", results)
	}
	if results[0].Record[KeyCreatedOn] != now {
		t.Errorf("CreatedOn not stamped: %v", results[0].Record)
	}

	all, err := store.FetchAll(ctx, CollectionInventory, nil)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(all) != 2 || all[0]["Name"] != "Flour" {
		t.Fatalf("FetchAll() = %v, want insertion order", all)
	}

	later := now.Add(time.Hour)
	store.now = func() time.Time { return later }
	upd, err := store.UpdateRecords(ctx, CollectionInventory, []Record{{KeyID: int64(1), "quantity": 12}})
	if err != nil {
		t.Fatalf("UpdateRecords() error = %v", err)
	}
	if !upd[0].Success || upd[0].Record["quantity"] != 12 || upd[0].Record["Name"] != "Flour" {
		t.Errorf("UpdateRecords() = %+v", upd[0])
	}
	if upd[0].Record[KeyModifiedOn] != later {
		t.Errorf("ModifiedOn = %v, want %v", upd[0].Record[KeyModifiedOn], later)
	}

	del, err := store.DeleteRecords(ctx, CollectionInventory, []int64{1, 99})
	if err != nil {
		t.Fatalf("DeleteRecords() error = %v", err)
	}
	if !del[0].Success || del[1].Success {
		t.Errorf("DeleteRecords() = %+v", del)
	}

	got, err := store.FetchByID(ctx, CollectionInventory, 1, nil)
	if err != nil || got != nil {
		t.Errorf("FetchByID() after delete = %v, %v; want nil, nil", got, err)
	}
}

func TestMemoryStoreValidator(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithValidator(CollectionMenuItem, func(r Record) apt.ValidationErrors {
		if MenuItem.String(r, "name", "") == "" {
			return apt.ValidationErrors{{Field: "name", Code: "required", Message: "name is required"}}
		}
		return nil
	}))

	results, err := store.CreateRecords(ctx, CollectionMenuItem, []Record{{"price": 3}})
	if err != nil {
		t.Fatalf("CreateRecords() error = %v", err)
	}

	_, err = First(CollectionMenuItem, 0, results)
	vf, ok := AsValidation(err)
	if !ok {
		t.Fatalf("First() error = %v, want ValidationFailure", err)
	}
	if len(vf.Errors) != 1 || vf.Errors[0].Field != "name" {
		t.Errorf("ValidationFailure.Errors = %+v", vf.Errors)
	}
}

func TestFirstMapsNotFound(t *testing.T) {
	_, err := First(CollectionOrder, 5, []Result{{ID: 5, Message: MsgNotFound}})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("First() error = %v, want ErrNotFound", err)
	}

	_, err = First(CollectionOrder, 5, nil)
	if !IsTransport(err) {
		t.Errorf("First() on empty results = %v, want transport error", err)
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().FetchAll(ctx, CollectionOrder, nil)
	if !IsTransport(err) {
		t.Errorf("FetchAll() error = %v, want transport error", err)
	}
}
