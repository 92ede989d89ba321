package record

import (
	"context"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
)

// Validator checks a merged backend-keyed record before a memory store accepts it.
type Validator func(Record) apt.ValidationErrors

// MemoryStore is an in-process Store. Records keep insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string][]Record
	nextID     map[string]int64
	validators map[string]Validator
	now        func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithValidator installs a validator for one collection.
func WithValidator(collection string, v Validator) MemoryOption {
	return func(s *MemoryStore) {
		s.validators[collection] = v
	}
}

// WithNow overrides the store clock.
func WithNow(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		data:       make(map[string][]Record),
		nextID:     make(map[string]int64),
		validators: make(map[string]Validator),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) FetchAll(ctx context.Context, collection string, fields []string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, Transport("fetch "+collection, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.data[collection]
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Project(fields))
	}
	return out, nil
}

func (s *MemoryStore) FetchByID(ctx context.Context, collection string, id int64, fields []string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, Transport("fetch "+collection, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(collection, id); i >= 0 {
		return s.data[collection][i].Project(fields), nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateRecords(ctx context.Context, collection string, records []Record) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, Transport("create "+collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Result, 0, len(records))
	for _, rec := range records {
		row := rec.Clone()
		delete(row, KeyID)
		if errs := s.validate(collection, row); errs.HasErrors() {
			results = append(results, Result{Success: false, Errors: errs, Message: "validation failed"})
			continue
		}
		s.nextID[collection]++
		id := s.nextID[collection]
		now := s.now()
		row[KeyID] = id
		row[KeyCreatedOn] = now
		row[KeyModifiedOn] = now
		s.data[collection] = append(s.data[collection], row)
		results = append(results, Result{ID: id, Success: true, Record: row.Clone()})
	}
	return results, nil
}

func (s *MemoryStore) UpdateRecords(ctx context.Context, collection string, records []Record) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, Transport("update "+collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Result, 0, len(records))
	for _, patch := range records {
		id := patch.ID()
		i := s.indexOf(collection, id)
		if i < 0 {
			results = append(results, Result{ID: id, Success: false, Message: MsgNotFound})
			continue
		}
		merged := s.data[collection][i].Clone()
		for k, v := range patch {
			if k == KeyID || k == KeyCreatedOn {
				continue
			}
			merged[k] = v
		}
		if errs := s.validate(collection, merged); errs.HasErrors() {
			results = append(results, Result{ID: id, Success: false, Errors: errs, Message: "validation failed"})
			continue
		}
		merged[KeyModifiedOn] = s.now()
		s.data[collection][i] = merged
		results = append(results, Result{ID: id, Success: true, Record: merged.Clone()})
	}
	return results, nil
}

func (s *MemoryStore) DeleteRecords(ctx context.Context, collection string, ids []int64) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, Transport("delete "+collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		i := s.indexOf(collection, id)
		if i < 0 {
			results = append(results, Result{ID: id, Success: false, Message: MsgNotFound})
			continue
		}
		rows := s.data[collection]
		s.data[collection] = append(rows[:i:i], rows[i+1:]...)
		results = append(results, Result{ID: id, Success: true})
	}
	return results, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) indexOf(collection string, id int64) int {
	for i, r := range s.data[collection] {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) validate(collection string, r Record) apt.ValidationErrors {
	v, ok := s.validators[collection]
	if !ok {
		return nil
	}
	return v(r)
}
