package record

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field binds a logical field to its UI-side and backend-side keys.
type Field struct {
	Name    string
	UI      string
	Backend string
}

// Common fields shared by every collection.
var (
	FieldID        = Field{Name: "id", UI: "id", Backend: KeyID}
	FieldCreatedAt = Field{Name: "createdAt", UI: "createdAt", Backend: KeyCreatedOn}
	FieldUpdatedAt = Field{Name: "updatedAt", UI: "updatedAt", Backend: KeyModifiedOn}
)

// Mapping is the bidirectional naming table for one collection. Every read of
// a record field and every translation of a patch goes through it, so the
// UI-first / backend-second fallback exists in exactly one place.
type Mapping struct {
	collection string
	fields     []Field
	byName     map[string]Field
	byKey      map[string]Field
}

// NewMapping builds a mapping for a collection. The common id, createdAt and
// updatedAt fields are always included.
func NewMapping(collection string, fields ...Field) *Mapping {
	m := &Mapping{
		collection: collection,
		byName:     make(map[string]Field),
		byKey:      make(map[string]Field),
	}
	all := append([]Field{FieldID, FieldCreatedAt, FieldUpdatedAt}, fields...)
	for _, f := range all {
		if f.UI == "" {
			f.UI = f.Name
		}
		if f.Backend == "" {
			f.Backend = f.UI
		}
		m.fields = append(m.fields, f)
		m.byName[f.Name] = f
		m.byKey[f.UI] = f
		m.byKey[f.Backend] = f
	}
	return m
}

// Collection returns the backend collection name.
func (m *Mapping) Collection() string {
	return m.collection
}

// BackendFields lists the backend keys to request from a store.
func (m *Mapping) BackendFields() []string {
	out := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		out = append(out, f.Backend)
	}
	return out
}

// Lookup resolves a logical field from a record holding either convention.
// The UI key wins over the backend key.
func (m *Mapping) Lookup(r Record, name string) (any, bool) {
	f, ok := m.byName[name]
	if !ok || r == nil {
		return nil, false
	}
	if v, ok := r[f.UI]; ok && v != nil {
		return v, true
	}
	if v, ok := r[f.Backend]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// ToBackend translates a patch keyed by either convention into backend keys
// only. Keys unknown to the mapping are dropped.
func (m *Mapping) ToBackend(patch Record) Record {
	out := make(Record, len(patch))
	for _, f := range m.fields {
		if v, ok := patch[f.UI]; ok {
			out[f.Backend] = v
			continue
		}
		if v, ok := patch[f.Backend]; ok {
			out[f.Backend] = v
		}
	}
	return out
}

// ToUI returns the canonical UI-keyed shape of a record.
func (m *Mapping) ToUI(r Record) Record {
	out := make(Record, len(m.fields))
	for _, f := range m.fields {
		if v, ok := m.Lookup(r, f.Name); ok {
			out[f.UI] = v
		}
	}
	return out
}

// Knows reports whether key is a UI or backend key of this mapping.
func (m *Mapping) Knows(key string) bool {
	_, ok := m.byKey[key]
	return ok
}

// String reads a logical field as a string.
func (m *Mapping) String(r Record, name, def string) string {
	v, ok := m.Lookup(r, name)
	if !ok {
		return def
	}
	if s, ok := toString(v); ok {
		return s
	}
	return def
}

// Int reads a logical field as an int.
func (m *Mapping) Int(r Record, name string, def int) int {
	v, ok := m.Lookup(r, name)
	if !ok {
		return def
	}
	if i, ok := toInt64(v); ok {
		return int(i)
	}
	return def
}

// Int64 reads a logical field as an int64.
func (m *Mapping) Int64(r Record, name string, def int64) int64 {
	v, ok := m.Lookup(r, name)
	if !ok {
		return def
	}
	if i, ok := toInt64(v); ok {
		return i
	}
	return def
}

// Decimal reads a logical field as a decimal amount.
func (m *Mapping) Decimal(r Record, name string, def decimal.Decimal) decimal.Decimal {
	v, ok := m.Lookup(r, name)
	if !ok {
		return def
	}
	if d, ok := toDecimal(v); ok {
		return d
	}
	return def
}

// Bool reads a logical field as a bool.
func (m *Mapping) Bool(r Record, name string, def bool) bool {
	v, ok := m.Lookup(r, name)
	if !ok {
		return def
	}
	if b, ok := toBool(v); ok {
		return b
	}
	return def
}

// Time reads a logical field as a timestamp, returning the zero time when
// absent or unparseable.
func (m *Mapping) Time(r Record, name string) time.Time {
	v, ok := m.Lookup(r, name)
	if !ok {
		return time.Time{}
	}
	t, _ := toTime(v)
	return t
}

// OptionalTime is Time for fields that may legitimately be unset.
func (m *Mapping) OptionalTime(r Record, name string) *time.Time {
	t := m.Time(r, name)
	if t.IsZero() {
		return nil
	}
	return &t
}

// Raw returns the field value as stored, for fields with a custom decoding.
func (m *Mapping) Raw(r Record, name string) any {
	v, _ := m.Lookup(r, name)
	return v
}
