package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Backend system keys stamped by every store.
const (
	KeyID         = "Id"
	KeyCreatedOn  = "CreatedOn"
	KeyModifiedOn = "ModifiedOn"
)

// Collection names as known by the storage backend.
const (
	CollectionInventory   = "inventory"
	CollectionMenuItem    = "menu_item"
	CollectionOrder       = "order"
	CollectionReservation = "reservation"
)

// Record is a flat field map exchanged with a Store.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Project keeps only the requested keys. Id is always kept.
func (r Record) Project(fields []string) Record {
	if len(fields) == 0 {
		return r.Clone()
	}
	out := make(Record, len(fields)+1)
	if id, ok := r[KeyID]; ok {
		out[KeyID] = id
	}
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// ID returns the backend identifier of the record, or 0.
func (r Record) ID() int64 {
	id, _ := toInt64(r[KeyID])
	return id
}

// ParseID coerces a string identifier into the integer form used by stores.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func toString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case []byte:
		return string(t), true
	case fmt.Stringer:
		return t.String(), true
	case int, int32, int64, float64, float32, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	case float32:
		return int64(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, true
		}
		if f, err := t.Float64(); err == nil {
			return int64(f), true
		}
	case decimal.Decimal:
		return t.IntPart(), true
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case primitive.Decimal128:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	}
	return decimal.Zero, false
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	case int, int32, int64, float64:
		i, _ := toInt64(t)
		return i != 0, true
	}
	return false, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case primitive.DateTime:
		return t.Time(), true
	case string:
		parsed, err := ParseTime(t)
		return parsed, err == nil
	case int64:
		return time.UnixMilli(t), true
	case float64:
		return time.UnixMilli(int64(t)), true
	case json.Number:
		ms, ok := toInt64(t)
		return time.UnixMilli(ms), ok
	}
	return time.Time{}, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// ParseTime parses the timestamp formats seen across backends. Strings such
// as "1/20/2024 6:30:00 PM.000Z" are accepted by dropping the trailing
// ".000Z" or "Z" marker and reading them as local time.
func ParseTime(raw string) (time.Time, error) {
	return ParseTimeIn(raw, time.Local)
}

// ParseTimeIn is ParseTime with zone-less values read in loc.
func ParseTimeIn(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts[:2] {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	cleaned := strings.TrimSuffix(s, ".000Z")
	cleaned = strings.TrimSuffix(cleaned, "Z")
	cleaned = strings.TrimSpace(cleaned)
	for _, layout := range timeLayouts[2:] {
		if t, err := time.ParseInLocation(layout, cleaned, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// AsString coerces a loosely typed value to a string.
func AsString(v any) (string, bool) { return toString(v) }

// AsInt64 coerces a loosely typed value to an int64.
func AsInt64(v any) (int64, bool) { return toInt64(v) }

// AsDecimal coerces a loosely typed value to a decimal.
func AsDecimal(v any) (decimal.Decimal, bool) { return toDecimal(v) }
