package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMappingLookupPrefersUIKey(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{
			name: "uiKeyOnly",
			rec:  Record{"tableNumber": 4},
			want: 4,
		},
		{
			name: "backendKeyOnly",
			rec:  Record{"table_number": 7},
			want: 7,
		},
		{
			name: "bothKeysUIWins",
			rec:  Record{"tableNumber": 3, "table_number": 9},
			want: 3,
		},
		{
			name: "nilUIFallsBack",
			rec:  Record{"tableNumber": nil, "table_number": 5},
			want: 5,
		},
		{
			name: "absentUsesDefault",
			rec:  Record{},
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Order.Int(tt.rec, "tableNumber", -1); got != tt.want {
				t.Errorf("Order.Int() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMappingToBackend(t *testing.T) {
	patch := Record{
		"customerName": "Ana",
		"party_size":   4,
		"dateTime":     "2024-01-20T18:30:00Z",
		"unknown":      true,
	}

	got := Reservation.ToBackend(patch)

	want := map[string]any{
		"customer_name": "Ana",
		"party_size":    4,
		"date_time":     "2024-01-20T18:30:00Z",
	}
	if len(got) != len(want) {
		t.Fatalf("ToBackend() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ToBackend()[%q] = %v, want %v", k, got[k], v)
		}
	}
	if _, ok := got["customerName"]; ok {
		t.Error("ToBackend() must not emit UI keys")
	}
}

func TestMappingToUIRoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	backend := Record{
		KeyID:            int64(12),
		KeyCreatedOn:     created,
		"order_number":   "ORD-123456",
		"table_number":   int32(6),
		"total_amount":   19.5,
		"status":         "pending",
		"items":          "[]",
		"not_in_mapping": "x",
	}

	ui := Order.ToUI(backend)

	if ui["id"] != int64(12) {
		t.Errorf("id = %v, want 12", ui["id"])
	}
	if ui["orderNumber"] != "ORD-123456" {
		t.Errorf("orderNumber = %v", ui["orderNumber"])
	}
	if _, ok := ui["not_in_mapping"]; ok {
		t.Error("ToUI() kept an unmapped key")
	}

	back := Order.ToBackend(ui)
	if back["table_number"] != int32(6) {
		t.Errorf("table_number = %v, want 6", back["table_number"])
	}
	if back[KeyCreatedOn] != created {
		t.Errorf("CreatedOn = %v, want %v", back[KeyCreatedOn], created)
	}
}

func TestMappingTypedAccessors(t *testing.T) {
	dt := time.Date(2024, 1, 20, 18, 30, 0, 0, time.UTC)
	d128, _ := primitive.ParseDecimal128("9.50")

	rec := Record{
		"price":     d128,
		"available": "true",
		"Name":      "Margherita",
		"CreatedOn": primitive.NewDateTimeFromTime(dt),
	}

	if got := MenuItem.Decimal(rec, "price", decimal.Zero); !got.Equal(decimal.RequireFromString("9.5")) {
		t.Errorf("Decimal() = %s, want 9.5", got)
	}
	if !MenuItem.Bool(rec, "available", false) {
		t.Error("Bool() = false, want true")
	}
	if got := MenuItem.String(rec, "name", ""); got != "Margherita" {
		t.Errorf("String() = %q, want Margherita", got)
	}
	if got := MenuItem.Time(rec, "createdAt"); !got.Equal(dt) {
		t.Errorf("Time() = %v, want %v", got, dt)
	}
	if got := MenuItem.OptionalTime(rec, "updatedAt"); got != nil {
		t.Errorf("OptionalTime() = %v, want nil", got)
	}
	if got := MenuItem.Int(Record{"price": json.Number("12")}, "price", 0); got != 12 {
		t.Errorf("Int(json.Number) = %d, want 12", got)
	}
	if got := MenuItem.Bool(Record{"available": []int{1}}, "available", true); !got {
		t.Error("Bool() on mismatched type should fall back to default")
	}
}
