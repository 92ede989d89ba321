package order

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		wantCount int
		wantFirst string
	}{
		{name: "nilValue", raw: nil, wantCount: 0},
		{name: "jsonText", raw: `[{"id":1,"name":"Margherita","price":9.5,"quantity":2}]`, wantCount: 1, wantFirst: "Margherita"},
		{name: "stringPrices", raw: `[{"name":"Soup","price":"4.25","quantity":"1"}]`, wantCount: 1, wantFirst: "Soup"},
		{name: "stringID", raw: `[{"id":"x-1","name":"Bread","price":2,"quantity":1}]`, wantCount: 1, wantFirst: "Bread"},
		{name: "malformedText", raw: `not json`, wantCount: 0},
		{name: "objectNotList", raw: `{"name":"Soup"}`, wantCount: 0},
		{name: "badLineDropped", raw: `[{"name":"Soup"},{"name":"Tea","price":3,"quantity":1}]`, wantCount: 1, wantFirst: "Tea"},
		{
			name:      "decodedSlice",
			raw:       []any{map[string]any{"name": "Cake", "price": 5.0, "quantity": 1}},
			wantCount: 1,
			wantFirst: "Cake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeItems(tt.raw)
			if got == nil {
				t.Fatal("decodeItems() returned nil, want empty list")
			}
			if len(got) != tt.wantCount {
				t.Fatalf("decodeItems() = %d items, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount > 0 && got[0].Name != tt.wantFirst {
				t.Errorf("decodeItems()[0].Name = %q, want %q", got[0].Name, tt.wantFirst)
			}
		})
	}
}

func TestEncodeItemsReadBack(t *testing.T) {
	items := []LineItem{margherita(2), {Name: "Tea", Price: decimal.RequireFromString("2.499"), Quantity: 1}}

	got := decodeItems(encodeItems(items))
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if !got[1].Price.Equal(decimal.RequireFromString("2.499")) {
		t.Errorf("price = %s, want 2.499", got[1].Price)
	}
	if !Total(got).Equal(Total(items)) {
		t.Errorf("Total() = %s, want %s", Total(got), Total(items))
	}
}

func TestFromRecordBackendShape(t *testing.T) {
	r := record.Record{
		record.KeyID:   int64(3),
		"order_number": "ORD-123456",
		"table_number": "4",
		"items":        `[{"name":"Margherita","price":9.5,"quantity":2}]`,
		"status":       "preparing",
		"total_amount": 19.0,
	}

	o := fromRecord(r)
	if o.ID != 3 || o.OrderNumber != "ORD-123456" || o.TableNumber != 4 || o.Status != "preparing" {
		t.Errorf("fromRecord() = %+v", o)
	}
	if len(o.Items) != 1 || !Total(o.Items).Equal(o.TotalAmount) {
		t.Errorf("items = %+v, total = %s", o.Items, o.TotalAmount)
	}
	if o.StatusLabel != "Preparing" {
		t.Errorf("StatusLabel = %q, want Preparing", o.StatusLabel)
	}
}

func TestNumberGeneratorStrictlyIncreasing(t *testing.T) {
	at := time.Date(2024, 1, 20, 19, 30, 0, 0, time.UTC)
	g := NewNumberGenerator(func() time.Time { return at })

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := g.Next()
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != 50 {
		t.Errorf("generated %d distinct numbers, want 50", len(seen))
	}
}

func TestNewBillRounding(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		wantTax   string
		wantTotal string
	}{
		{name: "wholeTotal", total: "19.00", wantTax: "1.90", wantTotal: "20.90"},
		{name: "halfCentRoundsUp", total: "12.35", wantTax: "1.24", wantTotal: "13.59"},
		{name: "zeroTotal", total: "0", wantTax: "0", wantTotal: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{ID: 1, TotalAmount: decimal.RequireFromString(tt.total)}
			b := NewBill(o, time.Time{})
			if !b.Tax.Equal(decimal.RequireFromString(tt.wantTax)) {
				t.Errorf("Tax = %s, want %s", b.Tax, tt.wantTax)
			}
			if !b.Total.Equal(decimal.RequireFromString(tt.wantTotal)) {
				t.Errorf("Total = %s, want %s", b.Total, tt.wantTotal)
			}
			if b.Items == nil {
				t.Error("Items should never be nil")
			}
		})
	}
}
