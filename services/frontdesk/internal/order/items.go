package order

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// LineItem is a snapshot of a menu item at the moment it was ordered.
type LineItem struct {
	ID       int64           `json:"id,omitempty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Total sums the subtotal of every line.
func Total(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

type storedItem struct {
	ID       int64       `json:"id,omitempty"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

// encodeItems renders line items as the JSON text kept by the backend.
// Prices are written as given so the lines add up to the stored total.
func encodeItems(items []LineItem) string {
	stored := make([]storedItem, 0, len(items))
	for _, li := range items {
		stored = append(stored, storedItem{
			ID:       li.ID,
			Name:     li.Name,
			Price:    json.Number(li.Price.String()),
			Quantity: li.Quantity,
		})
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeItems reads line items from JSON text or an already decoded value.
// Anything unreadable yields an empty list; a single bad line is dropped.
func decodeItems(raw any) []LineItem {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return []LineItem{}
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return []LineItem{}
		}
		data = b
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return []LineItem{}
	}

	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		li, ok := lineItemFrom(row)
		if !ok {
			continue
		}
		items = append(items, li)
	}
	return items
}

func lineItemFrom(row map[string]any) (LineItem, bool) {
	if row == nil {
		return LineItem{}, false
	}
	name, _ := record.AsString(row["name"])
	price, ok := record.AsDecimal(row["price"])
	if !ok {
		return LineItem{}, false
	}
	qty, ok := record.AsInt64(row["quantity"])
	if !ok {
		return LineItem{}, false
	}
	id, _ := record.AsInt64(row["id"])
	return LineItem{ID: id, Name: name, Price: price, Quantity: int(qty)}, true
}
