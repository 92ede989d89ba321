package order

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

type Order struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	TableNumber int             `json:"tableNumber"`
	Items       []LineItem      `json:"items"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"statusLabel"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (o *Order) ResourceType() string {
	return "order"
}

// IsActive reports whether the kitchen still has to act on the order.
func (o *Order) IsActive() bool {
	s := orderstatus.ByName(o.Status)
	return s != nil && s.Active()
}

type CreateInput struct {
	TableNumber int        `json:"tableNumber"`
	Items       []LineItem `json:"items"`
}

// Patch merges into an existing order. The stored total is not recomputed
// when items change.
type Patch struct {
	TableNumber *int        `json:"tableNumber,omitempty"`
	Items       *[]LineItem `json:"items,omitempty"`
	Status      *string     `json:"status,omitempty"`
}

func fromRecord(r record.Record) *Order {
	if r == nil {
		return nil
	}
	m := record.Order
	o := &Order{
		ID:          m.Int64(r, "id", 0),
		OrderNumber: m.String(r, "orderNumber", ""),
		TableNumber: m.Int(r, "tableNumber", 0),
		Items:       decodeItems(m.Raw(r, "items")),
		Status:      m.String(r, "status", orderstatus.Statuses.Pending.Code()),
		TotalAmount: m.Decimal(r, "totalAmount", decimal.Zero),
		CreatedAt:   m.Time(r, "createdAt"),
		CompletedAt: m.OptionalTime(r, "completedAt"),
		UpdatedAt:   m.Time(r, "updatedAt"),
	}
	if s := orderstatus.ByName(o.Status); s != nil {
		o.StatusLabel = s.Label()
	}
	return o
}

func (in CreateInput) toRecord(number string) record.Record {
	return record.Record{
		"orderNumber": number,
		"tableNumber": in.TableNumber,
		"items":       encodeItems(in.Items),
		"status":      orderstatus.Statuses.Pending.Code(),
		"totalAmount": json.Number(Total(in.Items).String()),
	}
}

func (p Patch) toRecord() record.Record {
	r := record.Record{}
	if p.TableNumber != nil {
		r["tableNumber"] = *p.TableNumber
	}
	if p.Items != nil {
		r["items"] = encodeItems(*p.Items)
	}
	if p.Status != nil {
		r["status"] = strings.TrimSpace(*p.Status)
	}
	return r
}

// ByStatus keeps orders with the given status.
func ByStatus(items []*Order, status string) []*Order {
	out := make([]*Order, 0, len(items))
	for _, o := range items {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// SortNewestFirst orders by creation time, most recent first.
func SortNewestFirst(items []*Order) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})
}

// Search keeps orders whose number or any item name contains term ignoring
// case, or whose table number contains it.
func Search(items []*Order, term string) []*Order {
	term = strings.TrimSpace(term)
	if term == "" {
		return items
	}
	lower := strings.ToLower(term)
	out := make([]*Order, 0, len(items))
	for _, o := range items {
		if matches(o, term, lower) {
			out = append(out, o)
		}
	}
	return out
}

func matches(o *Order, term, lower string) bool {
	if strings.Contains(strings.ToLower(o.OrderNumber), lower) {
		return true
	}
	if strings.Contains(strconv.Itoa(o.TableNumber), term) {
		return true
	}
	for _, li := range o.Items {
		if strings.Contains(strings.ToLower(li.Name), lower) {
			return true
		}
	}
	return false
}

// Counts is the per-tab tally shown above the order list.
type Counts struct {
	Today     int `json:"today"`
	Pending   int `json:"pending"`
	Preparing int `json:"preparing"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}
