package inventory

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/appetiteclub/frontdesk/pkg/enums/stocklevel"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// Item is a stocked ingredient or supply.
type Item struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	Unit              string    `json:"unit"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	Level             string    `json:"stockLevel"`
	LevelLabel        string    `json:"stockLevelLabel"`
	LastUpdated       time.Time `json:"lastUpdated"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (i *Item) ResourceType() string {
	return "inventory-item"
}

// IsLowStock reports whether the quantity is at or below the threshold.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// StockLevel classifies the item as low, medium or good.
func (i *Item) StockLevel() stocklevel.Level {
	return stocklevel.Of(i.Quantity, i.LowStockThreshold)
}

// CreateInput carries the fields accepted when stocking a new item.
type CreateInput struct {
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	Unit              string `json:"unit"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

// Patch holds the fields an update may change. Nil fields are left untouched.
type Patch struct {
	Name              *string `json:"name,omitempty"`
	Quantity          *int    `json:"quantity,omitempty"`
	Unit              *string `json:"unit,omitempty"`
	LowStockThreshold *int    `json:"lowStockThreshold,omitempty"`
}

func fromRecord(r record.Record) *Item {
	if r == nil {
		return nil
	}
	m := record.Inventory
	item := &Item{
		ID:                m.Int64(r, "id", 0),
		Name:              m.String(r, "name", ""),
		Quantity:          m.Int(r, "quantity", 0),
		Unit:              m.String(r, "unit", ""),
		LowStockThreshold: m.Int(r, "lowStockThreshold", 0),
		LastUpdated:       m.Time(r, "lastUpdated"),
		CreatedAt:         m.Time(r, "createdAt"),
		UpdatedAt:         m.Time(r, "updatedAt"),
	}
	level := item.StockLevel()
	item.Level = level.Code()
	item.LevelLabel = level.Label()
	return item
}

func (in CreateInput) toRecord(now time.Time) record.Record {
	return record.Record{
		"name":              strings.TrimSpace(in.Name),
		"quantity":          in.Quantity,
		"unit":              strings.TrimSpace(in.Unit),
		"lowStockThreshold": in.LowStockThreshold,
		"lastUpdated":       now,
	}
}

func (p Patch) toRecord(now time.Time) record.Record {
	r := record.Record{"lastUpdated": now}
	if p.Name != nil {
		r["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Quantity != nil {
		r["quantity"] = *p.Quantity
	}
	if p.Unit != nil {
		r["unit"] = strings.TrimSpace(*p.Unit)
	}
	if p.LowStockThreshold != nil {
		r["lowStockThreshold"] = *p.LowStockThreshold
	}
	return r
}

// Filter names accepted by FilterItems.
const (
	FilterAll  = "all"
	FilterLow  = "low"
	FilterGood = "good"
)

// FilterItems keeps low-stock items for "low" (or "low-stock"), items above
// their threshold for "good" (or "in-stock"), and everything otherwise.
func FilterItems(items []*Item, filter string) []*Item {
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		switch filter {
		case FilterLow, "low-stock":
			if !it.IsLowStock() {
				continue
			}
		case FilterGood, "in-stock":
			if it.IsLowStock() {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Search keeps items whose name or unit contains term, case-insensitively,
// and orders the result by name using locale-aware collation.
func Search(items []*Item, term string) []*Item {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		if term == "" ||
			strings.Contains(strings.ToLower(it.Name), term) ||
			strings.Contains(strings.ToLower(it.Unit), term) {
			out = append(out, it)
		}
	}
	col := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(out, func(a, b int) bool {
		return col.CompareString(out[a].Name, out[b].Name) < 0
	})
	return out
}

// Summary counts items per stock filter.
type Summary struct {
	All  int `json:"all"`
	Low  int `json:"low"`
	Good int `json:"good"`
}

func Summarize(items []*Item) Summary {
	s := Summary{All: len(items)}
	for _, it := range items {
		if it.IsLowStock() {
			s.Low++
		} else {
			s.Good++
		}
	}
	return s
}
