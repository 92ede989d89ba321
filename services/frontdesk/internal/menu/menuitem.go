package menu

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// MenuItem is a dish or drink offered to guests.
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (m *MenuItem) ResourceType() string {
	return "menu-item"
}

type CreateInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	// Available defaults to true when omitted.
	Available *bool `json:"available,omitempty"`
}

type Patch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Available   *bool            `json:"available,omitempty"`
}

func fromRecord(r record.Record) *MenuItem {
	if r == nil {
		return nil
	}
	m := record.MenuItem
	return &MenuItem{
		ID:          m.Int64(r, "id", 0),
		Name:        m.String(r, "name", ""),
		Description: m.String(r, "description", ""),
		Category:    m.String(r, "category", ""),
		Price:       m.Decimal(r, "price", decimal.Zero),
		Available:   m.Bool(r, "available", true),
		CreatedAt:   m.Time(r, "createdAt"),
		UpdatedAt:   m.Time(r, "updatedAt"),
	}
}

func (in CreateInput) toRecord() record.Record {
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return record.Record{
		"name":        strings.TrimSpace(in.Name),
		"description": strings.TrimSpace(in.Description),
		"category":    strings.TrimSpace(in.Category),
		"price":       in.Price.Round(2).InexactFloat64(),
		"available":   available,
	}
}

func (p Patch) toRecord() record.Record {
	r := record.Record{}
	if p.Name != nil {
		r["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		r["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		r["category"] = strings.TrimSpace(*p.Category)
	}
	if p.Price != nil {
		r["price"] = p.Price.Round(2).InexactFloat64()
	}
	if p.Available != nil {
		r["available"] = *p.Available
	}
	return r
}

// CategoryAll selects every item regardless of category.
const CategoryAll = "all"

// FilterByCategory keeps items of the given category. Empty or "all" keeps
// everything.
func FilterByCategory(items []*MenuItem, category string) []*MenuItem {
	out := make([]*MenuItem, 0, len(items))
	for _, it := range items {
		if category == "" || category == CategoryAll || it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Search keeps items whose name, description or category contains term,
// ignoring case, ordered by category then name.
func Search(items []*MenuItem, term string) []*MenuItem {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]*MenuItem, 0, len(items))
	for _, it := range items {
		if term == "" ||
			strings.Contains(strings.ToLower(it.Name), term) ||
			strings.Contains(strings.ToLower(it.Description), term) ||
			strings.Contains(strings.ToLower(it.Category), term) {
			out = append(out, it)
		}
	}
	col := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(out, func(a, b int) bool {
		if c := col.CompareString(out[a].Category, out[b].Category); c != 0 {
			return c < 0
		}
		return col.CompareString(out[a].Name, out[b].Name) < 0
	})
	return out
}

// CategoryCounts counts items per category, plus the "all" total.
func CategoryCounts(items []*MenuItem) map[string]int {
	counts := map[string]int{CategoryAll: len(items)}
	for _, it := range items {
		counts[it.Category]++
	}
	return counts
}
