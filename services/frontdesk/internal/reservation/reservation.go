package reservation

import (
	"sort"
	"strings"
	"time"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// Reservation is a table booking for a party.
type Reservation struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone"`
	DateTime     time.Time `json:"dateTime"`
	PartySize    int       `json:"partySize"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r *Reservation) ResourceType() string {
	return "reservation"
}

// CreateInput carries a booking request. DateTime accepts RFC 3339 and the
// looser formats understood by record.ParseTime.
type CreateInput struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	DateTime     string `json:"dateTime"`
	PartySize    int    `json:"partySize"`
	Notes        string `json:"notes,omitempty"`
}

type Patch struct {
	CustomerName *string `json:"customerName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	DateTime     *string `json:"dateTime,omitempty"`
	PartySize    *int    `json:"partySize,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func fromRecord(r record.Record) *Reservation {
	if r == nil {
		return nil
	}
	m := record.Reservation
	return &Reservation{
		ID:           m.Int64(r, "id", 0),
		CustomerName: m.String(r, "customerName", ""),
		Phone:        m.String(r, "phone", ""),
		DateTime:     m.Time(r, "dateTime"),
		PartySize:    m.Int(r, "partySize", 0),
		Notes:        m.String(r, "notes", ""),
		CreatedAt:    m.Time(r, "createdAt"),
		UpdatedAt:    m.Time(r, "updatedAt"),
	}
}

func (in CreateInput) toRecord(at time.Time) record.Record {
	r := record.Record{
		"customerName": strings.TrimSpace(in.CustomerName),
		"phone":        strings.TrimSpace(in.Phone),
		"dateTime":     at,
		"partySize":    in.PartySize,
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		r["notes"] = notes
	}
	return r
}

func (p Patch) toRecord(at *time.Time) record.Record {
	r := record.Record{}
	if p.CustomerName != nil {
		r["customerName"] = strings.TrimSpace(*p.CustomerName)
	}
	if p.Phone != nil {
		r["phone"] = strings.TrimSpace(*p.Phone)
	}
	if at != nil {
		r["dateTime"] = *at
	}
	if p.PartySize != nil {
		r["partySize"] = *p.PartySize
	}
	if p.Notes != nil {
		r["notes"] = strings.TrimSpace(*p.Notes)
	}
	return r
}

// SortChronological orders reservations by dateTime, earliest first.
func SortChronological(items []*Reservation) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].DateTime.Before(items[b].DateTime)
	})
}

// Search keeps reservations whose customer name or notes contain term
// (ignoring case) or whose phone contains it verbatim. The result is sorted
// chronologically.
func Search(items []*Reservation, term string) []*Reservation {
	term = strings.TrimSpace(term)
	lower := strings.ToLower(term)
	out := make([]*Reservation, 0, len(items))
	for _, it := range items {
		if term == "" ||
			strings.Contains(strings.ToLower(it.CustomerName), lower) ||
			strings.Contains(it.Phone, term) ||
			strings.Contains(strings.ToLower(it.Notes), lower) {
			out = append(out, it)
		}
	}
	SortChronological(out)
	return out
}
