// Package calendar answers local-day questions (today, tomorrow, the coming
// week) against an injectable clock and a configured time zone.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Clock returns the current instant.
type Clock func() time.Time

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Bucket is a reservation date range filter.
type Bucket string

const (
	BucketAll      Bucket = "all"
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketWeek     Bucket = "week"
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{BucketAll, BucketToday, BucketTomorrow, BucketWeek}

// ParseBucket resolves a bucket name. Empty means all.
func ParseBucket(raw string) (Bucket, error) {
	b := Bucket(strings.ToLower(strings.TrimSpace(raw)))
	if b == "" {
		return BucketAll, nil
	}
	for _, known := range Buckets {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown date bucket %q", raw)
}

type Calendar struct {
	now Clock
	loc *time.Location
}

// New builds a Calendar. A nil clock uses time.Now and a nil location uses
// time.Local.
func New(now Clock, loc *time.Location) *Calendar {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{now: now, loc: loc}
}

// LoadLocation resolves a configured zone name; empty or "Local" yields time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("cannot load time zone %q: %w", name, err)
	}
	return loc, nil
}

// Now returns the current instant in the calendar's zone.
func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// Location returns the calendar's zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// StartOfDay returns local midnight of the day holding t.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
}

// SameDay reports whether a and b fall on the same local calendar day.
func (c *Calendar) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

func (c *Calendar) IsToday(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return c.SameDay(t, c.Now())
}

func (c *Calendar) IsTomorrow(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return c.SameDay(t, c.StartOfDay(c.Now()).AddDate(0, 0, 1))
}

// InNextWeek reports whether t lies within [now, now+7d], bounds inclusive.
func (c *Calendar) InNextWeek(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	now := c.Now()
	end := now.Add(7 * 24 * time.Hour)
	return !t.Before(now) && !t.After(end)
}

// InBucket reports whether t belongs to the bucket.
func (c *Calendar) InBucket(t time.Time, b Bucket) bool {
	switch b {
	case BucketToday:
		return c.IsToday(t)
	case BucketTomorrow:
		return c.IsTomorrow(t)
	case BucketWeek:
		return c.InNextWeek(t)
	default:
		return true
	}
}
