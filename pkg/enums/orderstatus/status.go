package orderstatus

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	if len(s.Name) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(s.Name)
}

// Active reports whether an order in this status still needs attention.
func (s Status) Active() bool {
	return s == Statuses.Pending || s == Statuses.Preparing
}

type Enum struct {
	Pending   Status
	Preparing Status
	Completed Status
	Cancelled Status
}

var Statuses = Enum{
	Pending:   Status{Name: "pending"},
	Preparing: Status{Name: "preparing"},
	Completed: Status{Name: "completed"},
	Cancelled: Status{Name: "cancelled"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.Preparing,
	Statuses.Completed,
	Statuses.Cancelled,
}

// Names returns the codes of every status.
func Names() []string {
	out := make([]string, 0, len(All))
	for _, s := range All {
		out = append(out, s.Name)
	}
	return out
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
