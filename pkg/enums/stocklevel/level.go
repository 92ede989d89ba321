package stocklevel

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Level struct {
	Name string
}

func (l Level) Code() string {
	return l.Name
}

func (l Level) Label() string {
	if len(l.Name) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(l.Name)
}

type Enum struct {
	Low    Level
	Medium Level
	Good   Level
}

var Levels = Enum{
	Low:    Level{Name: "low"},
	Medium: Level{Name: "medium"},
	Good:   Level{Name: "good"},
}

var All = []Level{
	Levels.Low,
	Levels.Medium,
	Levels.Good,
}

// Of classifies a quantity against its low-stock threshold: low at or below
// the threshold, medium up to one and a half times it, good above.
func Of(quantity, threshold int) Level {
	switch {
	case quantity <= threshold:
		return Levels.Low
	case float64(quantity) <= float64(threshold)*1.5:
		return Levels.Medium
	default:
		return Levels.Good
	}
}

// ByName returns the level for a given name, or nil if not found
func ByName(name string) *Level {
	for _, l := range All {
		if l.Name == name {
			return &l
		}
	}
	return nil
}
