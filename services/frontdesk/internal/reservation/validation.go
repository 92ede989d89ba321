package reservation

import (
	"regexp"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

const (
	MinPartySize = 1
	MaxPartySize = 20
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// validateCreate checks a booking request against the current time. The
// parsed dateTime is returned when it is usable.
func validateCreate(in CreateInput, now time.Time, minLead time.Duration) (time.Time, apt.ValidationErrors) {
	var errs apt.ValidationErrors

	if !apt.IsRequired(in.CustomerName) {
		errs = append(errs, apt.ValidationError{Field: "customerName", Code: "required", Message: "customer name is required"})
	}
	errs = append(errs, validatePhone(in.Phone)...)
	errs = append(errs, validatePartySize(in.PartySize)...)

	at, dtErrs := parseDateTime(in.DateTime, now.Location())
	errs = append(errs, dtErrs...)
	if len(dtErrs) == 0 {
		switch {
		case !at.After(now):
			errs = append(errs, apt.ValidationError{Field: "dateTime", Code: "future", Message: "reservation must be in the future"})
		case at.Sub(now) < minLead:
			errs = append(errs, apt.ValidationError{
				Field:   "dateTime",
				Code:    "lead_time",
				Message: "reservation must be at least " + minLead.String() + " ahead",
			})
		}
	}

	return at, errs
}

// validatePatch checks only the fields present in the patch.
func validatePatch(p Patch, loc *time.Location) (*time.Time, apt.ValidationErrors) {
	var errs apt.ValidationErrors

	if p.CustomerName != nil && !apt.IsRequired(*p.CustomerName) {
		errs = append(errs, apt.ValidationError{Field: "customerName", Code: "required", Message: "customer name cannot be empty"})
	}
	if p.Phone != nil {
		errs = append(errs, validatePhone(*p.Phone)...)
	}
	if p.PartySize != nil {
		errs = append(errs, validatePartySize(*p.PartySize)...)
	}

	var at *time.Time
	if p.DateTime != nil {
		parsed, dtErrs := parseDateTime(*p.DateTime, loc)
		errs = append(errs, dtErrs...)
		if len(dtErrs) == 0 {
			at = &parsed
		}
	}

	return at, errs
}

func validatePhone(phone string) apt.ValidationErrors {
	if !apt.IsRequired(phone) {
		return apt.ValidationErrors{{Field: "phone", Code: "required", Message: "phone is required"}}
	}
	if !phonePattern.MatchString(phone) {
		return apt.ValidationErrors{{Field: "phone", Code: "format", Message: "phone may only contain digits, spaces, dashes, parentheses and a leading +"}}
	}
	return nil
}

func validatePartySize(size int) apt.ValidationErrors {
	if !apt.MinValueInt(size, MinPartySize) || !apt.MaxValueInt(size, MaxPartySize) {
		return apt.ValidationErrors{{Field: "partySize", Code: "range", Message: "party size must be between 1 and 20"}}
	}
	return nil
}

func parseDateTime(raw string, loc *time.Location) (time.Time, apt.ValidationErrors) {
	if !apt.IsRequired(raw) {
		return time.Time{}, apt.ValidationErrors{{Field: "dateTime", Code: "required", Message: "date and time are required"}}
	}
	at, err := record.ParseTimeIn(raw, loc)
	if err != nil {
		return time.Time{}, apt.ValidationErrors{{Field: "dateTime", Code: "format", Message: "date and time are not in a recognized format"}}
	}
	return at, nil
}
