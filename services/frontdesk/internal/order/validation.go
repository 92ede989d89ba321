package order

import (
	"fmt"
	"strings"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
)

func validateCreate(in CreateInput) apt.ValidationErrors {
	var errs apt.ValidationErrors

	if !apt.MinValueInt(in.TableNumber, 1) {
		errs = append(errs, apt.ValidationError{Field: "tableNumber", Code: "range", Message: "table number must be positive"})
	}
	if len(in.Items) == 0 {
		errs = append(errs, apt.ValidationError{Field: "items", Code: "required", Message: "an order needs at least one item"})
	}
	errs = append(errs, validateItems(in.Items)...)

	return errs
}

func validatePatch(p Patch) apt.ValidationErrors {
	var errs apt.ValidationErrors

	if p.TableNumber != nil && !apt.MinValueInt(*p.TableNumber, 1) {
		errs = append(errs, apt.ValidationError{Field: "tableNumber", Code: "range", Message: "table number must be positive"})
	}
	if p.Items != nil {
		if len(*p.Items) == 0 {
			errs = append(errs, apt.ValidationError{Field: "items", Code: "required", Message: "an order needs at least one item"})
		}
		errs = append(errs, validateItems(*p.Items)...)
	}
	if p.Status != nil && orderstatus.ByName(strings.TrimSpace(*p.Status)) == nil {
		errs = append(errs, apt.ValidationError{
			Field:   "status",
			Code:    "invalid",
			Message: "status must be one of " + strings.Join(orderstatus.Names(), ", "),
		})
	}

	return errs
}

func validateItems(items []LineItem) apt.ValidationErrors {
	var errs apt.ValidationErrors
	for i, li := range items {
		field := fmt.Sprintf("items[%d]", i)
		if li.Quantity <= 0 {
			errs = append(errs, apt.ValidationError{Field: field + ".quantity", Code: "range", Message: "quantity must be positive"})
		}
		if li.Price.IsNegative() {
			errs = append(errs, apt.ValidationError{Field: field + ".price", Code: "range", Message: "price cannot be negative"})
		}
	}
	return errs
}
