package inventory

import "github.com/appetiteclub/apt"

func validateCreate(in CreateInput) apt.ValidationErrors {
	var errs apt.ValidationErrors

	if !apt.IsRequired(in.Name) {
		errs = append(errs, apt.ValidationError{Field: "name", Code: "required", Message: "name is required"})
	}
	if !apt.IsRequired(in.Unit) {
		errs = append(errs, apt.ValidationError{Field: "unit", Code: "required", Message: "unit is required"})
	}
	errs = append(errs, validateCounts(&in.Quantity, &in.LowStockThreshold)...)

	return errs
}

func validatePatch(p Patch) apt.ValidationErrors {
	var errs apt.ValidationErrors

	if p.Name != nil && !apt.IsRequired(*p.Name) {
		errs = append(errs, apt.ValidationError{Field: "name", Code: "required", Message: "name cannot be empty"})
	}
	if p.Unit != nil && !apt.IsRequired(*p.Unit) {
		errs = append(errs, apt.ValidationError{Field: "unit", Code: "required", Message: "unit cannot be empty"})
	}
	errs = append(errs, validateCounts(p.Quantity, p.LowStockThreshold)...)

	return errs
}

func validateCounts(quantity, threshold *int) apt.ValidationErrors {
	var errs apt.ValidationErrors
	if quantity != nil && !apt.MinValueInt(*quantity, 0) {
		errs = append(errs, apt.ValidationError{Field: "quantity", Code: "min", Message: "quantity cannot be negative"})
	}
	if threshold != nil && !apt.MinValueInt(*threshold, 0) {
		errs = append(errs, apt.ValidationError{Field: "lowStockThreshold", Code: "min", Message: "lowStockThreshold cannot be negative"})
	}
	return errs
}
