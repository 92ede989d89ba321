package menu

import "github.com/appetiteclub/apt"

func validateCreate(in CreateInput) apt.ValidationErrors {
	var errs apt.ValidationErrors

	if !apt.IsRequired(in.Name) {
		errs = append(errs, apt.ValidationError{Field: "name", Code: "required", Message: "name is required"})
	}
	if !apt.IsRequired(in.Description) {
		errs = append(errs, apt.ValidationError{Field: "description", Code: "required", Message: "description is required"})
	}
	if in.Price.IsNegative() {
		errs = append(errs, priceError())
	}

	return errs
}

func validatePatch(p Patch) apt.ValidationErrors {
	var errs apt.ValidationErrors

	if p.Name != nil && !apt.IsRequired(*p.Name) {
		errs = append(errs, apt.ValidationError{Field: "name", Code: "required", Message: "name cannot be empty"})
	}
	if p.Description != nil && !apt.IsRequired(*p.Description) {
		errs = append(errs, apt.ValidationError{Field: "description", Code: "required", Message: "description cannot be empty"})
	}
	if p.Price != nil && p.Price.IsNegative() {
		errs = append(errs, priceError())
	}

	return errs
}

func priceError() apt.ValidationError {
	return apt.ValidationError{Field: "price", Code: "min", Message: "price must be a non-negative number"}
}
