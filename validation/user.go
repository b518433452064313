package validation

import (
	"fmt"

	"github.com/carelog/hospital-admin/model"
)

// ValidateRegistration checks a registration payload.
func ValidateRegistration(req model.RegisterRequest) error {
	var errs FieldErrors

	if !validName(req.Name) {
		errs.add("", "name", fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen))
	}
	if !validEmail(req.Email) {
		errs.add("", "email", "email must be a well-formed address")
	}
	if !validPassword(req.Password) {
		errs.add("", "password", fmt.Sprintf("password must be between %d and %d characters", passwordMinLen, passwordMaxLen))
	}

	return errs.orNil()
}

// ValidateLogin checks a login payload.
func ValidateLogin(req model.LoginRequest) error {
	var errs FieldErrors

	if !validEmail(req.Email) {
		errs.add("", "email", "email must be a well-formed address")
	}
	if !validPassword(req.Password) {
		errs.add("", "password", fmt.Sprintf("password must be between %d and %d characters", passwordMinLen, passwordMaxLen))
	}

	return errs.orNil()
}
