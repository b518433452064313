package validation

import (
	"strings"
	"testing"

	"github.com/carelog/hospital-admin/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		req     model.RegisterRequest
		wantErr bool
	}{
		{"valid", model.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1"}, false},
		{"short name", model.RegisterRequest{Name: "Al", Email: "a@x.com", Password: "secret1"}, true},
		{"bad email", model.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "secret1"}, true},
		{"empty email", model.RegisterRequest{Name: "Alice", Email: "", Password: "secret1"}, true},
		{"short password", model.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "five5"}, true},
		{"long password", model.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: strings.Repeat("p", 101)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRegistration_CollectsAllErrors(t *testing.T) {
	err := ValidateRegistration(model.RegisterRequest{Name: "x", Email: "bad", Password: "no"})
	assert.Error(t, err)

	errs, ok := err.(FieldErrors)
	assert.True(t, ok)
	assert.Len(t, errs, 3)
}

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin(model.LoginRequest{Email: "a@x.com", Password: "secret1"}))
	assert.Error(t, ValidateLogin(model.LoginRequest{Email: "nope", Password: "secret1"}))
	assert.Error(t, ValidateLogin(model.LoginRequest{Email: "a@x.com", Password: "nope"}))
}
