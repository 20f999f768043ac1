package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/ventascrm/sales-api/internal/core/domain"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Stock int    `validate:"gte=0"`
}

func TestValidationMessage(t *testing.T) {
	err := validate.Struct(sample{Email: "nope", Stock: -1})
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation errors, got %v", err)
	}

	got := ValidationMessage(ve)
	for _, want := range []string{"name is required", "email must be a valid email", "stock must be at least 0"} {
		if !strings.Contains(got, want) {
			t.Errorf("message %q should contain %q", got, want)
		}
	}
}

func TestValidateInput_WrapsErrValidation(t *testing.T) {
	err := validateInput(sample{Email: "a@example.com"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("unexpected message: %v", err)
	}
}
