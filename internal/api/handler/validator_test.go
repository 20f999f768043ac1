package handler

import (
	"testing"
)

func TestValidator_UsesFieldMessages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&graphqlRequest{})
	if err == nil {
		t.Fatal("expected an error for a request without query")
	}
	if err.Error() != "query is required" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	if err := v.Validate(&graphqlRequest{Query: "{ obtenerProductos { id } }"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
