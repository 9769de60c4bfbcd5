package core

import (
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

func TestValidationErrorFieldMap(t *testing.T) {
	verr := NewValidationError(nil,
		FieldError{Field: "days", Error: "must be an integer"},
		FieldError{Field: "question", Error: "this field is required"},
	).(*ValidationError)

	want := map[string]string{
		"days":     "must be an integer",
		"question": "this field is required",
	}
	if got := verr.FieldMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldMap() = %v, want %v", got, want)
	}

	plain := NewValidationError(errors.New("invalid token")).(*ValidationError)
	if got := plain.FieldMap(); got != nil {
		t.Errorf("FieldMap() = %v, want nil without field detail", got)
	}
	if plain.Error() != "invalid token" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "invalid token")
	}
}

func TestTranslateValidationErrors(t *testing.T) {
	payload := struct {
		Question string `json:"question" validate:"required"`
	}{}

	err := Validate.Struct(&payload)
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("Validate.Struct() error = %v, want validator.ValidationErrors", err)
	}

	want := map[string]string{"question": "this field is required"}
	if got := TranslateValidationErrors(vErrs); !reflect.DeepEqual(got, want) {
		t.Errorf("TranslateValidationErrors() = %v, want %v", got, want)
	}
}
