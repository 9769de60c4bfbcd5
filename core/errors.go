package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError attaches an error text to a single input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries input errors for an API request, either as a plain
// error or broken down per field.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// FieldMap flattens the field errors into the field -> text shape the API
// returns on 400s. It returns nil when the error carries no field detail.
func (err ValidationError) FieldMap() map[string]string {
	if len(err.Fields) == 0 {
		return nil
	}
	fldErrs := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		fldErrs[fErr.Field] = fErr.Error
	}
	return fldErrs
}

// TranslateValidationErrors flattens validator errors into the same
// field -> text map as ValidationError.FieldMap, using the shared Translator.
func TranslateValidationErrors(vErrs validator.ValidationErrors) map[string]string {
	fldErrs := make(map[string]string, len(vErrs))
	for _, vErr := range vErrs {
		fldErrs[vErr.Field()] = vErr.Translate(Translator)
	}
	return fldErrs
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
