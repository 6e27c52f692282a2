package convert

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredNode       = errors.New("required node is missing")
	ErrAttributeConverter        = errors.New("attribute converter failed")
	ErrUnknownAttributeConverter = errors.New("attribute converter is not registered")
	ErrNotAnEntity               = errors.New("value is not a mapped entity")
)

// FieldError reports which field of which entity failed to convert.
type FieldError struct {
	Entity    string
	Field     string
	Converter ConverterEnum
	Err       error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s (%s): %v", e.Entity, e.Field, e.Converter, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
