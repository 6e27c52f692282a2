package mapping

import "errors"

var (
	ErrNotMappable        = errors.New("type is not mappable")
	ErrMapInstantiation   = errors.New("cannot instantiate map")
	ErrNotAssignable      = errors.New("value is not assignable")
	ErrDuplicateConverter = errors.New("attribute converter already registered")
)
