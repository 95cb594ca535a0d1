package cartesian

import (
	"errors"
	"fmt"
)

var (
	ErrNoInitializer = errors.New("no style initializer registered")
	ErrAxisIndex     = errors.New("axis index out of range")
	ErrEmptyChart    = errors.New("chart has no visible series")
	ErrUnknownSeries = errors.New("series not attached to chart")
	ErrAttached      = errors.New("series already attached to a chart")
	ErrNoMapper      = errors.New("no mapper for values")
)

// AxisError reports a series scaled by an axis the chart does not have.
type AxisError struct {
	Series string
	Axis   string
	Index  int
}

func (e AxisError) Error() string {
	return fmt.Sprintf("series %q: %s axis %d does not exist", e.Series, e.Axis, e.Index)
}

func (e AxisError) Unwrap() error {
	return ErrAxisIndex
}

// MapperError reports values whose type has no default mapper.
type MapperError struct {
	Series string
	Type   string
}

func (e MapperError) Error() string {
	return fmt.Sprintf("series %q: no mapper for values of type %s", e.Series, e.Type)
}

func (e MapperError) Unwrap() error {
	return ErrNoMapper
}
