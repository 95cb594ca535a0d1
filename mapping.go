package cartesian

import (
	"fmt"
	"time"
)

// Mapper converts the value at the given index of a series into a
// coordinate.
type Mapper[T any] func(T, int) Coordinate

func IndexMapper(v float64, i int) Coordinate {
	return NewCoordinate(float64(i), v)
}

func PointMapper(p Point, _ int) Coordinate {
	return NewCoordinate(p.X, p.Y)
}

func WeightedMapper(p WeightedPoint, _ int) Coordinate {
	c := NewCoordinate(p.X, p.Y)
	c.Tertiary = p.Weight
	return c
}

// TimeMapper uses unix milliseconds as secondary value.
func TimeMapper(p DateTimePoint, _ int) Coordinate {
	return NewCoordinate(float64(p.Time.UnixMilli()), p.Value)
}

// FromMillis converts back a secondary value produced by TimeMapper.
func FromMillis(v float64) time.Time {
	return time.UnixMilli(int64(v)).UTC()
}

func defaultMapper[T any]() (Mapper[T], bool) {
	var (
		zero T
		fn   any
	)
	switch any(zero).(type) {
	case float64:
		fn = Mapper[float64](IndexMapper)
	case int:
		fn = Mapper[int](func(v int, i int) Coordinate {
			return NewCoordinate(float64(i), float64(v))
		})
	case Point:
		fn = Mapper[Point](PointMapper)
	case WeightedPoint:
		fn = Mapper[WeightedPoint](WeightedMapper)
	case DateTimePoint:
		fn = Mapper[DateTimePoint](TimeMapper)
	case Coordinate:
		fn = Mapper[Coordinate](func(c Coordinate, _ int) Coordinate {
			return c
		})
	default:
		return nil, false
	}
	m, ok := fn.(Mapper[T])
	return m, ok
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
