package cartesian

import (
	"math"
	"time"
)

// Coordinate is the position of a value in chart space. A NaN primary
// value marks a gap.
type Coordinate struct {
	Secondary float64
	Primary   float64
	Tertiary  float64
}

func NewCoordinate(secondary, primary float64) Coordinate {
	return Coordinate{
		Secondary: secondary,
		Primary:   primary,
	}
}

func EmptyCoordinate() Coordinate {
	return Coordinate{
		Secondary: math.NaN(),
		Primary:   math.NaN(),
	}
}

func (c Coordinate) IsEmpty() bool {
	return math.IsNaN(c.Primary) || math.IsNaN(c.Secondary)
}

// ChartPoint is a mapped value of a series. Context holds the value the
// point was mapped from.
type ChartPoint struct {
	Coordinate
	Index   int
	Context any
}

type Point struct {
	X float64
	Y float64
}

func NumberPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

type WeightedPoint struct {
	X      float64
	Y      float64
	Weight float64
}

func NewWeightedPoint(x, y, w float64) WeightedPoint {
	return WeightedPoint{
		X:      x,
		Y:      y,
		Weight: w,
	}
}

type DateTimePoint struct {
	Time  time.Time
	Value float64
}

func TimePoint(t time.Time, y float64) DateTimePoint {
	return DateTimePoint{
		Time:  t,
		Value: y,
	}
}
