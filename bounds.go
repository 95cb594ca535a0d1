package cartesian

import (
	"math"
	"sort"
)

// Bounds accumulates the extent of the values of one dimension. The zero
// value is not empty: use NewBounds.
type Bounds struct {
	Min      float64
	Max      float64
	MinDelta float64
}

func NewBounds() Bounds {
	return Bounds{
		Min:      math.Inf(1),
		Max:      math.Inf(-1),
		MinDelta: math.Inf(1),
	}
}

func (b Bounds) IsEmpty() bool {
	return b.Min > b.Max
}

func (b Bounds) Delta() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max - b.Min
}

// Gap returns the smallest gap recorded between two consecutive values, 1
// when none was recorded.
func (b Bounds) Gap() float64 {
	if math.IsInf(b.MinDelta, 1) || b.MinDelta <= 0 {
		return 1
	}
	return b.MinDelta
}

func (b Bounds) Contains(v float64) bool {
	return !b.IsEmpty() && v >= b.Min && v <= b.Max
}

func (b *Bounds) AppendValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	if v < b.Min {
		b.Min = v
	}
	if v > b.Max {
		b.Max = v
	}
}

func (b *Bounds) AppendDelta(d float64) {
	if math.IsNaN(d) || d <= 0 {
		return
	}
	if d < b.MinDelta {
		b.MinDelta = d
	}
}

func (b *Bounds) AppendBounds(other Bounds) {
	if !other.IsEmpty() {
		b.AppendValue(other.Min)
		b.AppendValue(other.Max)
	}
	b.AppendDelta(other.MinDelta)
}

// Expand widens both ends by the given amount.
func (b *Bounds) Expand(by float64) {
	if b.IsEmpty() || by <= 0 {
		return
	}
	b.Min -= by
	b.Max += by
}

// DimensionalBounds holds the bounds of the three dimensions of a series.
// Primary is the value dimension, Secondary the category dimension and
// Tertiary the weight of a point.
type DimensionalBounds struct {
	Primary   Bounds
	Secondary Bounds
	Tertiary  Bounds
}

func NewDimensionalBounds() DimensionalBounds {
	return DimensionalBounds{
		Primary:   NewBounds(),
		Secondary: NewBounds(),
		Tertiary:  NewBounds(),
	}
}

func (d DimensionalBounds) IsEmpty() bool {
	return d.Primary.IsEmpty() || d.Secondary.IsEmpty()
}

func (d *DimensionalBounds) Append(c Coordinate) {
	if c.IsEmpty() {
		return
	}
	d.Primary.AppendValue(c.Primary)
	d.Secondary.AppendValue(c.Secondary)
	d.Tertiary.AppendValue(c.Tertiary)
}

// secondaryGaps records in b the smallest gap between distinct secondary
// values of the given points. Points are sorted first so the result does
// not depend on the order of the data.
func secondaryGaps(b *Bounds, points []ChartPoint) {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if p.IsEmpty() {
			continue
		}
		values = append(values, p.Secondary)
	}
	sort.Float64s(values)
	for i := 1; i < len(values); i++ {
		b.AppendDelta(values[i] - values[i-1])
	}
}
