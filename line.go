package cartesian

import (
	"fmt"
)

// LineSeries draws its values as a line. Setting a fill paint turns it in
// an area series, a positive LineSmoothness in a curve.
type LineSeries[T any] struct {
	StrokeAndFillSeries[T]

	LineSmoothness float64
	Stepped        bool

	GeometrySize   float64
	GeometryFill   *Paint
	GeometryStroke *Paint
	Marker         MarkerFunc

	strokePath *PathGeometry
	fillPath   *PathGeometry
}

func NewLineSeries[T any](title string, values ...T) *LineSeries[T] {
	s := &LineSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func NewStepLineSeries[T any](title string, values ...T) *LineSeries[T] {
	s := NewLineSeries(title, values...)
	s.Stepped = true
	return s
}

func (s *LineSeries[T]) Kind() SeriesKind {
	if s.Stepped {
		return KindStepLine
	}
	return KindLine
}

func (s *LineSeries[T]) interpolation() Interpolation {
	switch {
	case s.Stepped:
		return StepAfter
	case s.LineSmoothness > 0:
		return Cubic
	default:
		return Linear
	}
}

func (s *LineSeries[T]) Bounds(_ *Chart, _, _ *Axis) DimensionalBounds {
	return s.baseBounds()
}

func (s *LineSeries[T]) Measure(c *Chart) error {
	secondary, primary, err := c.axesOf(s)
	if err != nil {
		return err
	}
	pivot := primary.VisibleBounds()
	base := clamp(0, pivot.Min, pivot.Max)
	s.measureLine(c, secondary.Scaler(), primary.Scaler(), s.interpolation(), func(p ChartPoint) (float64, float64) {
		return p.Primary, base
	})
	return nil
}

func (s *LineSeries[T]) Paints() []*Paint {
	list := s.basePaints()
	if s.GeometryFill != nil {
		list = append(list, s.GeometryFill)
	}
	if s.GeometryStroke != nil {
		list = append(list, s.GeometryStroke)
	}
	return list
}

func (s *LineSeries[T]) SoftDelete(c *Chart) {
	if s.stroke != nil && s.strokePath != nil {
		s.stroke.RemoveGeometry(s.strokePath)
	}
	if s.fill != nil && s.fillPath != nil {
		s.fill.RemoveGeometry(s.fillPath)
	}
	s.softDelete(c, s.Paints())
	s.strokePath = nil
	s.fillPath = nil
}

// measureLine draws the stroke through the tops of the points and fills
// the area between tops and bottoms. span gives the top and bottom chart
// values of a point.
func (s *LineSeries[T]) measureLine(c *Chart, xs, ys Scaler, interp Interpolation, span func(ChartPoint) (float64, float64)) {
	var (
		runs  = splitGaps(s.points)
		tops  = make([][]Point, len(runs))
		downs = make([][]Point, len(runs))
	)
	for i, r := range runs {
		for _, p := range r {
			top, bottom := span(p)
			x := xs.ToPixels(p.Secondary)
			tops[i] = append(tops[i], NumberPoint(x, ys.ToPixels(top)))
			downs[i] = append(downs[i], NumberPoint(x, ys.ToPixels(bottom)))
		}
	}

	if s.fill != nil {
		if s.fillPath == nil {
			s.fillPath = &PathGeometry{}
		}
		s.fillPath.Reset()
		for i := range tops {
			traceArea(s.fillPath, tops[i], downs[i], interp, s.LineSmoothness)
		}
		setZ(s.Z, s.fill, 1)
		s.fill.AddGeometry(s.fillPath)
		c.Canvas.addPaint(s.fill)
	}
	if s.stroke != nil {
		if s.strokePath == nil {
			s.strokePath = &PathGeometry{}
		}
		s.strokePath.Reset()
		for i := range tops {
			trace(s.strokePath, tops[i], interp, s.LineSmoothness, true, false)
		}
		setZ(s.Z, s.stroke, 2)
		s.stroke.AddGeometry(s.strokePath)
		c.Canvas.addPaint(s.stroke)
	}
	s.measureMarkers(c, tops, runs)
}

func (s *LineSeries[T]) measureMarkers(c *Chart, tops [][]Point, runs [][]ChartPoint) {
	seen := make(map[int]bool)
	if s.GeometrySize > 0 && (s.GeometryFill != nil || s.GeometryStroke != nil) {
		marker := s.Marker
		if marker == nil {
			marker = GetCircle
		}
		for i, r := range runs {
			for j, p := range r {
				var (
					pos = tops[i][j]
					g   = s.geometryAt(p.Index, func() Geometry {
						return marker(pos.X, pos.Y, s.GeometrySize)
					})
				)
				if !moveMarker(g, pos.X, pos.Y, s.GeometrySize) {
					fresh := marker(pos.X, pos.Y, s.GeometrySize)
					s.replaceGeometry(p.Index, fresh, s.GeometryFill, s.GeometryStroke)
					g = fresh
				}
				seen[p.Index] = true
				for _, gp := range []*Paint{s.GeometryFill, s.GeometryStroke} {
					if gp == nil {
						continue
					}
					setZ(s.Z, gp, 3)
					gp.AddGeometry(g)
					c.Canvas.addPaint(gp)
				}
			}
		}
	}
	s.prune(seen, s.GeometryFill, s.GeometryStroke)
}

// StackedAreaSeries piles its values on the previous series of the same
// stack group and fills the area between both.
type StackedAreaSeries[T any] struct {
	LineSeries[T]

	Group int
	Mode  StackMode

	stack StackPosition
}

func NewStackedAreaSeries[T any](title string, values ...T) *StackedAreaSeries[T] {
	s := &StackedAreaSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func (s *StackedAreaSeries[T]) Kind() SeriesKind {
	return KindStackedArea
}

func (s *StackedAreaSeries[T]) StackGroup() int {
	return s.Group
}

func (s *StackedAreaSeries[T]) Bounds(c *Chart, _, _ *Axis) DimensionalBounds {
	b, pos := stackedBounds(c, s.Kind(), s.Group, s.Mode, s.ID(), s.fetch())
	s.pad(&b)
	s.stack = pos
	s.bounds = b
	return b
}

func (s *StackedAreaSeries[T]) Measure(c *Chart) error {
	return measureStackedArea(c, s, &s.LineSeries, s.stack, s.interpolation())
}

// StackedStepAreaSeries is a StackedAreaSeries drawn with steps.
type StackedStepAreaSeries[T any] struct {
	StackedAreaSeries[T]
}

func NewStackedStepAreaSeries[T any](title string, values ...T) *StackedStepAreaSeries[T] {
	s := &StackedStepAreaSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func (s *StackedStepAreaSeries[T]) Kind() SeriesKind {
	return KindStackedStepArea
}

func (s *StackedStepAreaSeries[T]) Bounds(c *Chart, _, _ *Axis) DimensionalBounds {
	b, pos := stackedBounds(c, s.Kind(), s.Group, s.Mode, s.ID(), s.fetch())
	s.pad(&b)
	s.stack = pos
	s.bounds = b
	return b
}

func (s *StackedStepAreaSeries[T]) Measure(c *Chart) error {
	return measureStackedArea(c, s, &s.LineSeries, s.stack, StepAfter)
}

func measureStackedArea[T any](c *Chart, self Series, line *LineSeries[T], pos StackPosition, interp Interpolation) error {
	secondary, primary, err := c.axesOf(self)
	if err != nil {
		return err
	}
	if pos.stacker == nil {
		return fmt.Errorf("series %q: measured before its bounds", self.Name())
	}
	line.measureLine(c, secondary.Scaler(), primary.Scaler(), interp, func(p ChartPoint) (float64, float64) {
		sv, _ := pos.Get(p)
		return sv.End, sv.Start
	})
	return nil
}

// stackedBounds pushes the points of a series on its stack and returns the
// bounds of the stacked values. A series already pushed during the current
// measure pass is not pushed twice.
func stackedBounds(c *Chart, kind SeriesKind, group int, mode StackMode, id int, pts []ChartPoint) (DimensionalBounds, StackPosition) {
	var (
		stacker    = c.Stacks().GetStacker(kind, group, mode)
		pos, fresh = stacker.Register(id)
		b          = NewDimensionalBounds()
	)
	for _, p := range pts {
		if p.IsEmpty() {
			continue
		}
		var sv StackedValue
		if fresh {
			sv = pos.StackPoint(p)
		} else {
			sv, _ = pos.Get(p)
		}
		if mode == StackExpand {
			if sv.End < 0 || sv.Start < 0 {
				b.Primary.AppendValue(-1)
			} else {
				b.Primary.AppendValue(1)
			}
			b.Primary.AppendValue(0)
		} else {
			b.Primary.AppendValue(sv.Start)
			b.Primary.AppendValue(sv.End)
		}
		b.Secondary.AppendValue(p.Secondary)
		b.Tertiary.AppendValue(p.Tertiary)
	}
	secondaryGaps(&b.Secondary, pts)
	return b, pos
}

func (s *LineSeries[T]) setMarkers(color string, size float64) {
	if s.GeometrySize <= 0 {
		s.GeometrySize = size
	}
	if s.GeometryStroke == nil {
		s.GeometryStroke = SolidStroke(color, 2)
	}
	if s.GeometryFill == nil {
		s.GeometryFill = SolidFill("white")
	}
}
