package cartesian

import (
	"math"
	"strconv"
)

const defaultBarWidth = 0.8

// BarSeries is the base of column and row series. Width is the share of
// the space between two categories taken by the bars drawn at a category.
type BarSeries[T any] struct {
	StrokeAndFillSeries[T]

	Width       float64
	MaxBarWidth float64
	Pivot       float64

	DataLabelsPaint     *Paint
	DataLabelsSize      float64
	DataLabelsFormatter func(ChartPoint) string
}

func (s *BarSeries[T]) Paints() []*Paint {
	list := s.basePaints()
	if s.DataLabelsPaint != nil {
		list = append(list, s.DataLabelsPaint)
	}
	return list
}

func (s *BarSeries[T]) SoftDelete(c *Chart) {
	s.softDelete(c, s.Paints())
}

func (s *BarSeries[T]) barBounds() DimensionalBounds {
	b := s.baseBounds()
	if !b.Primary.IsEmpty() {
		b.Primary.AppendValue(s.Pivot)
	}
	b.Secondary.Expand(b.Secondary.Gap() / 2)
	s.bounds = b
	return b
}

func (s *BarSeries[T]) width() float64 {
	if s.Width <= 0 || s.Width > 1 {
		return defaultBarWidth
	}
	return s.Width
}

func (s *BarSeries[T]) formatLabel(p ChartPoint) string {
	if s.DataLabelsFormatter != nil {
		return s.DataLabelsFormatter(p)
	}
	return strconv.FormatFloat(p.Primary, 'f', -1, 64)
}

// measureBars lays out one rectangle per point. span gives the start and
// end chart values of a bar.
func (s *BarSeries[T]) measureBars(c *Chart, self Series, span func(ChartPoint) (float64, float64)) error {
	secondary, primary, err := c.axesOf(self)
	if err != nil {
		return err
	}
	var (
		horizontal = self.Kind().IsHorizontal()
		xs         = secondary.Scaler()
		ys         = primary.Scaler()
		band       = xs.MeasureInPixels(secondary.DataBounds().Gap())
		width      = band * s.width()
		slot       = c.barSlot(self)
		seen       = make(map[int]bool)
		labels     = make(map[int]bool)
	)
	if s.MaxBarWidth > 0 && width > s.MaxBarWidth {
		width = s.MaxBarWidth
	}
	var (
		each   = width / float64(slot.count)
		offset = -width/2 + float64(slot.index)*each
	)
	setZ(s.Z, s.fill, 1)
	setZ(s.Z, s.stroke, 2)
	setZ(s.Z, s.DataLabelsPaint, 4)

	for _, p := range s.points {
		if p.IsEmpty() {
			continue
		}
		var (
			start, end = span(p)
			a          = ys.ToPixels(start)
			b          = ys.ToPixels(end)
			center     = xs.ToPixels(p.Secondary)
			rect       = s.geometryAt(p.Index, func() Geometry {
				return &RectGeometry{}
			}).(*RectGeometry)
		)
		if horizontal {
			rect.X = math.Min(a, b)
			rect.Y = center + offset
			rect.Width = math.Abs(a - b)
			rect.Height = each
		} else {
			rect.X = center + offset
			rect.Y = math.Min(a, b)
			rect.Width = each
			rect.Height = math.Abs(a - b)
		}
		seen[p.Index] = true
		for _, pt := range s.basePaints() {
			pt.AddGeometry(rect)
		}
		if s.DataLabelsPaint != nil {
			s.placeLabel(p, rect, horizontal, end < start)
			labels[p.Index] = true
			s.DataLabelsPaint.AddGeometry(s.labels[p.Index])
		}
	}
	for _, pt := range s.Paints() {
		c.Canvas.addPaint(pt)
	}
	s.prune(seen, s.fill, s.stroke)
	s.pruneLabels(labels, s.DataLabelsPaint)
	return nil
}

func (s *BarSeries[T]) placeLabel(p ChartPoint, rect *RectGeometry, horizontal, negative bool) {
	size := s.DataLabelsSize
	if size <= 0 {
		size = FontSize
	}
	lb := s.labelAt(p.Index)
	lb.Text = s.formatLabel(p)
	lb.Size = size
	if horizontal {
		lb.Y = rect.Y + rect.Height/2
		lb.Baseline = BaselineMiddle
		if negative {
			lb.X = rect.X - size*0.4
			lb.Anchor = AnchorEnd
		} else {
			lb.X = rect.X + rect.Width + size*0.4
			lb.Anchor = AnchorStart
		}
		return
	}
	lb.X = rect.X + rect.Width/2
	lb.Anchor = AnchorMiddle
	if negative {
		lb.Y = rect.Y + rect.Height + size*0.4
		lb.Baseline = BaselineHanging
	} else {
		lb.Y = rect.Y - size*0.4
		lb.Baseline = BaselineAuto
	}
}

// ColumnSeries draws vertical bars from Pivot to each value.
type ColumnSeries[T any] struct {
	BarSeries[T]
}

func NewColumnSeries[T any](title string, values ...T) *ColumnSeries[T] {
	s := &ColumnSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func (s *ColumnSeries[T]) Kind() SeriesKind {
	return KindColumn
}

func (s *ColumnSeries[T]) Bounds(_ *Chart, _, _ *Axis) DimensionalBounds {
	return s.barBounds()
}

func (s *ColumnSeries[T]) Measure(c *Chart) error {
	return s.measureBars(c, s, func(p ChartPoint) (float64, float64) {
		return s.Pivot, p.Primary
	})
}

// RowSeries draws horizontal bars: its values are read on the X axis.
type RowSeries[T any] struct {
	BarSeries[T]
}

func NewRowSeries[T any](title string, values ...T) *RowSeries[T] {
	s := &RowSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func (s *RowSeries[T]) Kind() SeriesKind {
	return KindRow
}

func (s *RowSeries[T]) Bounds(_ *Chart, _, _ *Axis) DimensionalBounds {
	return s.barBounds()
}

func (s *RowSeries[T]) Measure(c *Chart) error {
	return s.measureBars(c, s, func(p ChartPoint) (float64, float64) {
		return s.Pivot, p.Primary
	})
}

// StackedColumnSeries piles its columns on the ones of the previous series
// of the same stack group.
type StackedColumnSeries[T any] struct {
	BarSeries[T]

	Group int
	Mode  StackMode

	stack StackPosition
}

func NewStackedColumnSeries[T any](title string, values ...T) *StackedColumnSeries[T] {
	s := &StackedColumnSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func (s *StackedColumnSeries[T]) Kind() SeriesKind {
	return KindStackedColumn
}

func (s *StackedColumnSeries[T]) StackGroup() int {
	return s.Group
}

func (s *StackedColumnSeries[T]) Bounds(c *Chart, _, _ *Axis) DimensionalBounds {
	b, pos := stackedBounds(c, s.Kind(), s.Group, s.Mode, s.ID(), s.fetch())
	b.Secondary.Expand(b.Secondary.Gap() / 2)
	s.pad(&b)
	s.stack = pos
	s.bounds = b
	return b
}

func (s *StackedColumnSeries[T]) Measure(c *Chart) error {
	return s.measureBars(c, s, stackedSpan(s.stack))
}

// StackedRowSeries is the horizontal version of StackedColumnSeries.
type StackedRowSeries[T any] struct {
	BarSeries[T]

	Group int
	Mode  StackMode

	stack StackPosition
}

func NewStackedRowSeries[T any](title string, values ...T) *StackedRowSeries[T] {
	s := &StackedRowSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func (s *StackedRowSeries[T]) Kind() SeriesKind {
	return KindStackedRow
}

func (s *StackedRowSeries[T]) StackGroup() int {
	return s.Group
}

func (s *StackedRowSeries[T]) Bounds(c *Chart, _, _ *Axis) DimensionalBounds {
	b, pos := stackedBounds(c, s.Kind(), s.Group, s.Mode, s.ID(), s.fetch())
	b.Secondary.Expand(b.Secondary.Gap() / 2)
	s.pad(&b)
	s.stack = pos
	s.bounds = b
	return b
}

func (s *StackedRowSeries[T]) Measure(c *Chart) error {
	return s.measureBars(c, s, stackedSpan(s.stack))
}

func stackedSpan(pos StackPosition) func(ChartPoint) (float64, float64) {
	return func(p ChartPoint) (float64, float64) {
		if pos.stacker == nil {
			return 0, 0
		}
		sv, _ := pos.Get(p)
		return sv.Start, sv.End
	}
}
