package cartesian

import (
	"fmt"
	"slices"
	"strings"
)

type SeriesKind int

const (
	KindLine SeriesKind = iota
	KindStepLine
	KindScatter
	KindColumn
	KindRow
	KindStackedColumn
	KindStackedRow
	KindStackedArea
	KindStackedStepArea
)

var kindNames = map[SeriesKind]string{
	KindLine:            "line",
	KindStepLine:        "step-line",
	KindScatter:         "scatter",
	KindColumn:          "column",
	KindRow:             "row",
	KindStackedColumn:   "stacked-column",
	KindStackedRow:      "stacked-row",
	KindStackedArea:     "stacked-area",
	KindStackedStepArea: "stacked-step-area",
}

func ParseKind(str string) (SeriesKind, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	for k, n := range kindNames {
		if n == str {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown series kind", str)
}

func (k SeriesKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

func (k SeriesKind) IsStacked() bool {
	switch k {
	case KindStackedColumn, KindStackedRow, KindStackedArea, KindStackedStepArea:
		return true
	default:
		return false
	}
}

func (k SeriesKind) IsBar() bool {
	switch k {
	case KindColumn, KindRow, KindStackedColumn, KindStackedRow:
		return true
	default:
		return false
	}
}

// IsHorizontal reports whether the values of the series are read on the X
// axis and its categories on the Y axis.
func (k SeriesKind) IsHorizontal() bool {
	return k == KindRow || k == KindStackedRow
}

// Series is a set of values drawn in a cartesian chart.
type Series interface {
	ID() int
	Name() string
	Kind() SeriesKind
	IsVisible() bool
	ZIndex() int
	ScalesXAt() int
	ScalesYAt() int
	// StackGroup partitions stacked series of the same kind in
	// independent stacks.
	StackGroup() int

	// Bounds maps the values of the series and returns their extent.
	// secondary and primary are the axes of the categories and of the
	// values of the series.
	Bounds(c *Chart, secondary, primary *Axis) DimensionalBounds
	// Measure updates the geometries of the series from the scalers of
	// its axes. It expects Bounds to have been called in the same pass.
	Measure(*Chart) error

	Points() []ChartPoint
	Paints() []*Paint
	PaintContext() PaintContext
	SoftDelete(*Chart)

	attach(*Chart, int, SeriesKind) error
	detach()
}

// CartesianSeries holds what every series has in common: its values, how
// they are mapped and the axes they are scaled by.
type CartesianSeries[T any] struct {
	Title   string
	Values  []T
	Mapping Mapper[T]
	Hidden  bool
	XAxis   int
	YAxis   int
	Z       int
	// DataPadding widens the bounds of the series: X is a share of the
	// smallest gap between secondary values, Y is in chart units.
	DataPadding Point

	id      int
	kind    SeriesKind
	canvas  *Canvas
	points  []ChartPoint
	bounds  DimensionalBounds
	visuals map[int]Geometry
	labels  map[int]*LabelGeometry
}

func (s *CartesianSeries[T]) ID() int {
	return s.id
}

func (s *CartesianSeries[T]) Name() string {
	return s.Title
}

func (s *CartesianSeries[T]) IsVisible() bool {
	return !s.Hidden
}

func (s *CartesianSeries[T]) ZIndex() int {
	return s.Z
}

func (s *CartesianSeries[T]) ScalesXAt() int {
	return s.XAxis
}

func (s *CartesianSeries[T]) ScalesYAt() int {
	return s.YAxis
}

func (s *CartesianSeries[T]) StackGroup() int {
	return 0
}

func (s *CartesianSeries[T]) Points() []ChartPoint {
	return slices.Clone(s.points)
}

func (s *CartesianSeries[T]) attach(c *Chart, id int, kind SeriesKind) error {
	if s.canvas != nil {
		return fmt.Errorf("%s: %w", s.Title, ErrAttached)
	}
	if s.Mapping == nil {
		m, ok := defaultMapper[T]()
		if !ok {
			return MapperError{Series: s.Title, Type: typeName[T]()}
		}
		s.Mapping = m
	}
	s.id = id
	s.kind = kind
	s.canvas = c.Canvas
	return nil
}

func (s *CartesianSeries[T]) detach() {
	s.canvas = nil
	s.id = 0
}

func (s *CartesianSeries[T]) fetch() []ChartPoint {
	if s.Mapping == nil {
		s.points = s.points[:0]
		return s.points
	}
	pts := make([]ChartPoint, 0, len(s.Values))
	for i, v := range s.Values {
		pts = append(pts, ChartPoint{
			Coordinate: s.Mapping(v, i),
			Index:      i,
			Context:    v,
		})
	}
	s.points = pts
	return pts
}

func (s *CartesianSeries[T]) baseBounds() DimensionalBounds {
	var (
		pts = s.fetch()
		b   = NewDimensionalBounds()
	)
	for _, p := range pts {
		b.Append(p.Coordinate)
	}
	secondaryGaps(&b.Secondary, pts)
	s.pad(&b)
	s.bounds = b
	return b
}

func (s *CartesianSeries[T]) pad(b *DimensionalBounds) {
	b.Secondary.Expand(s.DataPadding.X * b.Secondary.Gap())
	b.Primary.Expand(s.DataPadding.Y)
}

// geometryAt returns the geometry kept for the point at index. create is
// only called when the point has none yet.
func (s *CartesianSeries[T]) geometryAt(index int, create func() Geometry) Geometry {
	if s.visuals == nil {
		s.visuals = make(map[int]Geometry)
	}
	g, ok := s.visuals[index]
	if !ok {
		g = create()
		s.visuals[index] = g
	}
	return g
}

func (s *CartesianSeries[T]) replaceGeometry(index int, g Geometry, paints ...*Paint) {
	if old, ok := s.visuals[index]; ok {
		for _, p := range paints {
			if p != nil {
				p.RemoveGeometry(old)
			}
		}
	}
	s.visuals[index] = g
}

func (s *CartesianSeries[T]) labelAt(index int) *LabelGeometry {
	if s.labels == nil {
		s.labels = make(map[int]*LabelGeometry)
	}
	g, ok := s.labels[index]
	if !ok {
		g = &LabelGeometry{}
		s.labels[index] = g
	}
	return g
}

// prune removes from paints the geometries of the points that were not
// seen during the last measure.
func (s *CartesianSeries[T]) prune(seen map[int]bool, paints ...*Paint) {
	for i, g := range s.visuals {
		if seen[i] {
			continue
		}
		for _, p := range paints {
			if p != nil {
				p.RemoveGeometry(g)
			}
		}
		delete(s.visuals, i)
	}
}

func (s *CartesianSeries[T]) pruneLabels(seen map[int]bool, p *Paint) {
	for i, g := range s.labels {
		if seen[i] && p != nil {
			continue
		}
		if p != nil {
			p.RemoveGeometry(g)
		}
		delete(s.labels, i)
	}
}

func (s *CartesianSeries[T]) softDelete(c *Chart, paints []*Paint) {
	for _, p := range paints {
		if p == nil {
			continue
		}
		for _, g := range s.visuals {
			p.RemoveGeometry(g)
		}
		for _, g := range s.labels {
			p.RemoveGeometry(g)
		}
		c.Canvas.RemovePaint(p)
	}
	s.visuals = nil
	s.labels = nil
	s.points = nil
}

// PaintContext holds the paints describing a series in a legend.
type PaintContext struct {
	Stroke *Paint
	Fill   *Paint
	Size   float64
}

func (p PaintContext) IsEmpty() bool {
	return p.Stroke == nil && p.Fill == nil
}

func (p PaintContext) Paints() []*Paint {
	var list []*Paint
	if p.Fill != nil {
		list = append(list, p.Fill)
	}
	if p.Stroke != nil {
		list = append(list, p.Stroke)
	}
	return list
}

const miniatureSize = 12.0

// StrokeAndFillSeries is a series drawn with a stroke and a fill paint.
type StrokeAndFillSeries[T any] struct {
	CartesianSeries[T]

	stroke  *Paint
	fill    *Paint
	context PaintContext
}

func (s *StrokeAndFillSeries[T]) Stroke() *Paint {
	return s.stroke
}

func (s *StrokeAndFillSeries[T]) Fill() *Paint {
	return s.fill
}

// SetStroke replaces the stroke of the series. When the series is already
// drawn by a chart, the old paint leaves the canvas and its geometries are
// handed over to p.
func (s *StrokeAndFillSeries[T]) SetStroke(p *Paint) {
	old := s.stroke
	s.stroke = p
	s.swapPaint(old, p)
	s.OnPaintContextChanged()
}

// SetFill works as SetStroke for the fill of the series.
func (s *StrokeAndFillSeries[T]) SetFill(p *Paint) {
	old := s.fill
	s.fill = p
	s.swapPaint(old, p)
	s.OnPaintContextChanged()
}

func (s *StrokeAndFillSeries[T]) swapPaint(old, p *Paint) {
	if s.canvas == nil || old == p {
		return
	}
	s.canvas.ReplacePaint(old, p)
}

func (s *StrokeAndFillSeries[T]) PaintContext() PaintContext {
	return s.context
}

// OnPaintContextChanged rebuilds the miniature of the series used by
// legends from its current paints.
func (s *StrokeAndFillSeries[T]) OnPaintContextChanged() {
	var ctx PaintContext
	ctx.Size = miniatureSize
	if s.fill != nil {
		ctx.Fill = s.fill.CloneTask()
		ctx.Fill.AddGeometry(s.miniature(true))
	}
	if s.stroke != nil {
		ctx.Stroke = s.stroke.CloneTask()
		ctx.Stroke.AddGeometry(s.miniature(false))
	}
	s.context = ctx
}

func (s *StrokeAndFillSeries[T]) attach(c *Chart, id int, kind SeriesKind) error {
	if err := s.CartesianSeries.attach(c, id, kind); err != nil {
		return err
	}
	s.OnPaintContextChanged()
	return nil
}

func (s *StrokeAndFillSeries[T]) miniature(fill bool) Geometry {
	const size = miniatureSize
	switch s.kind {
	case KindLine, KindStepLine:
		if fill {
			return &RectGeometry{Width: size, Height: size}
		}
		var pat PathGeometry
		pat.MoveTo(0, size/2)
		pat.LineTo(size, size/2)
		return &pat
	case KindScatter:
		return GetCircle(size/2, size/2, size)
	default:
		return &RectGeometry{Width: size, Height: size}
	}
}

func (s *StrokeAndFillSeries[T]) basePaints() []*Paint {
	var list []*Paint
	if s.fill != nil {
		list = append(list, s.fill)
	}
	if s.stroke != nil {
		list = append(list, s.stroke)
	}
	return list
}

// setZ orders the paints of a series: fills below strokes below markers.
func setZ(z int, p *Paint, offset int) {
	if p != nil {
		p.ZIndex = z*10 + offset
	}
}
