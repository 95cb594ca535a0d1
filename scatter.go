package cartesian

// ScatterSeries draws a marker on each point. When MinGeometrySize is set,
// the size of a marker goes from MinGeometrySize to GeometrySize with the
// weight of its point.
type ScatterSeries[T any] struct {
	StrokeAndFillSeries[T]

	GeometrySize    float64
	MinGeometrySize float64
	Marker          MarkerFunc
}

func NewScatterSeries[T any](title string, values ...T) *ScatterSeries[T] {
	s := &ScatterSeries[T]{}
	s.Title = title
	s.Values = values
	return s
}

func (s *ScatterSeries[T]) Kind() SeriesKind {
	return KindScatter
}

func (s *ScatterSeries[T]) Bounds(_ *Chart, _, _ *Axis) DimensionalBounds {
	return s.baseBounds()
}

func (s *ScatterSeries[T]) Paints() []*Paint {
	return s.basePaints()
}

func (s *ScatterSeries[T]) SoftDelete(c *Chart) {
	s.softDelete(c, s.Paints())
}

func (s *ScatterSeries[T]) size(p ChartPoint) float64 {
	size := s.GeometrySize
	if size <= 0 {
		size = DefaultSize * 2
	}
	weights := s.bounds.Tertiary
	if s.MinGeometrySize <= 0 || s.MinGeometrySize >= size || weights.Delta() == 0 {
		return size
	}
	ratio := (p.Tertiary - weights.Min) / weights.Delta()
	return s.MinGeometrySize + ratio*(size-s.MinGeometrySize)
}

func (s *ScatterSeries[T]) Measure(c *Chart) error {
	secondary, primary, err := c.axesOf(s)
	if err != nil {
		return err
	}
	var (
		xs     = secondary.Scaler()
		ys     = primary.Scaler()
		seen   = make(map[int]bool)
		marker = s.Marker
	)
	if marker == nil {
		marker = GetCircle
	}
	setZ(s.Z, s.fill, 3)
	setZ(s.Z, s.stroke, 4)
	for _, p := range s.points {
		if p.IsEmpty() {
			continue
		}
		var (
			x    = xs.ToPixels(p.Secondary)
			y    = ys.ToPixels(p.Primary)
			size = s.size(p)
			g    = s.geometryAt(p.Index, func() Geometry {
				return marker(x, y, size)
			})
		)
		if !moveMarker(g, x, y, size) {
			g = marker(x, y, size)
			s.replaceGeometry(p.Index, g, s.basePaints()...)
		}
		seen[p.Index] = true
		for _, pt := range s.basePaints() {
			pt.AddGeometry(g)
		}
	}
	for _, pt := range s.basePaints() {
		c.Canvas.addPaint(pt)
	}
	s.prune(seen, s.basePaints()...)
	return nil
}
