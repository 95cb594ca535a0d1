package cartesian

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measure(t *testing.T, c *Chart) {
	t.Helper()
	require.NoError(t, c.Measure(context.Background()))
}

func rects(t *testing.T, p *Paint) []*RectGeometry {
	t.Helper()
	var list []*RectGeometry
	for _, g := range p.Geometries() {
		r, ok := g.(*RectGeometry)
		require.True(t, ok)
		list = append(list, r)
	}
	return list
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	for k, name := range kindNames {
		got, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.Equal(t, name, k.String())
	}
	_, err := ParseKind("pie")
	assert.Error(t, err)

	assert.True(t, KindStackedStepArea.IsStacked())
	assert.True(t, KindStackedRow.IsHorizontal())
	assert.True(t, KindStackedRow.IsBar())
	assert.False(t, KindLine.IsBar())
}

func TestDefaultMappers(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	floats, ok := defaultMapper[float64]()
	require.True(t, ok)
	assert.Equal(t, NewCoordinate(1, 7), floats(7, 1))

	ints, ok := defaultMapper[int]()
	require.True(t, ok)
	assert.Equal(t, NewCoordinate(2, 3), ints(3, 2))

	points, ok := defaultMapper[Point]()
	require.True(t, ok)
	assert.Equal(t, NewCoordinate(3, 4), points(NumberPoint(3, 4), 9))

	weighted, ok := defaultMapper[WeightedPoint]()
	require.True(t, ok)
	want := Coordinate{Secondary: 1, Primary: 2, Tertiary: 3}
	if diff := cmp.Diff(want, weighted(NewWeightedPoint(1, 2, 3), 0)); diff != "" {
		t.Errorf("coordinate mismatch (-want +got):\n%s", diff)
	}

	times, ok := defaultMapper[DateTimePoint]()
	require.True(t, ok)
	c := times(TimePoint(now, 5), 0)
	assert.Equal(t, 5.0, c.Primary)
	assert.Equal(t, now, FromMillis(c.Secondary))

	_, ok = defaultMapper[string]()
	assert.False(t, ok)
}

func TestSeriesPoints(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewLineSeries("line", Point{X: 2, Y: 1}, Point{X: 4, Y: math.NaN()})
	require.NoError(t, c.AddSeries(s))
	measure(t, c)

	pts := s.Points()
	require.Len(t, pts, 2)
	assert.Equal(t, Point{X: 2, Y: 1}, pts[0].Context)
	assert.True(t, pts[1].IsEmpty())
	assert.Equal(t, 1, pts[1].Index)
}

func TestColumnSeries(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewColumnSeries("col", 1.0, 3.0, 2.0)
	require.NoError(t, c.AddSeries(s))
	measure(t, c)

	b, ok := c.SeriesBounds(s)
	require.True(t, ok)
	assert.Equal(t, 0.0, b.Primary.Min)
	assert.Equal(t, 3.0, b.Primary.Max)
	assert.Equal(t, -0.5, b.Secondary.Min)
	assert.Equal(t, 2.5, b.Secondary.Max)
	assert.Equal(t, 1.0, b.Secondary.Gap())

	bars := rects(t, s.Fill())
	require.Len(t, bars, 3)
	assert.Greater(t, bars[1].Height, bars[2].Height)
	assert.Greater(t, bars[2].Height, bars[0].Height)
	bottom := c.DrawMargin().Bottom()
	for _, r := range bars {
		assert.InDelta(t, bottom, r.Y+r.Height, 1e-9, "bars start at the pivot")
	}
}

func TestColumnSeriesReusesVisuals(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewColumnSeries("col", 1.0, 3.0, 2.0)
	require.NoError(t, c.AddSeries(s))
	measure(t, c)
	before := rects(t, s.Fill())

	s.Values = []float64{2, 2, 2}
	measure(t, c)
	after := rects(t, s.Fill())
	require.Len(t, after, 3)
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
	assert.InDelta(t, after[0].Height, after[1].Height, 1e-9)

	s.Values = []float64{2, math.NaN()}
	measure(t, c)
	pruned := rects(t, s.Fill())
	require.Len(t, pruned, 1)
	assert.Same(t, before[0], pruned[0])
}

func TestBarSlots(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	first := NewColumnSeries("first", 4.0)
	second := NewColumnSeries("second", 2.0)
	require.NoError(t, c.AddSeries(first))
	require.NoError(t, c.AddSeries(second))
	measure(t, c)

	a := rects(t, first.Fill())[0]
	b := rects(t, second.Fill())[0]
	assert.InDelta(t, a.Width, b.Width, 1e-9)
	assert.InDelta(t, a.X+a.Width, b.X, 1e-9)
}

func TestBarDataLabels(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewColumnSeries("col", 1.0, -2.0)
	s.DataLabelsPaint = SolidFill("black")
	s.DataLabelsFormatter = func(p ChartPoint) string {
		return "v"
	}
	require.NoError(t, c.AddSeries(s))
	measure(t, c)
	assert.Len(t, s.DataLabelsPaint.Geometries(), 2)

	s.Values = s.Values[:1]
	measure(t, c)
	assert.Len(t, s.DataLabelsPaint.Geometries(), 1)
}

func TestStackedColumnSeries(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	a := NewStackedColumnSeries("a", 1.0, 2.0)
	b := NewStackedColumnSeries("b", 3.0, 4.0)
	require.NoError(t, c.AddSeries(a))
	require.NoError(t, c.AddSeries(b))
	measure(t, c)

	ab, _ := c.SeriesBounds(a)
	bb, _ := c.SeriesBounds(b)
	assert.Equal(t, 0.0, ab.Primary.Min)
	assert.Equal(t, 2.0, ab.Primary.Max)
	assert.Equal(t, 1.0, bb.Primary.Min)
	assert.Equal(t, 6.0, bb.Primary.Max)
	assert.Equal(t, 6.0, c.YAxes[0].DataBounds().Max)

	lower := rects(t, a.Fill())
	upper := rects(t, b.Fill())
	require.Len(t, lower, 2)
	require.Len(t, upper, 2)
	for i := range lower {
		assert.InDelta(t, lower[i].X, upper[i].X, 1e-9, "same slot")
		assert.InDelta(t, lower[i].Y, upper[i].Y+upper[i].Height, 1e-9, "piled")
	}

	// measuring again gives the same stack
	measure(t, c)
	again, _ := c.SeriesBounds(b)
	assert.Equal(t, bb, again)
}

func TestStackedExpand(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	a := NewStackedColumnSeries("a", 1.0, 2.0)
	b := NewStackedColumnSeries("b", 3.0, 6.0)
	a.Mode, b.Mode = StackExpand, StackExpand
	require.NoError(t, c.AddSeries(a))
	require.NoError(t, c.AddSeries(b))
	measure(t, c)

	bounds := c.YAxes[0].DataBounds()
	assert.Equal(t, 0.0, bounds.Min)
	assert.Equal(t, 1.0, bounds.Max)

	upper := rects(t, b.Fill())
	assert.InDelta(t, c.DrawMargin().Y, upper[0].Y, 1e-9, "full stack reaches the top")
	assert.InDelta(t, upper[0].Height, upper[1].Height, 1e-9, "same share")
}

func TestStackGroups(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	a := NewStackedColumnSeries("a", 1.0)
	b := NewStackedColumnSeries("b", 2.0)
	other := NewStackedColumnSeries("other", 5.0)
	other.Group = 1
	for _, s := range []Series{a, b, other} {
		require.NoError(t, c.AddSeries(s))
	}
	measure(t, c)

	assert.Equal(t, 2, c.Stacks().Len())
	assert.Equal(t, 1, other.StackGroup())

	ob, _ := c.SeriesBounds(other)
	assert.Equal(t, 0.0, ob.Primary.Min, "group 1 starts from zero")
	assert.Equal(t, 5.0, ob.Primary.Max)

	ra := rects(t, a.Fill())[0]
	rb := rects(t, b.Fill())[0]
	ro := rects(t, other.Fill())[0]
	assert.InDelta(t, ra.X, rb.X, 1e-9)
	assert.InDelta(t, ra.X+ra.Width, ro.X, 1e-9, "groups side by side")
}

func TestStackedRowSeries(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	a := NewStackedRowSeries("a", 2.0)
	b := NewStackedRowSeries("b", -3.0)
	require.NoError(t, c.AddSeries(a))
	require.NoError(t, c.AddSeries(b))
	measure(t, c)

	x := c.XAxes[0].DataBounds()
	assert.Equal(t, -3.0, x.Min)
	assert.Equal(t, 2.0, x.Max)

	ra := rects(t, a.Fill())[0]
	rb := rects(t, b.Fill())[0]
	zero := c.XAxes[0].Scaler().ToPixels(0)
	assert.InDelta(t, zero, ra.X, 1e-9)
	assert.InDelta(t, zero, rb.X+rb.Width, 1e-9)
}

func segments(p *PathGeometry, kind SegmentKind) int {
	var n int
	for _, s := range p.Segments {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

func TestLineSeries(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewLineSeries("line", 1.0, math.NaN(), 2.0, 3.0)
	require.NoError(t, c.AddSeries(s))
	measure(t, c)

	require.NotNil(t, s.Stroke())
	geos := s.Stroke().Geometries()
	require.Len(t, geos, 1)
	pat := geos[0].(*PathGeometry)
	assert.Equal(t, 2, segments(pat, MoveTo), "one sub path per run")
	assert.Equal(t, 1, segments(pat, LineTo))
	assert.Len(t, s.GeometryFill.Geometries(), 3)

	s.LineSmoothness = 1
	measure(t, c)
	assert.Equal(t, 1, segments(pat, CubicTo))
	assert.Same(t, pat, s.Stroke().Geometries()[0])
}

func TestStepLineSeries(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewStepLineSeries("step", 1.0, 2.0, 3.0)
	require.NoError(t, c.AddSeries(s))
	measure(t, c)

	assert.Equal(t, KindStepLine, s.Kind())
	pat := s.Stroke().Geometries()[0].(*PathGeometry)
	require.Equal(t, 5, len(pat.Segments))
	for i := 1; i < len(pat.Segments); i += 2 {
		assert.Equal(t, pat.Segments[i-1].Y, pat.Segments[i].Y, "horizontal step first")
	}
}

func TestStackedAreaSeries(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	a := NewStackedAreaSeries("a", 1.0, 2.0, 1.0)
	b := NewStackedStepAreaSeries("b", 1.0, 1.0, 1.0)
	other := NewStackedAreaSeries("other", 2.0, 2.0, 2.0)
	require.NoError(t, c.AddSeries(a))
	require.NoError(t, c.AddSeries(b))
	require.NoError(t, c.AddSeries(other))
	measure(t, c)

	ob, _ := c.SeriesBounds(other)
	assert.Equal(t, 1.0, ob.Primary.Min)
	assert.Equal(t, 4.0, ob.Primary.Max)

	bb, _ := c.SeriesBounds(b)
	assert.Equal(t, 0.0, bb.Primary.Min, "step areas have their own stack")
	assert.Equal(t, 1.0, bb.Primary.Max)

	fill := a.Fill().Geometries()[0].(*PathGeometry)
	assert.Equal(t, 1, segments(fill, MoveTo))
	assert.Equal(t, 1, segments(fill, ClosePath))
	assert.Equal(t, 5, segments(fill, LineTo))
}

func TestScatterSeries(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewScatterSeries("scatter", NewWeightedPoint(0, 1, 0), NewWeightedPoint(1, 2, 10))
	s.GeometrySize = 20
	s.MinGeometrySize = 10
	require.NoError(t, c.AddSeries(s))
	measure(t, c)

	geos := s.Fill().Geometries()
	require.Len(t, geos, 2)
	assert.Equal(t, 5.0, geos[0].(*CircleGeometry).Radius)
	assert.Equal(t, 10.0, geos[1].(*CircleGeometry).Radius)

	b, _ := c.SeriesBounds(s)
	assert.Equal(t, 10.0, b.Tertiary.Max)
}

func TestSetStrokeAfterMeasure(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewLineSeries("line", 1.0, 2.0)
	require.NoError(t, c.AddSeries(s))
	measure(t, c)

	old := s.Stroke()
	require.True(t, c.Canvas.HasPaint(old))
	path := old.Geometries()[0]
	version := c.Canvas.Version()

	next := SolidStroke("purple", 3)
	s.SetStroke(next)
	assert.False(t, c.Canvas.HasPaint(old))
	assert.True(t, c.Canvas.HasPaint(next))
	assert.Equal(t, []Geometry{path}, next.Geometries())
	assert.Greater(t, c.Canvas.Version(), version)

	ctx := s.PaintContext()
	require.NotNil(t, ctx.Stroke)
	assert.Equal(t, "purple", ctx.Stroke.Color)
	assert.Equal(t, 3.0, ctx.Stroke.StrokeThickness)
	assert.NotSame(t, next, ctx.Stroke)
}

func TestPaintContext(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewColumnSeries("col", 1.0)
	assert.True(t, s.PaintContext().IsEmpty())
	require.NoError(t, c.AddSeries(s))

	ctx := s.PaintContext()
	require.False(t, ctx.IsEmpty())
	assert.Equal(t, miniatureSize, ctx.Size)
	require.NotNil(t, ctx.Fill)
	assert.Equal(t, s.Fill().Color, ctx.Fill.Color)
	mini := ctx.Fill.Geometries()
	require.Len(t, mini, 1)
	assert.Equal(t, &RectGeometry{Width: miniatureSize, Height: miniatureSize}, mini[0])

	s.SetFill(nil)
	assert.Nil(t, s.PaintContext().Fill)
}

func TestSeriesRemovedThenAddedAgain(t *testing.T) {
	t.Parallel()

	area := NewLineSeries("area", 1.0, 3.0, 2.0)
	area.SetFill(SolidFill("orange"))

	tests := []struct {
		Name   string
		Series interface {
			Series
			Stroke() *Paint
			Fill() *Paint
		}
	}{
		{Name: "line with fill", Series: area},
		{Name: "stacked area", Series: NewStackedAreaSeries("stack", 2.0, 1.0, 2.0)},
		{Name: "stacked step area", Series: NewStackedStepAreaSeries("steps", 2.0, 1.0, 2.0)},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()

			c := newTestChart(t)
			s := tt.Series
			require.NoError(t, c.AddSeries(s))
			measure(t, c)
			require.Len(t, s.Stroke().Geometries(), 1)
			require.Len(t, s.Fill().Geometries(), 1)

			require.NoError(t, c.RemoveSeries(s))
			assert.Empty(t, s.Stroke().Geometries())
			assert.Empty(t, s.Fill().Geometries())
			assert.False(t, c.Canvas.HasPaint(s.Stroke()))

			require.NoError(t, c.AddSeries(s))
			measure(t, c)
			assert.Len(t, s.Stroke().Geometries(), 1)
			assert.Len(t, s.Fill().Geometries(), 1)
			assert.True(t, c.Canvas.HasPaint(s.Fill()))
		})
	}
}

func TestMaxBarWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		Name  string
		Max   float64
		Width func(c *Chart) float64
	}{
		{
			Name: "capped",
			Max:  10,
			Width: func(*Chart) float64 {
				return 10
			},
		},
		{
			Name: "wider than the band",
			Max:  1000,
			Width: func(c *Chart) float64 {
				return c.DrawMargin().Width / 3 * defaultBarWidth
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()

			c := newTestChart(t)
			s := NewColumnSeries("col", 1.0, 3.0, 2.0)
			s.MaxBarWidth = tt.Max
			require.NoError(t, c.AddSeries(s))
			measure(t, c)

			x := c.XAxes[0].Scaler()
			for i, r := range rects(t, s.Fill()) {
				assert.InDelta(t, tt.Width(c), r.Width, 1e-9)
				assert.InDelta(t, x.ToPixels(float64(i)), r.X+r.Width/2, 1e-9, "bar stays centered")
			}
		})
	}
}

func TestColumnsOnInvertedAxis(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	y := NewAxis(OrientLeft)
	y.Inverted = true
	c.YAxes = []*Axis{y}
	s := NewColumnSeries("col", 1.0, 3.0)
	require.NoError(t, c.AddSeries(s))
	measure(t, c)

	area := c.DrawMargin()
	bars := rects(t, s.Fill())
	require.Len(t, bars, 2)
	for _, r := range bars {
		assert.InDelta(t, area.Y, r.Y, 1e-9, "bars hang from the top")
	}
	assert.InDelta(t, area.Bottom(), bars[1].Y+bars[1].Height, 1e-9)
}
