package cartesian

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChart(t *testing.T) *Chart {
	t.Helper()
	style := NewStyleBuilder().UseInitializer(LightTheme())
	c, err := NewChart(400, 300, style)
	require.NoError(t, err)
	return c
}

func TestNewChartWithoutInitializer(t *testing.T) {
	t.Parallel()
	_, err := NewChart(100, 100, NewStyleBuilder())
	assert.ErrorIs(t, err, ErrNoInitializer)
}

func TestChartMeasureEmpty(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	assert.ErrorIs(t, c.Measure(context.Background()), ErrEmptyChart)

	s := NewLineSeries("hidden", 1.0, 2.0)
	s.Hidden = true
	require.NoError(t, c.AddSeries(s))
	assert.ErrorIs(t, c.Measure(context.Background()), ErrEmptyChart)
}

func TestChartMeasureCanceled(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	require.NoError(t, c.AddSeries(NewLineSeries("line", 1.0)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Measure(ctx), context.Canceled)
}

func TestChartAxisError(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewLineSeries("line", 1.0, 2.0)
	s.YAxis = 2
	require.NoError(t, c.AddSeries(s))

	err := c.Measure(context.Background())
	require.ErrorIs(t, err, ErrAxisIndex)
	var axisErr AxisError
	require.True(t, errors.As(err, &axisErr))
	assert.Equal(t, "y", axisErr.Axis)
	assert.Equal(t, 2, axisErr.Index)
}

func TestChartMapperError(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	err := c.AddSeries(NewLineSeries("text", "a", "b"))
	assert.ErrorIs(t, err, ErrNoMapper)
	assert.Empty(t, c.Series())
}

func TestChartRemoveSeries(t *testing.T) {
	t.Parallel()

	var (
		c    = newTestChart(t)
		keep = NewColumnSeries("keep", 1.0, 2.0)
		drop = NewColumnSeries("drop", 3.0, 4.0)
	)
	require.NoError(t, c.AddSeries(keep))
	require.NoError(t, c.AddSeries(drop))
	require.NoError(t, c.Measure(context.Background()))
	require.True(t, c.Canvas.HasPaint(drop.Fill()))

	require.NoError(t, c.RemoveSeries(drop))
	assert.False(t, c.Canvas.HasPaint(drop.Fill()))
	assert.Empty(t, drop.Fill().Geometries())
	assert.Len(t, c.Series(), 1)
	assert.ErrorIs(t, c.RemoveSeries(drop), ErrUnknownSeries)

	require.NoError(t, c.Measure(context.Background()))
	bar, ok := keep.Fill().Geometries()[0].(*RectGeometry)
	require.True(t, ok)
	assert.InDelta(t, c.DrawMargin().Width/2*defaultBarWidth, bar.Width, 1e-9, "bar takes the whole band")
}

func TestChartHiddenSeriesLeavesCanvas(t *testing.T) {
	t.Parallel()

	var (
		c     = newTestChart(t)
		shown = NewLineSeries("shown", 1.0, 2.0)
		other = NewLineSeries("other", 3.0, 4.0)
	)
	require.NoError(t, c.AddSeries(shown))
	require.NoError(t, c.AddSeries(other))
	require.NoError(t, c.Measure(context.Background()))
	require.True(t, c.Canvas.HasPaint(other.Stroke()))

	other.Hidden = true
	require.NoError(t, c.Measure(context.Background()))
	assert.False(t, c.Canvas.HasPaint(other.Stroke()))
	assert.True(t, c.Canvas.HasPaint(shown.Stroke()))
}

func TestChartMeasureAxes(t *testing.T) {
	t.Parallel()

	var (
		c    = newTestChart(t)
		line = NewLineSeries("line", Point{X: 1, Y: 10}, Point{X: 4, Y: -5})
		row  = NewRowSeries("row", 2.0, 6.0)
	)
	c.YAxes = []*Axis{NewAxis(OrientLeft), NewAxis(OrientRight)}
	row.YAxis = 1
	require.NoError(t, c.AddSeries(line))
	require.NoError(t, c.AddSeries(row))
	require.NoError(t, c.Measure(context.Background()))

	x := c.XAxes[0].DataBounds()
	assert.Equal(t, 0.0, x.Min, "pivot of the rows")
	assert.Equal(t, 6.0, x.Max)

	left := c.YAxes[0].DataBounds()
	assert.Equal(t, -5.0, left.Min)
	assert.Equal(t, 10.0, left.Max)

	right := c.YAxes[1].DataBounds()
	assert.Equal(t, -0.5, right.Min)
	assert.Equal(t, 1.5, right.Max)

	area := c.DrawMargin()
	assert.Greater(t, area.X, c.Padding.Left)
	assert.Less(t, area.Right(), c.Width-c.Padding.Right)
	assert.InDelta(t, area.Bottom(), c.YAxes[0].Scaler().ToPixels(-5), 1e-9)
	assert.InDelta(t, area.Y, c.YAxes[0].Scaler().ToPixels(10), 1e-9)
}

func TestChartRender(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	c.Title = "sales"
	c.Legend.Orient = OrientRight
	c.Legend.Title = "legend"
	require.NoError(t, c.AddSeries(NewColumnSeries("north", 1.0, math.NaN(), 3.0)))
	require.NoError(t, c.AddSeries(NewLineSeries("south", 2.0, 1.0, 2.0)))

	var rec recorder
	require.NoError(t, c.Render(context.Background(), &rec))
	assert.Equal(t, "begin 400x300", rec.calls[0])
	assert.Equal(t, "end", rec.calls[len(rec.calls)-1])
	assert.Contains(t, rec.labels, "sales")
	assert.Contains(t, rec.labels, "legend")
	assert.Contains(t, rec.labels, "north")
	assert.Contains(t, rec.labels, "south")
	assert.GreaterOrEqual(t, rec.rects, 2, "columns without the gap")
	assert.False(t, c.Canvas.IsDirty())

	for i := 1; i < len(rec.paints); i++ {
		assert.LessOrEqual(t, rec.paints[i-1].ZIndex, rec.paints[i].ZIndex)
	}
}

func TestChartHiddenSeriesShownAgain(t *testing.T) {
	t.Parallel()

	c := newTestChart(t)
	s := NewLineSeries("line", 1.0, 2.0, 1.5)
	require.NoError(t, c.AddSeries(s))
	require.NoError(t, c.AddSeries(NewColumnSeries("col", 2.0, 1.0, 2.0)))
	require.NoError(t, c.Measure(context.Background()))
	path := s.Stroke().Geometries()

	s.Hidden = true
	require.NoError(t, c.Measure(context.Background()))
	require.False(t, c.Canvas.HasPaint(s.Stroke()))

	s.Hidden = false
	require.NoError(t, c.Measure(context.Background()))
	assert.True(t, c.Canvas.HasPaint(s.Stroke()))
	assert.Equal(t, path, s.Stroke().Geometries(), "the path is reused")
	assert.Len(t, s.GeometryStroke.Geometries(), 3)
}

func TestChartAddSeriesTwice(t *testing.T) {
	t.Parallel()

	var (
		c     = newTestChart(t)
		other = newTestChart(t)
		s     = NewLineSeries("line", 1.0, 2.0)
	)
	require.NoError(t, c.AddSeries(s))
	assert.ErrorIs(t, c.AddSeries(s), ErrAttached)
	assert.Len(t, c.Series(), 1)
	assert.ErrorIs(t, other.AddSeries(s), ErrAttached)

	require.NoError(t, c.RemoveSeries(s))
	require.NoError(t, other.AddSeries(s))
	assert.Len(t, other.Series(), 1)
}

func TestChartAddSeriesStyleFailure(t *testing.T) {
	t.Parallel()

	c := &Chart{Width: 100, Height: 100, Style: NewStyleBuilder()}
	s := NewColumnSeries("col", 1.0)
	assert.ErrorIs(t, c.AddSeries(s), ErrNoInitializer)
	assert.Empty(t, c.Series())

	require.NoError(t, newTestChart(t).AddSeries(s), "series left detached")
}
