package svgdraw

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/midbel/cartesian"
	"github.com/midbel/svg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	style := cartesian.NewStyleBuilder().UseInitializer(cartesian.LightTheme())
	c, err := cartesian.NewChart(320, 240, style)
	require.NoError(t, err)
	c.Title = "weekly"
	require.NoError(t, c.AddSeries(cartesian.NewColumnSeries("visits", 3.0, 5.0, 2.0)))
	line := cartesian.NewLineSeries("trend", 2.0, 4.0, 3.0)
	line.LineSmoothness = 0.5
	require.NoError(t, c.AddSeries(line))

	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), &buf, c))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"), "xml prolog")
	for _, tag := range []string{"<g", "<rect", "<path", "<circle", "<text"} {
		assert.Contains(t, out, tag)
	}
	assert.Contains(t, out, "weekly")
	assert.Equal(t, 3, strings.Count(out, "<rect"), "one rect per column")
}

func TestRenderEmptyChart(t *testing.T) {
	t.Parallel()

	style := cartesian.NewStyleBuilder().UseInitializer(cartesian.LightTheme())
	c, err := cartesian.NewChart(100, 100, style)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Render(context.Background(), &buf, c)
	assert.ErrorIs(t, err, cartesian.ErrEmptyChart)
	assert.Zero(t, buf.Len())
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "middle", anchorName(cartesian.AnchorMiddle))
	assert.Equal(t, "end", anchorName(cartesian.AnchorEnd))
	assert.Equal(t, "start", anchorName(cartesian.AnchorStart))
	assert.Equal(t, 8.0, baselineShift(cartesian.BaselineHanging, 10))
	assert.Equal(t, 3.5, baselineShift(cartesian.BaselineMiddle, 10))
	assert.Zero(t, baselineShift(cartesian.BaselineAuto, 10))
}

func TestPaintAttributes(t *testing.T) {
	t.Parallel()

	stroke := cartesian.SolidStroke("red", 1.5)
	stroke.Opacity = 0.5
	g := getBaseGroup(stroke)
	assert.Equal(t, svg.Stroke{Fill: "red", Width: 1.5, Opacity: 0.5}, g.Stroke)
	assert.Equal(t, "none", g.Fill.Color)
	assert.Equal(t, []string{"stroke"}, g.Class)

	fill := cartesian.SolidFill("blue")
	g = getBaseGroup(fill)
	assert.Equal(t, "blue", g.Fill.Color)
	assert.Equal(t, 1.0, g.Fill.Opacity)
	assert.Zero(t, g.Stroke.Width)
}
