package config

import (
	"fmt"
	"strings"

	"github.com/midbel/cartesian"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
)

// Styles returns the style builder described by the file.
func (f *File) Styles() *cartesian.StyleBuilder {
	b := cartesian.NewStyleBuilder()
	b.UseInitializer(cartesian.LightTheme())
	if len(f.Colors) > 0 {
		b.UseColors(cartesian.Palette(f.Colors))
	}
	return b
}

// Build creates the chart described by c. Data files are looked for in
// baseDir.
func Build(c Chart, baseDir string, styles *cartesian.StyleBuilder) (*cartesian.Chart, error) {
	width, height := c.Width, c.Height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	ch, err := cartesian.NewChart(width, height, styles)
	if err != nil {
		return nil, err
	}
	ch.Title = c.Title
	if p := c.Padding; p != nil {
		ch.Padding = cartesian.NewPadding(p.Top, p.Right, p.Bottom, p.Left)
	}
	ch.Legend.Title = c.Legend.Title
	if ch.Legend.Orient, err = cartesian.ParseOrientation(c.Legend.Position); err != nil {
		return nil, FieldError{Chart: c.Name, Field: "legend.position", Err: err}
	}
	for i, a := range c.X {
		x, err := buildAxis(a, cartesian.OrientBottom)
		if err != nil {
			return nil, FieldError{Chart: c.Name, Field: fmt.Sprintf("x[%d]", i), Err: err}
		}
		ch.XAxes = append(ch.XAxes, x)
	}
	for i, a := range c.Y {
		y, err := buildAxis(a, cartesian.OrientLeft)
		if err != nil {
			return nil, FieldError{Chart: c.Name, Field: fmt.Sprintf("y[%d]", i), Err: err}
		}
		ch.YAxes = append(ch.YAxes, y)
	}
	for i, s := range c.Series {
		cs, err := buildSeries(s, baseDir)
		if err != nil {
			return nil, FieldError{Chart: c.Name, Field: fmt.Sprintf("series[%d]", i), Err: err}
		}
		if err := ch.AddSeries(cs); err != nil {
			return nil, FieldError{Chart: c.Name, Field: fmt.Sprintf("series[%d]", i), Err: err}
		}
	}
	return ch, nil
}

func buildAxis(a Axis, orient cartesian.Orientation) (*cartesian.Axis, error) {
	if a.Position != "" {
		o, err := cartesian.ParseOrientation(a.Position)
		if err != nil {
			return nil, err
		}
		orient = o
	}
	x := cartesian.NewAxis(orient)
	x.Name = a.Name
	x.MinLimit = a.Min
	x.MaxLimit = a.Max
	x.Labels = a.Labels
	x.MinStep = a.Step
	x.ForceStepToMin = a.ForceStep
	x.Inverted = a.Inverted
	return x, nil
}

func buildSeries(s Series, baseDir string) (cartesian.Series, error) {
	kind, err := cartesian.ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	if s.File == "" {
		return newSeries(kind, s, s.Values)
	}
	points, err := readColumns(resolvePath(baseDir, s.File), s.X, s.Y)
	if err != nil {
		return nil, err
	}
	return newSeries(kind, s, points)
}

func newSeries[T any](kind cartesian.SeriesKind, cfg Series, values []T) (cartesian.Series, error) {
	var (
		cs   cartesian.Series
		base *cartesian.StrokeAndFillSeries[T]
		line *cartesian.LineSeries[T]
		bar  *cartesian.BarSeries[T]
		mode = stackMode(cfg.Mode)
	)
	switch kind {
	case cartesian.KindLine, cartesian.KindStepLine:
		s := cartesian.NewLineSeries(cfg.Name, values...)
		s.Stepped = kind == cartesian.KindStepLine
		cs, base, line = s, &s.StrokeAndFillSeries, s
	case cartesian.KindStackedArea:
		s := cartesian.NewStackedAreaSeries(cfg.Name, values...)
		s.Group, s.Mode = cfg.Group, mode
		cs, base, line = s, &s.StrokeAndFillSeries, &s.LineSeries
	case cartesian.KindStackedStepArea:
		s := cartesian.NewStackedStepAreaSeries(cfg.Name, values...)
		s.Group, s.Mode = cfg.Group, mode
		cs, base, line = s, &s.StrokeAndFillSeries, &s.LineSeries
	case cartesian.KindScatter:
		s := cartesian.NewScatterSeries(cfg.Name, values...)
		if cfg.Size > 0 {
			s.GeometrySize = cfg.Size
		}
		cs, base = s, &s.StrokeAndFillSeries
	case cartesian.KindColumn:
		s := cartesian.NewColumnSeries(cfg.Name, values...)
		cs, base, bar = s, &s.StrokeAndFillSeries, &s.BarSeries
	case cartesian.KindRow:
		s := cartesian.NewRowSeries(cfg.Name, values...)
		cs, base, bar = s, &s.StrokeAndFillSeries, &s.BarSeries
	case cartesian.KindStackedColumn:
		s := cartesian.NewStackedColumnSeries(cfg.Name, values...)
		s.Group, s.Mode = cfg.Group, mode
		cs, base, bar = s, &s.StrokeAndFillSeries, &s.BarSeries
	case cartesian.KindStackedRow:
		s := cartesian.NewStackedRowSeries(cfg.Name, values...)
		s.Group, s.Mode = cfg.Group, mode
		cs, base, bar = s, &s.StrokeAndFillSeries, &s.BarSeries
	default:
		return nil, fmt.Errorf("%s: unsupported series kind", kind)
	}

	base.Hidden = cfg.Hidden
	base.XAxis = cfg.XAxis
	base.YAxis = cfg.YAxis
	base.Z = cfg.Z
	if cfg.Stroke != "" {
		p := cartesian.SolidStroke(cfg.Stroke, cfg.Thickness)
		p.Opacity = cfg.Opacity
		base.SetStroke(p)
	}
	if cfg.Fill != "" {
		p := cartesian.SolidFill(cfg.Fill)
		p.Opacity = cfg.Opacity
		base.SetFill(p)
	}
	if line != nil {
		line.LineSmoothness = cfg.Smoothness
		if cfg.Size > 0 {
			line.GeometrySize = cfg.Size
		}
	}
	if bar != nil {
		bar.Width = cfg.Width
		bar.Pivot = cfg.Pivot
		if cfg.Labels {
			bar.DataLabelsPaint = cartesian.SolidFill("black")
		}
	}
	return cs, nil
}

func stackMode(str string) cartesian.StackMode {
	if strings.EqualFold(str, "expand") {
		return cartesian.StackExpand
	}
	return cartesian.StackNormal
}
