// Package svgdraw draws the canvas of a chart as an SVG document.
package svgdraw

import (
	"bufio"
	"context"
	"io"

	"github.com/midbel/cartesian"
	"github.com/midbel/svg"
)

type Context struct {
	w        io.Writer
	width    float64
	height   float64
	elements []svg.Element
	group    svg.Group
}

func New(w io.Writer) *Context {
	return &Context{
		w: w,
	}
}

// Render measures c and writes it to w as SVG.
func Render(ctx context.Context, w io.Writer, c *cartesian.Chart) error {
	return c.Render(ctx, New(w))
}

func (c *Context) Begin(width, height float64) error {
	c.width = width
	c.height = height
	c.elements = c.elements[:0]
	return nil
}

func (c *Context) BeginPaint(p *cartesian.Paint) error {
	c.group = getBaseGroup(p)
	return nil
}

func (c *Context) EndPaint(_ *cartesian.Paint) error {
	c.elements = append(c.elements, c.group.AsElement())
	return nil
}

func (c *Context) DrawRect(r *cartesian.RectGeometry, _ *cartesian.Paint) error {
	var el svg.Rect
	el.Pos = svg.NewPos(r.X, r.Y)
	el.Dim = svg.NewDim(r.Width, r.Height)
	c.group.Append(el.AsElement())
	return nil
}

func (c *Context) DrawCircle(g *cartesian.CircleGeometry, _ *cartesian.Paint) error {
	var el svg.Circle
	el.Pos = svg.NewPos(g.X, g.Y)
	el.Radius = g.Radius
	c.group.Append(el.AsElement())
	return nil
}

func (c *Context) DrawPath(g *cartesian.PathGeometry, p *cartesian.Paint) error {
	pat := getBasePath(p)
	for _, s := range g.Segments {
		switch s.Kind {
		case cartesian.MoveTo:
			pat.AbsMoveTo(svg.NewPos(s.X, s.Y))
		case cartesian.LineTo:
			pat.AbsLineTo(svg.NewPos(s.X, s.Y))
		case cartesian.CubicTo:
			pat.AbsCubicCurve(svg.NewPos(s.X, s.Y), svg.NewPos(s.C1X, s.C1Y), svg.NewPos(s.C2X, s.C2Y))
		case cartesian.ClosePath:
			pat.ClosePath()
		}
	}
	c.group.Append(pat.AsElement())
	return nil
}

func (c *Context) DrawLabel(g *cartesian.LabelGeometry, p *cartesian.Paint) error {
	txt := svg.NewText(g.Text)
	txt.Font = svg.NewFont(g.Size)
	txt.Fill = getFill(p)
	txt.Pos = svg.NewPos(g.X, g.Y)
	txt.Shift = svg.NewPos(0, baselineShift(g.Baseline, g.Size))
	txt.Anchor = anchorName(g.Anchor)
	c.group.Append(txt.AsElement())
	return nil
}

func (c *Context) End() error {
	el := svg.NewSVG(svg.WithDimension(c.width, c.height))
	for _, e := range c.elements {
		el.Append(e)
	}
	bw := bufio.NewWriter(c.w)
	el.Render(bw)
	return bw.Flush()
}

// getBaseGroup gives the group of the geometries of p.
func getBaseGroup(p *cartesian.Paint) svg.Group {
	var g svg.Group
	if p.IsFill {
		g.Fill = getFill(p)
		g.Class = []string{"fill"}
	} else {
		g.Fill = svg.NewFill("none")
		g.Stroke = getStroke(p)
		g.Class = []string{"stroke"}
	}
	return g
}

func getBasePath(p *cartesian.Paint) svg.Path {
	var pat svg.Path
	if p.IsFill {
		pat.Fill = getFill(p)
	} else {
		pat.Fill = svg.NewFill("none")
		pat.Stroke = getStroke(p)
	}
	return pat
}

func getFill(p *cartesian.Paint) svg.Fill {
	f := svg.NewFill(p.Color)
	f.Opacity = p.Alpha()
	return f
}

// getStroke does not use svg.NewStroke which only accepts integer widths.
func getStroke(p *cartesian.Paint) svg.Stroke {
	return svg.Stroke{
		Fill:    p.Color,
		Width:   p.Thickness(),
		Opacity: p.Alpha(),
	}
}

func anchorName(a cartesian.TextAnchor) string {
	switch a {
	case cartesian.AnchorMiddle:
		return "middle"
	case cartesian.AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// baselineShift moves a label from its alphabetic baseline to the
// requested one.
func baselineShift(b cartesian.TextBaseline, size float64) float64 {
	switch b {
	case cartesian.BaselineHanging:
		return size * 0.8
	case cartesian.BaselineAuto:
		return 0
	default:
		return size * 0.35
	}
}
