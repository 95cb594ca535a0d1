// Package rasterdraw rasterizes the canvas of a chart to PNG.
package rasterdraw

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/midbel/cartesian"
	"golang.org/x/image/colornames"
)

type Context struct {
	// Background fills the image before drawing, transparent when empty.
	Background string
	// FontFile is a TrueType or OpenType file used for labels. Labels
	// are skipped without it.
	FontFile string

	w    io.Writer
	dc   *gg.Context
	font *text.FontSource
}

func New(w io.Writer) *Context {
	return &Context{
		w:          w,
		Background: "white",
	}
}

// Render measures c and writes it to w as PNG.
func Render(ctx context.Context, w io.Writer, c *cartesian.Chart) error {
	return c.Render(ctx, New(w))
}

func (c *Context) Begin(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %gx%g", width, height)
	}
	c.dc = gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	if c.Background != "" {
		c.dc.ClearWithColor(parseColor(c.Background))
	}
	if c.FontFile != "" && c.font == nil {
		src, err := text.NewFontSourceFromFile(c.FontFile)
		if err != nil {
			return err
		}
		c.font = src
	}
	return nil
}

func (c *Context) BeginPaint(p *cartesian.Paint) error {
	col := parseColor(p.Color)
	c.dc.SetRGBA(col.R, col.G, col.B, col.A*p.Alpha())
	c.dc.SetLineWidth(p.Thickness())
	return nil
}

func (c *Context) EndPaint(_ *cartesian.Paint) error {
	return nil
}

func (c *Context) DrawRect(r *cartesian.RectGeometry, p *cartesian.Paint) error {
	c.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	return c.finish(p)
}

func (c *Context) DrawCircle(g *cartesian.CircleGeometry, p *cartesian.Paint) error {
	c.dc.DrawCircle(g.X, g.Y, g.Radius)
	return c.finish(p)
}

func (c *Context) DrawPath(g *cartesian.PathGeometry, p *cartesian.Paint) error {
	for _, s := range g.Segments {
		switch s.Kind {
		case cartesian.MoveTo:
			c.dc.MoveTo(s.X, s.Y)
		case cartesian.LineTo:
			c.dc.LineTo(s.X, s.Y)
		case cartesian.CubicTo:
			c.dc.CubicTo(s.C1X, s.C1Y, s.C2X, s.C2Y, s.X, s.Y)
		case cartesian.ClosePath:
			c.dc.ClosePath()
		}
	}
	return c.finish(p)
}

func (c *Context) DrawLabel(g *cartesian.LabelGeometry, _ *cartesian.Paint) error {
	if c.font == nil {
		cartesian.Logger().Debug("label skipped without font", slog.String("text", g.Text))
		return nil
	}
	var ax, ay float64
	switch g.Anchor {
	case cartesian.AnchorMiddle:
		ax = 0.5
	case cartesian.AnchorEnd:
		ax = 1
	}
	switch g.Baseline {
	case cartesian.BaselineMiddle:
		ay = 0.5
	case cartesian.BaselineHanging:
		ay = 1
	}
	c.dc.SetFont(c.font.Face(g.Size))
	c.dc.DrawStringAnchored(g.Text, g.X, g.Y, ax, ay)
	return nil
}

func (c *Context) End() error {
	defer c.dc.Close()
	return c.dc.EncodePNG(c.w)
}

func (c *Context) finish(p *cartesian.Paint) error {
	if p.IsFill {
		return c.dc.Fill()
	}
	return c.dc.Stroke()
}

// parseColor accepts hexadecimal colors and SVG color names. Unknown
// colors give black.
func parseColor(str string) gg.RGBA {
	str = strings.TrimSpace(str)
	if strings.HasPrefix(str, "#") {
		return gg.Hex(str)
	}
	if str == "none" || str == "transparent" {
		return gg.RGBA{}
	}
	if c, ok := colornames.Map[strings.ToLower(str)]; ok {
		return gg.FromColor(c)
	}
	return gg.FromColor(color.Black)
}
