package cartesian

// Geometry is a visual held by a paint. Geometries are pointers: a series
// keeps the same geometry for a point across measure passes and only
// updates its coordinates.
type Geometry interface {
	Draw(DrawingContext, *Paint) error
	Translate(float64, float64) Geometry
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r *RectGeometry) Draw(dc DrawingContext, p *Paint) error {
	return dc.DrawRect(r, p)
}

func (r *RectGeometry) Translate(dx, dy float64) Geometry {
	x := *r
	x.X += dx
	x.Y += dy
	return &x
}

type CircleGeometry struct {
	X      float64
	Y      float64
	Radius float64
}

func (c *CircleGeometry) Draw(dc DrawingContext, p *Paint) error {
	return dc.DrawCircle(c, p)
}

func (c *CircleGeometry) Translate(dx, dy float64) Geometry {
	x := *c
	x.X += dx
	x.Y += dy
	return &x
}

type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	CubicTo
	ClosePath
)

// Segment is one command of a path. C1 and C2 are only used by CubicTo.
type Segment struct {
	Kind SegmentKind
	X    float64
	Y    float64
	C1X  float64
	C1Y  float64
	C2X  float64
	C2Y  float64
}

type PathGeometry struct {
	Segments []Segment
}

func (p *PathGeometry) Draw(dc DrawingContext, pt *Paint) error {
	if len(p.Segments) == 0 {
		return nil
	}
	return dc.DrawPath(p, pt)
}

func (p *PathGeometry) Translate(dx, dy float64) Geometry {
	x := PathGeometry{
		Segments: make([]Segment, len(p.Segments)),
	}
	for i, s := range p.Segments {
		s.X += dx
		s.Y += dy
		s.C1X += dx
		s.C1Y += dy
		s.C2X += dx
		s.C2Y += dy
		x.Segments[i] = s
	}
	return &x
}

func (p *PathGeometry) Reset() {
	p.Segments = p.Segments[:0]
}

func (p *PathGeometry) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: MoveTo, X: x, Y: y})
}

func (p *PathGeometry) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Kind: LineTo, X: x, Y: y})
}

func (p *PathGeometry) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Segments = append(p.Segments, Segment{
		Kind: CubicTo,
		X:    x,
		Y:    y,
		C1X:  c1x,
		C1Y:  c1y,
		C2X:  c2x,
		C2Y:  c2y,
	})
}

func (p *PathGeometry) Close() {
	p.Segments = append(p.Segments, Segment{Kind: ClosePath})
}

type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

type TextBaseline int

const (
	BaselineMiddle TextBaseline = iota
	BaselineHanging
	BaselineAuto
)

type LabelGeometry struct {
	X        float64
	Y        float64
	Text     string
	Size     float64
	Anchor   TextAnchor
	Baseline TextBaseline
}

func (g *LabelGeometry) Draw(dc DrawingContext, p *Paint) error {
	if g.Text == "" {
		return nil
	}
	return dc.DrawLabel(g, p)
}

func (g *LabelGeometry) Translate(dx, dy float64) Geometry {
	x := *g
	x.X += dx
	x.Y += dy
	return &x
}

var DefaultSize float64 = 4

// MarkerFunc gives the geometry drawn on a point of a line or scatter
// series. size is the diameter of the marker.
type MarkerFunc func(x, y, size float64) Geometry

func GetCircle(x, y, size float64) Geometry {
	return &CircleGeometry{
		X:      x,
		Y:      y,
		Radius: size / 2,
	}
}

func GetSquare(x, y, size float64) Geometry {
	half := size / 2
	return &RectGeometry{
		X:      x - half,
		Y:      y - half,
		Width:  size,
		Height: size,
	}
}

func GetDiamond(x, y, size float64) Geometry {
	var (
		half = size / 2
		pat  PathGeometry
	)
	pat.MoveTo(x, y-half)
	pat.LineTo(x+half, y)
	pat.LineTo(x, y+half)
	pat.LineTo(x-half, y)
	pat.Close()
	return &pat
}

// moveMarker updates g in place so that it is centered on x, y with the
// given size. It reports false when g was not created by a known marker
// function.
func moveMarker(g Geometry, x, y, size float64) bool {
	switch g := g.(type) {
	case *CircleGeometry:
		g.X, g.Y, g.Radius = x, y, size/2
	case *RectGeometry:
		half := size / 2
		g.X, g.Y, g.Width, g.Height = x-half, y-half, size, size
	default:
		return false
	}
	return true
}
