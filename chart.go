package cartesian

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func NewPadding(top, right, bottom, left float64) Padding {
	return Padding{
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Left:   left,
	}
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

func (p Padding) IsZero() bool {
	return p == Padding{}
}

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

type Legend struct {
	Title  string
	Orient Orientation
	Paint  *Paint
}

type barSlot struct {
	index int
	count int
}

type Chart struct {
	Title  string
	Width  float64
	Height float64

	Padding
	Legend

	XAxes []*Axis
	YAxes []*Axis

	Canvas *Canvas
	Style  *StyleBuilder

	series       []Series
	nextID       int
	stacks       *StackContext
	slots        map[int]barSlot
	bounds       map[int]DimensionalBounds
	drawMargin   Rect
	titlePaint   *Paint
	legendPaints []*Paint
}

// NewChart creates a chart styled by the given builder, the package
// builder when nil.
func NewChart(width, height float64, style *StyleBuilder) (*Chart, error) {
	c := &Chart{
		Width:  width,
		Height: height,
		Canvas: NewCanvas(),
		Style:  style,
	}
	if err := c.styles().ApplyStyleToChart(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chart) styles() *StyleBuilder {
	if c.Style != nil {
		return c.Style
	}
	return Styles()
}

func (c *Chart) init() {
	if c.Canvas == nil {
		c.Canvas = NewCanvas()
	}
	if len(c.XAxes) == 0 {
		c.XAxes = append(c.XAxes, NewAxis(OrientBottom))
	}
	if len(c.YAxes) == 0 {
		c.YAxes = append(c.YAxes, NewAxis(OrientLeft))
	}
}

// AddSeries attaches s to the chart and applies the chart style to it.
func (c *Chart) AddSeries(s Series) error {
	c.init()
	if slices.Contains(c.series, s) {
		return fmt.Errorf("%s: %w", s.Name(), ErrAttached)
	}
	if err := s.attach(c, c.nextID, s.Kind()); err != nil {
		return err
	}
	if err := c.styles().ApplyStyleToSeries(s); err != nil {
		s.detach()
		return err
	}
	c.nextID++
	c.series = append(c.series, s)
	c.Canvas.Invalidate()
	return nil
}

// RemoveSeries detaches s and removes its visuals from the canvas.
func (c *Chart) RemoveSeries(s Series) error {
	i := slices.Index(c.series, s)
	if i < 0 {
		return fmt.Errorf("%s: %w", s.Name(), ErrUnknownSeries)
	}
	c.series = slices.Delete(c.series, i, i+1)
	s.SoftDelete(c)
	delete(c.bounds, s.ID())
	s.detach()
	c.Canvas.Invalidate()
	return nil
}

func (c *Chart) Series() []Series {
	return slices.Clone(c.series)
}

// Stacks returns the stack context of the current measure pass.
func (c *Chart) Stacks() *StackContext {
	if c.stacks == nil {
		c.stacks = NewStackContext()
	}
	return c.stacks
}

// SeriesBounds returns the bounds computed for s by the last measure.
func (c *Chart) SeriesBounds(s Series) (DimensionalBounds, bool) {
	b, ok := c.bounds[s.ID()]
	return b, ok
}

func (c *Chart) DrawMargin() Rect {
	return c.drawMargin
}

// axesOf returns the axis of the categories then the axis of the values
// of s.
func (c *Chart) axesOf(s Series) (*Axis, *Axis, error) {
	xi, yi := s.ScalesXAt(), s.ScalesYAt()
	if xi < 0 || xi >= len(c.XAxes) {
		return nil, nil, AxisError{Series: s.Name(), Axis: "x", Index: xi}
	}
	if yi < 0 || yi >= len(c.YAxes) {
		return nil, nil, AxisError{Series: s.Name(), Axis: "y", Index: yi}
	}
	x, y := c.XAxes[xi], c.YAxes[yi]
	if s.Kind().IsHorizontal() {
		return y, x, nil
	}
	return x, y, nil
}

func (c *Chart) barSlot(s Series) barSlot {
	if sl, ok := c.slots[s.ID()]; ok && sl.count > 0 {
		return sl
	}
	return barSlot{count: 1}
}

func (c *Chart) visibleSeries() []Series {
	var list []Series
	for _, s := range c.series {
		if s.IsVisible() {
			list = append(list, s)
		}
	}
	return list
}

// Measure computes the bounds of the series, scales the axes to the draw
// margin and updates the paints of the canvas.
func (c *Chart) Measure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.init()

	visible := c.visibleSeries()
	if len(visible) == 0 {
		return ErrEmptyChart
	}
	for _, a := range c.XAxes {
		a.Reset()
	}
	for _, a := range c.YAxes {
		a.Reset()
	}
	c.stacks = NewStackContext()
	c.bounds = make(map[int]DimensionalBounds)
	c.assignSlots(visible)

	var measured []Series
	for _, s := range visible {
		secondary, primary, err := c.axesOf(s)
		if err != nil {
			return err
		}
		b := s.Bounds(c, secondary, primary)
		c.bounds[s.ID()] = b
		if b.IsEmpty() {
			Logger().Warn("series without values", slog.String("series", s.Name()))
			continue
		}
		secondary.appendBounds(b.Secondary)
		primary.appendBounds(b.Primary)
		measured = append(measured, s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.drawMargin = c.computeDrawMargin()
	for _, a := range c.XAxes {
		a.setScaler(c.drawMargin.X, c.drawMargin.Right())
	}
	for _, a := range c.YAxes {
		a.setScaler(c.drawMargin.Bottom(), c.drawMargin.Y)
	}
	Logger().Debug("chart measured",
		slog.Int("series", len(measured)),
		slog.Int("stacks", c.stacks.Len()),
		slog.Float64("width", c.drawMargin.Width),
		slog.Float64("height", c.drawMargin.Height),
	)
	return c.Canvas.update(func() error {
		for _, s := range c.series {
			if slices.Contains(measured, s) {
				continue
			}
			for _, p := range s.Paints() {
				c.Canvas.removePaint(p)
			}
		}
		for _, s := range measured {
			if err := s.Measure(c); err != nil {
				return err
			}
		}
		c.drawAxes()
		c.drawTitle()
		c.drawLegend(visible)
		return nil
	})
}

// Render measures the chart and draws its canvas with dc.
func (c *Chart) Render(ctx context.Context, dc DrawingContext) error {
	if err := c.Measure(ctx); err != nil {
		return err
	}
	return c.Canvas.Draw(dc, c.Width, c.Height)
}

// assignSlots gives each bar series its place among the bars drawn at the
// same category: one slot per non stacked series and one per stack group.
func (c *Chart) assignSlots(visible []Series) {
	type axisKey struct {
		horizontal bool
		axis       int
	}
	type member struct {
		stacked bool
		kind    SeriesKind
		n       int
	}
	var (
		members = make(map[axisKey][]member)
		owner   = make(map[int]member)
		keys    = make(map[int]axisKey)
	)
	for _, s := range visible {
		k := s.Kind()
		if !k.IsBar() {
			continue
		}
		ak := axisKey{horizontal: k.IsHorizontal(), axis: s.ScalesXAt()}
		if k.IsHorizontal() {
			ak.axis = s.ScalesYAt()
		}
		m := member{n: s.ID()}
		if k.IsStacked() {
			m = member{stacked: true, kind: k, n: s.StackGroup()}
		}
		if !slices.Contains(members[ak], m) {
			members[ak] = append(members[ak], m)
		}
		owner[s.ID()] = m
		keys[s.ID()] = ak
	}
	c.slots = make(map[int]barSlot)
	for id, m := range owner {
		list := members[keys[id]]
		c.slots[id] = barSlot{
			index: slices.Index(list, m),
			count: len(list),
		}
	}
}

func (c *Chart) computeDrawMargin() Rect {
	// room taken by the labels of the axes and the title
	var space Padding
	for _, a := range c.YAxes {
		if a.Orientation == OrientRight {
			space.Right += a.labelSpace()
		} else {
			space.Left += a.labelSpace()
		}
	}
	for _, a := range c.XAxes {
		if a.Orientation == OrientTop {
			space.Top += a.labelSpace()
		} else {
			space.Bottom += a.labelSpace()
		}
	}
	if c.Title != "" {
		space.Top += FontSize * 2
	}
	area := Rect{
		X:      c.Padding.Left + space.Left,
		Y:      c.Padding.Top + space.Top,
		Width:  c.Width - c.Padding.Horizontal() - space.Horizontal(),
		Height: c.Height - c.Padding.Vertical() - space.Vertical(),
	}
	if area.Width < 0 {
		area.Width = 0
	}
	if area.Height < 0 {
		area.Height = 0
	}
	return area
}

func (c *Chart) drawAxes() {
	var (
		area   = c.drawMargin
		offset = make(map[Orientation]float64)
	)
	for _, a := range c.XAxes {
		pos := area.Bottom()
		if a.Orientation == OrientTop {
			pos = area.Y - offset[OrientTop]
		} else {
			pos += offset[OrientBottom]
			a.Orientation = OrientBottom
		}
		a.draw(area, pos)
		offset[a.Orientation] += a.labelSpace()
		for _, p := range a.paints() {
			c.Canvas.addPaint(p)
		}
	}
	for _, a := range c.YAxes {
		pos := area.X
		if a.Orientation == OrientRight {
			pos = area.Right() + offset[OrientRight]
		} else {
			pos -= offset[OrientLeft]
			a.Orientation = OrientLeft
		}
		a.draw(area, pos)
		offset[a.Orientation] += a.labelSpace()
		for _, p := range a.paints() {
			c.Canvas.addPaint(p)
		}
	}
}

func (c *Chart) drawTitle() {
	if c.Title == "" {
		if c.titlePaint != nil {
			c.titlePaint.ClearGeometries()
		}
		return
	}
	if c.titlePaint == nil {
		c.titlePaint = SolidFill("black")
		c.titlePaint.ZIndex = 1000
	}
	c.titlePaint.ClearGeometries()
	c.titlePaint.AddGeometry(&LabelGeometry{
		X:        c.Width / 2,
		Y:        c.Padding.Top + FontSize*0.4,
		Text:     c.Title,
		Size:     FontSize * 1.4,
		Anchor:   AnchorMiddle,
		Baseline: BaselineHanging,
	})
	c.Canvas.addPaint(c.titlePaint)
}

// drawLegend places the miniature of each series with its name. Nothing is
// drawn when the legend has no orientation.
func (c *Chart) drawLegend(series []Series) {
	for _, p := range c.legendPaints {
		c.Canvas.removePaint(p)
	}
	c.legendPaints = c.legendPaints[:0]
	if c.Legend.Orient == 0 {
		return
	}
	var (
		offset = FontSize * 1.4
		height = float64(len(series)) * offset
		width  float64
		text   = c.Legend.Paint
	)
	if text == nil {
		text = SolidFill("black")
	}
	text = text.CloneTask()
	text.ZIndex = 1001
	if c.Legend.Title != "" {
		height += offset
	}
	for i, s := range series {
		if n := float64(len(s.Name())); i == 0 || n > width {
			width = n
		}
	}
	width = width*FontSize*0.6 + miniatureSize + FontSize

	left, top, ok := c.legendOrigin(width, height)
	if !ok {
		return
	}
	if c.Legend.Title != "" {
		text.AddGeometry(&LabelGeometry{
			X:        left,
			Y:        top + offset/2,
			Text:     c.Legend.Title,
			Size:     FontSize,
			Baseline: BaselineMiddle,
		})
		top += offset
	}
	for i, s := range series {
		y := top + float64(i)*offset
		for _, p := range s.PaintContext().Paints() {
			mini := p.CloneTask()
			mini.ZIndex = 1001
			for _, g := range p.Geometries() {
				mini.AddGeometry(g.Translate(left, y+(offset-miniatureSize)/2))
			}
			c.legendPaints = append(c.legendPaints, mini)
		}
		text.AddGeometry(&LabelGeometry{
			X:        left + miniatureSize + FontSize*0.5,
			Y:        y + offset/2,
			Text:     s.Name(),
			Size:     FontSize,
			Baseline: BaselineMiddle,
		})
	}
	c.legendPaints = append(c.legendPaints, text)
	for _, p := range c.legendPaints {
		c.Canvas.addPaint(p)
	}
}

func (c *Chart) legendOrigin(width, height float64) (float64, float64, bool) {
	var left, top float64
	switch c.Legend.Orient {
	case OrientRight:
		left = c.Width - c.Padding.Right - width
		top = (c.Height - height) / 2
	case OrientRight | OrientBottom:
		left = c.Width - c.Padding.Right - width
		top = c.Height - c.Padding.Bottom - height
	case OrientBottom:
		left = (c.Width - width) / 2
		top = c.Height - c.Padding.Bottom - height
	case OrientLeft | OrientBottom:
		left = c.Padding.Left
		top = c.Height - c.Padding.Bottom - height
	case OrientLeft:
		left = c.Padding.Left
		top = (c.Height - height) / 2
	case OrientLeft | OrientTop:
		left = c.Padding.Left
		top = c.Padding.Top
	case OrientTop:
		left = (c.Width - width) / 2
		top = c.Padding.Top
	case OrientRight | OrientTop:
		left = c.Width - c.Padding.Right - width
		top = c.Padding.Top
	default:
		return 0, 0, false
	}
	return left, top, true
}
