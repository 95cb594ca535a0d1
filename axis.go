package cartesian

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

func (o Orientation) String() string {
	switch o {
	case OrientTop:
		return "top"
	case OrientRight:
		return "right"
	case OrientBottom:
		return "bottom"
	case OrientLeft:
		return "left"
	default:
		return "none"
	}
}

// ParseOrientation reads names like "left" or "top-right".
func ParseOrientation(str string) (Orientation, error) {
	var o Orientation
	for _, part := range strings.Split(strings.ToLower(str), "-") {
		switch strings.TrimSpace(part) {
		case "top":
			o |= OrientTop
		case "right":
			o |= OrientRight
		case "bottom":
			o |= OrientBottom
		case "left":
			o |= OrientLeft
		case "", "none":
		default:
			return 0, fmt.Errorf("%s: unknown orientation", str)
		}
	}
	if o&(OrientTop|OrientBottom) == OrientTop|OrientBottom || o&(OrientLeft|OrientRight) == OrientLeft|OrientRight {
		return 0, fmt.Errorf("%s: contradictory orientation", str)
	}
	return o, nil
}

// Separator is a tick of an axis.
type Separator struct {
	Value float64
	Label string
}

type Axis struct {
	Name string
	Orientation

	MinLimit *float64
	MaxLimit *float64

	// Labels names the values 0, 1, 2... of the axis, as a category axis.
	Labels  []string
	Labeler func(float64) string

	// MinStep is the smallest distance between two separators. When
	// ForceStepToMin is set, separators are exactly MinStep apart.
	MinStep        float64
	ForceStepToMin bool
	Inverted       bool

	TextSize       float64
	WithInnerTicks bool
	WithLabelTicks bool
	WithOuterTicks bool

	LinePaint       *Paint
	LabelsPaint     *Paint
	SeparatorsPaint *Paint

	dataBounds Bounds
	scaler     Scaler
}

func NewAxis(orient Orientation) *Axis {
	return &Axis{
		Orientation:    orient,
		WithInnerTicks: true,
		WithLabelTicks: true,
		WithOuterTicks: true,
		dataBounds:     NewBounds(),
	}
}

func (a *Axis) Reset() {
	a.dataBounds = NewBounds()
}

func (a *Axis) appendBounds(b Bounds) {
	a.dataBounds.AppendBounds(b)
}

func (a *Axis) DataBounds() Bounds {
	return a.dataBounds
}

// VisibleBounds returns the data bounds narrowed or widened by the limits
// of the axis. An empty axis shows 0 to 1 and an axis whose bounds collapse
// to a single value is widened by one unit on each side.
func (a *Axis) VisibleBounds() Bounds {
	b := a.dataBounds
	if b.IsEmpty() {
		b.Min, b.Max = 0, 1
	}
	if a.MinLimit != nil {
		b.Min = *a.MinLimit
	}
	if a.MaxLimit != nil {
		b.Max = *a.MaxLimit
	}
	if b.Min > b.Max {
		b.Min, b.Max = b.Max, b.Min
	}
	if b.Min == b.Max {
		b.Min--
		b.Max++
	}
	return b
}

func (a *Axis) Scaler() Scaler {
	return a.scaler
}

func (a *Axis) setScaler(from, to float64) {
	if a.Inverted {
		from, to = to, from
	}
	vb := a.VisibleBounds()
	a.scaler = NumberScaler(NumberDomain(vb.Min, vb.Max), NewRange(from, to))
}

func (a *Axis) fontSize() float64 {
	if a.TextSize <= 0 {
		return FontSize
	}
	return a.TextSize
}

// Label formats v. Labels wins over Labeler which wins over the default
// formatting.
func (a *Axis) Label(v float64) string {
	if len(a.Labels) > 0 {
		i := int(math.Round(v))
		if i < 0 || i >= len(a.Labels) || math.Abs(v-float64(i)) > 1e-9 {
			return ""
		}
		return a.Labels[i]
	}
	if a.Labeler != nil {
		return a.Labeler(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// maxSeparators bounds the ticks of a forced step. Wider axes fall back to
// the default ticks.
const maxSeparators = 1000

// Separators computes the ticks of the axis in its visible bounds.
func (a *Axis) Separators() []Separator {
	var (
		vb   = a.VisibleBounds()
		list []Separator
	)
	switch {
	case len(a.Labels) > 0:
		first := math.Max(0, math.Ceil(vb.Min))
		for v := first; v <= vb.Max && int(v) < len(a.Labels); v++ {
			list = append(list, Separator{Value: v, Label: a.Label(v)})
		}
	case a.ForceStepToMin && a.MinStep > 0 && vb.Delta()/a.MinStep <= maxSeparators:
		first := math.Ceil(vb.Min/a.MinStep) * a.MinStep
		for i := 0; i <= maxSeparators; i++ {
			v := first + float64(i)*a.MinStep
			if v > vb.Max+a.MinStep*1e-9 {
				break
			}
			list = append(list, Separator{Value: v, Label: a.Label(v)})
		}
	default:
		var last float64
		for _, t := range (plot.DefaultTicks{}).Ticks(vb.Min, vb.Max) {
			if t.IsMinor() {
				continue
			}
			if a.MinStep > 0 && len(list) > 0 && t.Value-last < a.MinStep {
				continue
			}
			label := t.Label
			if a.Labeler != nil {
				label = a.Labeler(t.Value)
			}
			list = append(list, Separator{Value: t.Value, Label: label})
			last = t.Value
		}
	}
	return list
}

// labelSpace estimates the room the labels and the name of the axis take
// perpendicularly to the axis.
func (a *Axis) labelSpace() float64 {
	var (
		size  = a.fontSize()
		space float64
	)
	if a.WithInnerTicks {
		space += size * 0.8
	}
	if a.WithLabelTicks {
		if a.Vertical() {
			var width int
			for _, s := range a.Separators() {
				width = max(width, len(s.Label))
			}
			space += float64(width)*size*0.6 + size*0.4
		} else {
			space += size * 1.6
		}
	}
	if a.Name != "" {
		space += size * 1.6
	}
	return space
}

func (a *Axis) paints() []*Paint {
	return []*Paint{a.LinePaint, a.LabelsPaint, a.SeparatorsPaint}
}

func (a *Axis) ensurePaints() {
	if a.LinePaint == nil {
		a.LinePaint = SolidStroke("black", 1)
	}
	if a.LabelsPaint == nil {
		a.LabelsPaint = SolidFill("black")
	}
	if a.SeparatorsPaint == nil {
		a.SeparatorsPaint = SolidStroke("#e6e6e6", 1)
	}
	a.SeparatorsPaint.ZIndex = -1
	a.LinePaint.ZIndex = 1000
	a.LabelsPaint.ZIndex = 1000
}

// draw fills the paints of the axis. pos is the position of the domain
// line: a y coordinate for an horizontal axis and an x coordinate for a
// vertical one. area is the draw margin of the chart.
func (a *Axis) draw(area Rect, pos float64) {
	a.ensurePaints()
	for _, p := range a.paints() {
		p.ClearGeometries()
	}
	var (
		size = a.fontSize()
		line PathGeometry
	)
	if a.Vertical() {
		line.MoveTo(pos, area.Y)
		line.LineTo(pos, area.Bottom())
	} else {
		line.MoveTo(area.X, pos)
		line.LineTo(area.Right(), pos)
	}
	a.LinePaint.AddGeometry(&line)

	sign := 1.0
	if a.Reverse() {
		sign = -1
	}
	for _, s := range a.Separators() {
		px := a.scaler.ToPixels(s.Value)
		if a.WithInnerTicks {
			a.LinePaint.AddGeometry(a.lineTick(px, pos, sign*size*0.8))
		}
		if a.WithOuterTicks {
			a.SeparatorsPaint.AddGeometry(a.outerTick(px, area))
		}
		if a.WithLabelTicks && s.Label != "" {
			a.LabelsPaint.AddGeometry(a.tickText(s.Label, px, pos, sign, size))
		}
	}
	if a.Name != "" {
		a.LabelsPaint.AddGeometry(a.nameText(area, pos, sign, size))
	}
}

func (a *Axis) lineTick(px, pos, length float64) Geometry {
	var tick PathGeometry
	if a.Vertical() {
		tick.MoveTo(pos, px)
		tick.LineTo(pos-length, px)
	} else {
		tick.MoveTo(px, pos)
		tick.LineTo(px, pos+length)
	}
	return &tick
}

func (a *Axis) outerTick(px float64, area Rect) Geometry {
	var tick PathGeometry
	if a.Vertical() {
		tick.MoveTo(area.X, px)
		tick.LineTo(area.Right(), px)
	} else {
		tick.MoveTo(px, area.Y)
		tick.LineTo(px, area.Bottom())
	}
	return &tick
}

func (a *Axis) tickText(str string, px, pos, sign, size float64) Geometry {
	text := LabelGeometry{
		Text: str,
		Size: size,
	}
	switch {
	case a.Vertical():
		text.X = pos - sign*size*1.2
		text.Y = px
		text.Baseline = BaselineMiddle
		text.Anchor = AnchorEnd
		if a.Reverse() {
			text.Anchor = AnchorStart
		}
	default:
		text.X = px
		text.Y = pos + sign*size*1.2
		text.Anchor = AnchorMiddle
		text.Baseline = BaselineHanging
		if a.Reverse() {
			text.Baseline = BaselineAuto
		}
	}
	return &text
}

func (a *Axis) nameText(area Rect, pos, sign, size float64) Geometry {
	text := LabelGeometry{
		Text:   a.Name,
		Size:   size,
		Anchor: AnchorMiddle,
	}
	offset := a.labelSpace() - size*0.8
	if a.Vertical() {
		text.X = pos - sign*offset
		text.Y = area.Y + area.Height/2
		text.Baseline = BaselineMiddle
	} else {
		text.X = area.X + area.Width/2
		text.Y = pos + sign*offset
		text.Baseline = BaselineHanging
	}
	return &text
}
