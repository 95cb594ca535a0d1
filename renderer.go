package cartesian

import (
	"github.com/midbel/slices"
)

// DrawingContext draws the paints of a canvas on a concrete surface.
type DrawingContext interface {
	Begin(width, height float64) error
	BeginPaint(*Paint) error
	DrawRect(*RectGeometry, *Paint) error
	DrawCircle(*CircleGeometry, *Paint) error
	DrawPath(*PathGeometry, *Paint) error
	DrawLabel(*LabelGeometry, *Paint) error
	EndPaint(*Paint) error
	End() error
}

type Interpolation int

const (
	Linear Interpolation = iota
	Cubic
	StepAfter
)

// trace appends pts to pat. The first point starts a new sub path when
// move is set, otherwise it is joined with a line. reverse must be set when
// pts are walked from the last secondary value to the first one so that
// steps keep the same shape in both directions.
func trace(pat *PathGeometry, pts []Point, interp Interpolation, smoothness float64, move, reverse bool) {
	if len(pts) == 0 {
		return
	}
	var (
		ori     = slices.Fst(pts)
		stretch = clamp(smoothness, 0, 1) / 2
	)
	if move {
		pat.MoveTo(ori.X, ori.Y)
	} else {
		pat.LineTo(ori.X, ori.Y)
	}
	for _, pos := range slices.Rest(pts) {
		switch interp {
		case Cubic:
			var (
				diff  = (pos.X - ori.X) * stretch
				ctrl1 = ori
				ctrl2 = pos
			)
			ctrl1.X += diff
			ctrl2.X -= diff
			pat.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pos.X, pos.Y)
		case StepAfter:
			if reverse {
				pat.LineTo(ori.X, pos.Y)
			} else {
				pat.LineTo(pos.X, ori.Y)
			}
			pat.LineTo(pos.X, pos.Y)
		default:
			pat.LineTo(pos.X, pos.Y)
		}
		ori = pos
	}
}

// traceArea appends to pat a closed area between the line going through
// tops and the one going through bottoms. Both slices have the same
// length.
func traceArea(pat *PathGeometry, tops, bottoms []Point, interp Interpolation, smoothness float64) {
	if len(tops) == 0 {
		return
	}
	trace(pat, tops, interp, smoothness, true, false)

	back := make([]Point, len(bottoms))
	for i := range bottoms {
		back[len(bottoms)-1-i] = bottoms[i]
	}
	trace(pat, back, interp, smoothness, false, true)
	pat.Close()
}

// splitGaps splits points in runs of consecutive non empty points.
func splitGaps(points []ChartPoint) [][]ChartPoint {
	var (
		all [][]ChartPoint
		cur []ChartPoint
	)
	for _, p := range points {
		if p.IsEmpty() {
			if len(cur) > 0 {
				all = append(all, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		all = append(all, cur)
	}
	return all
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
