package cartesian

import (
	"math"
)

type Domain struct {
	fst float64
	lst float64
}

func NumberDomain(f, t float64) Domain {
	return Domain{
		fst: f,
		lst: t,
	}
}

func (d Domain) Diff(v float64) float64 {
	return v - d.fst
}

func (d Domain) Extend() float64 {
	return d.lst - d.fst
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

// Scaler maps chart values of a domain to pixels of a range. A range whose
// end is before its start gives an inverted scale, which is what a vertical
// axis uses.
type Scaler struct {
	Range
	Domain
}

func NumberScaler(dom Domain, rg Range) Scaler {
	return Scaler{
		Range:  rg,
		Domain: dom,
	}
}

func (s Scaler) ToPixels(v float64) float64 {
	ext := s.Extend()
	if ext == 0 {
		return s.F + s.Len()/2
	}
	return s.F + s.Diff(v)*s.Len()/ext
}

func (s Scaler) ToChartValues(px float64) float64 {
	n := s.Len()
	if n == 0 {
		return s.fst
	}
	return s.fst + (px-s.F)*s.Extend()/n
}

// MeasureInPixels gives the absolute size in pixels of a chart value delta.
func (s Scaler) MeasureInPixels(delta float64) float64 {
	ext := s.Extend()
	if ext == 0 {
		return 0
	}
	return math.Abs(delta * s.Len() / ext)
}
