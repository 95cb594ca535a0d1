package cartesian

import (
	"slices"
)

// Paint is a paint task: a brush (fill or stroke) and the geometries it
// draws. A paint is drawn by a canvas once it has been added to it.
type Paint struct {
	Color           string
	StrokeThickness float64
	Opacity         float64
	IsFill          bool
	ZIndex          int

	geometries []Geometry
}

func SolidFill(color string) *Paint {
	return &Paint{
		Color:  color,
		IsFill: true,
	}
}

func SolidStroke(color string, thickness float64) *Paint {
	return &Paint{
		Color:           color,
		StrokeThickness: thickness,
	}
}

// Alpha returns the opacity of the paint, a zero opacity meaning opaque.
func (p *Paint) Alpha() float64 {
	if p.Opacity <= 0 || p.Opacity > 1 {
		return 1
	}
	return p.Opacity
}

func (p *Paint) Thickness() float64 {
	if p.StrokeThickness <= 0 {
		return 1
	}
	return p.StrokeThickness
}

func (p *Paint) AddGeometry(g Geometry) {
	if g == nil || p.HasGeometry(g) {
		return
	}
	p.geometries = append(p.geometries, g)
}

func (p *Paint) RemoveGeometry(g Geometry) {
	if i := slices.Index(p.geometries, g); i >= 0 {
		p.geometries = slices.Delete(p.geometries, i, i+1)
	}
}

func (p *Paint) HasGeometry(g Geometry) bool {
	return slices.Contains(p.geometries, g)
}

func (p *Paint) Geometries() []Geometry {
	return slices.Clone(p.geometries)
}

func (p *Paint) ClearGeometries() {
	p.geometries = p.geometries[:0]
}

// CloneTask copies the brush of p without its geometries.
func (p *Paint) CloneTask() *Paint {
	x := *p
	x.geometries = nil
	return &x
}

// transfer moves every geometry of p to other.
func (p *Paint) transfer(other *Paint) {
	for _, g := range p.geometries {
		other.AddGeometry(g)
	}
	p.ClearGeometries()
}
