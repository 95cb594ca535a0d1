package cartesian

import (
	"sync"
)

// Initializer gives the default look of charts and series.
type Initializer interface {
	ConstructChart(*Chart)
	ApplyStyleToSeries(Series, Palette)
}

// StyleBuilder registers the initializer and the rules applied to every
// chart and series. An initializer must be registered before the builder
// is used.
type StyleBuilder struct {
	mu          sync.RWMutex
	initializer Initializer
	colors      Palette
	chartRules  []func(*Chart)
	seriesRules map[SeriesKind][]func(Series)
}

func NewStyleBuilder() *StyleBuilder {
	return &StyleBuilder{
		colors:      Category10,
		seriesRules: make(map[SeriesKind][]func(Series)),
	}
}

var (
	defaultStyles     *StyleBuilder
	defaultStylesOnce sync.Once
)

// Styles returns the builder used by charts without their own.
func Styles() *StyleBuilder {
	defaultStylesOnce.Do(func() {
		defaultStyles = NewStyleBuilder()
	})
	return defaultStyles
}

// Configure runs fn on the package style builder.
func Configure(fn func(*StyleBuilder)) {
	fn(Styles())
}

func (b *StyleBuilder) UseInitializer(i Initializer) *StyleBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initializer = i
	return b
}

func (b *StyleBuilder) UseColors(p Palette) *StyleBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(p) > 0 {
		b.colors = p
	}
	return b
}

func (b *StyleBuilder) HasRuleForChart(fn func(*Chart)) *StyleBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chartRules = append(b.chartRules, fn)
	return b
}

func (b *StyleBuilder) HasRuleFor(kind SeriesKind, fn func(Series)) *StyleBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seriesRules == nil {
		b.seriesRules = make(map[SeriesKind][]func(Series))
	}
	b.seriesRules[kind] = append(b.seriesRules[kind], fn)
	return b
}

func (b *StyleBuilder) Colors() Palette {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.colors
}

// Current returns the registered initializer or ErrNoInitializer.
func (b *StyleBuilder) Current() (Initializer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.initializer == nil {
		return nil, ErrNoInitializer
	}
	return b.initializer, nil
}

func (b *StyleBuilder) ApplyStyleToChart(c *Chart) error {
	ini, err := b.Current()
	if err != nil {
		return err
	}
	ini.ConstructChart(c)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.chartRules {
		fn(c)
	}
	return nil
}

func (b *StyleBuilder) ApplyStyleToSeries(s Series) error {
	ini, err := b.Current()
	if err != nil {
		return err
	}
	ini.ApplyStyleToSeries(s, b.Colors())

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.seriesRules[s.Kind()] {
		fn(s)
	}
	return nil
}

type strokeFiller interface {
	Stroke() *Paint
	Fill() *Paint
	SetStroke(*Paint)
	SetFill(*Paint)
}

// Theme is an Initializer giving series a color of its palette by id.
// Paints already set on a series are kept.
type Theme struct {
	Padding         Padding
	StrokeThickness float64
	FillOpacity     float64
	AreaOpacity     float64
	GeometrySize    float64
}

func LightTheme() Theme {
	return Theme{
		Padding:         NewPadding(20, 20, 20, 20),
		StrokeThickness: 2,
		FillOpacity:     1,
		AreaOpacity:     0.4,
		GeometrySize:    8,
	}
}

func (t Theme) ConstructChart(c *Chart) {
	if c.Padding.IsZero() {
		c.Padding = t.Padding
	}
}

func (t Theme) ApplyStyleToSeries(s Series, colors Palette) {
	sf, ok := s.(strokeFiller)
	if !ok {
		return
	}
	color := colors.At(s.ID())
	switch s.Kind() {
	case KindLine, KindStepLine:
		if sf.Stroke() == nil {
			sf.SetStroke(SolidStroke(color, t.StrokeThickness))
		}
		if ls, ok := s.(interface{ setMarkers(string, float64) }); ok {
			ls.setMarkers(color, t.GeometrySize)
		}
	case KindStackedArea, KindStackedStepArea:
		if sf.Fill() == nil {
			p := SolidFill(color)
			p.Opacity = t.AreaOpacity
			sf.SetFill(p)
		}
		if sf.Stroke() == nil {
			sf.SetStroke(SolidStroke(color, t.StrokeThickness))
		}
	case KindScatter:
		if sf.Fill() == nil {
			p := SolidFill(color)
			p.Opacity = 0.6
			sf.SetFill(p)
		}
	default:
		if sf.Fill() == nil {
			p := SolidFill(color)
			p.Opacity = t.FillOpacity
			sf.SetFill(p)
		}
	}
}
