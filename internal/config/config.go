// Package config reads chart definitions from YAML files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/cartesian"
	"gopkg.in/yaml.v3"
)

type File struct {
	Theme  string   `yaml:"theme"`
	Colors []string `yaml:"colors"`
	Font   string   `yaml:"font"`
	Charts []Chart  `yaml:"charts"`
}

type Chart struct {
	Name    string   `yaml:"name"`
	Title   string   `yaml:"title"`
	Width   float64  `yaml:"width"`
	Height  float64  `yaml:"height"`
	Padding *Padding `yaml:"padding"`
	Legend  Legend   `yaml:"legend"`
	X       []Axis   `yaml:"x"`
	Y       []Axis   `yaml:"y"`
	Series  []Series `yaml:"series"`
}

type Padding struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

type Legend struct {
	Title    string `yaml:"title"`
	Position string `yaml:"position"`
}

type Axis struct {
	Name      string   `yaml:"name"`
	Position  string   `yaml:"position"`
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	Labels    []string `yaml:"labels"`
	Step      float64  `yaml:"step"`
	ForceStep bool     `yaml:"force-step"`
	Inverted  bool     `yaml:"inverted"`
}

type Series struct {
	Kind   string    `yaml:"kind"`
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
	// File is a CSV file with a header. X and Y name its columns. Without
	// X, the row number is used.
	File string `yaml:"file"`
	X    string `yaml:"x"`
	Y    string `yaml:"y"`

	Group int    `yaml:"group"`
	Mode  string `yaml:"mode"`

	Stroke     string  `yaml:"stroke"`
	Fill       string  `yaml:"fill"`
	Thickness  float64 `yaml:"thickness"`
	Opacity    float64 `yaml:"opacity"`
	Smoothness float64 `yaml:"smoothness"`
	Size       float64 `yaml:"size"`
	Width      float64 `yaml:"width"`
	Pivot      float64 `yaml:"pivot"`
	Labels     bool    `yaml:"labels"`

	Hidden bool `yaml:"hidden"`
	XAxis  int  `yaml:"x-axis"`
	YAxis  int  `yaml:"y-axis"`
	Z      int  `yaml:"z"`
}

// FieldError reports an invalid field of a chart definition.
type FieldError struct {
	Chart string
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("chart %s: %s: %s", e.Chart, e.Field, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

var (
	ErrMissing = errors.New("value is required")
	ErrInvalid = errors.New("invalid value")
)

// Load decodes the file at path. It returns the directory of the file,
// used to resolve the data files of the series.
func Load(path string) (*File, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, "", fmt.Errorf("chart file path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	f, err := Decode(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	baseDir := filepath.Dir(path)
	if baseDir == "" {
		baseDir = "."
	}
	baseDir, _ = filepath.Abs(baseDir)
	return f, baseDir, nil
}

func Decode(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	for i := range f.Charts {
		if f.Charts[i].Name == "" {
			f.Charts[i].Name = fmt.Sprintf("chart-%d", i+1)
		}
	}
	return &f, nil
}

func (f *File) Validate() error {
	if f == nil {
		return fmt.Errorf("chart file is required")
	}
	switch strings.ToLower(f.Theme) {
	case "", "light":
	default:
		return fmt.Errorf("theme %s: %w", f.Theme, ErrInvalid)
	}
	if len(f.Charts) == 0 {
		return fmt.Errorf("no chart defined")
	}
	seen := make(map[string]bool)
	var errs []error
	for _, c := range f.Charts {
		if seen[c.Name] {
			errs = append(errs, FieldError{Chart: c.Name, Field: "name", Err: fmt.Errorf("duplicate name: %w", ErrInvalid)})
		}
		seen[c.Name] = true
		errs = append(errs, c.validate()...)
	}
	return errors.Join(errs...)
}

func (c Chart) validate() []error {
	var errs []error
	fail := func(field string, err error) {
		errs = append(errs, FieldError{Chart: c.Name, Field: field, Err: err})
	}
	if c.Width < 0 {
		fail("width", ErrInvalid)
	}
	if c.Height < 0 {
		fail("height", ErrInvalid)
	}
	if _, err := cartesian.ParseOrientation(c.Legend.Position); err != nil {
		fail("legend.position", err)
	}
	for i, a := range c.X {
		if err := a.validate(false); err != nil {
			fail(fmt.Sprintf("x[%d]", i), err)
		}
	}
	for i, a := range c.Y {
		if err := a.validate(true); err != nil {
			fail(fmt.Sprintf("y[%d]", i), err)
		}
	}
	if len(c.Series) == 0 {
		fail("series", ErrMissing)
	}
	for i, s := range c.Series {
		field := fmt.Sprintf("series[%d]", i)
		if s.Name != "" {
			field = fmt.Sprintf("series[%s]", s.Name)
		}
		if err := s.validate(); err != nil {
			fail(field, err)
		}
		if s.XAxis < 0 || (s.XAxis > 0 && s.XAxis >= len(c.X)) {
			fail(field+".x-axis", ErrInvalid)
		}
		if s.YAxis < 0 || (s.YAxis > 0 && s.YAxis >= len(c.Y)) {
			fail(field+".y-axis", ErrInvalid)
		}
	}
	return errs
}

func (a Axis) validate(vertical bool) error {
	if !(a.Step >= 0) || math.IsInf(a.Step, 1) {
		return fmt.Errorf("step %g: %w", a.Step, ErrInvalid)
	}
	if a.ForceStep && a.Step == 0 {
		return fmt.Errorf("force-step without step: %w", ErrMissing)
	}
	if a.Position == "" {
		return nil
	}
	o, err := cartesian.ParseOrientation(a.Position)
	if err != nil {
		return err
	}
	if o.Vertical() != vertical {
		return fmt.Errorf("position %s: %w", a.Position, ErrInvalid)
	}
	return nil
}

func (s Series) validate() error {
	kind, err := cartesian.ParseKind(s.Kind)
	if err != nil {
		return err
	}
	switch {
	case s.File == "" && len(s.Values) == 0:
		return fmt.Errorf("values or file: %w", ErrMissing)
	case s.File != "" && len(s.Values) > 0:
		return fmt.Errorf("values and file are exclusive: %w", ErrInvalid)
	case s.File != "" && s.Y == "":
		return fmt.Errorf("y column: %w", ErrMissing)
	}
	switch strings.ToLower(s.Mode) {
	case "", "normal":
	case "expand":
		if !kind.IsStacked() {
			return fmt.Errorf("mode expand on %s: %w", kind, ErrInvalid)
		}
	default:
		return fmt.Errorf("mode %s: %w", s.Mode, ErrInvalid)
	}
	if s.Smoothness < 0 || s.Smoothness > 1 {
		return fmt.Errorf("smoothness: %w", ErrInvalid)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity: %w", ErrInvalid)
	}
	return nil
}
