package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/cartesian"
	"github.com/midbel/cartesian/internal/config"
	"github.com/midbel/cartesian/rasterdraw"
	"github.com/midbel/cartesian/svgdraw"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
)

// draw renders the CSV files given as arguments in one chart without a
// definition file. Each file becomes a series named after the file.
func main() {
	var (
		title  = flag.String("title", "", "chart title")
		kind   = flag.String("type", "line", "series kind")
		xcol   = flag.String("xcol", "", "name of x column, row number when empty")
		ycol   = flag.String("ycol", "", "name of y column")
		xlabel = flag.String("xlabel", "", "name of x axis")
		ylabel = flag.String("ylabel", "", "name of y axis")
		group  = flag.Int("group", 0, "stack group of stacked series")
		expand = flag.Bool("expand", false, "stack to 100%")
		smooth = flag.Float64("smooth", 0, "smoothness of lines")
		width  = flag.Float64("width", defaultWidth, "chart width")
		height = flag.Float64("height", defaultHeight, "chart height")
		legend = flag.String("legend", "top-right", "legend position")
		font   = flag.String("font", "", "font file used by png output")
		result = flag.String("file", "", "output file, stdout when empty")
	)
	flag.Parse()

	if *ycol == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: draw -ycol <column> [options] <file.csv>...")
		os.Exit(1)
	}
	chart := config.Chart{
		Name:   "draw",
		Title:  *title,
		Width:  *width,
		Height: *height,
		Legend: config.Legend{Position: *legend},
		X:      []config.Axis{{Name: *xlabel}},
		Y:      []config.Axis{{Name: *ylabel}},
	}
	mode := ""
	if *expand {
		mode = "expand"
	}
	for _, f := range flag.Args() {
		chart.Series = append(chart.Series, config.Series{
			Kind:       *kind,
			Name:       strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)),
			File:       f,
			X:          *xcol,
			Y:          *ycol,
			Group:      *group,
			Mode:       mode,
			Smoothness: *smooth,
		})
	}
	file := config.File{
		Charts: []config.Chart{chart},
	}
	if err := file.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ch, err := config.Build(chart, "", file.Styles())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating chart: %s\n", err)
		os.Exit(2)
	}
	if err := renderChart(*result, *font, ch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func renderChart(file, font string, ch *cartesian.Chart) error {
	var w io.Writer = os.Stdout
	if file != "" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	var err error
	if strings.EqualFold(filepath.Ext(file), ".png") {
		rc := rasterdraw.New(bw)
		rc.FontFile = font
		err = ch.Render(context.Background(), rc)
	} else {
		err = svgdraw.Render(context.Background(), bw, ch)
	}
	if err != nil {
		return errors.Join(err, bw.Flush())
	}
	return bw.Flush()
}
