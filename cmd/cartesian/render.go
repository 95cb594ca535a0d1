package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/midbel/cartesian"
	"github.com/midbel/cartesian/internal/config"
	"github.com/midbel/cartesian/rasterdraw"
	"github.com/midbel/cartesian/svgdraw"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type renderOptions struct {
	outDir string
	format string
	jobs   int
	only   []string
}

func newRenderCommand(file *string) *cobra.Command {
	opts := renderOptions{
		outDir: ".",
		format: "svg",
		jobs:   runtime.NumCPU(),
	}
	cmd := &cobra.Command{
		Use:   "render [chart...]",
		Short: "Render the charts of a file, all of them when none is named",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.only = args
			switch opts.format {
			case "svg", "png":
			default:
				return fmt.Errorf("%w: format %q (svg, png)", errUsage, opts.format)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runRender(ctx, cmd.OutOrStdout(), *file, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", opts.outDir, "Output directory")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (svg, png)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "Charts rendered concurrently")
	return cmd
}

func runRender(ctx context.Context, out io.Writer, file string, opts renderOptions) error {
	f, baseDir, err := loadFile(file)
	if err != nil {
		return err
	}
	charts, err := selectCharts(f.Charts, opts.only)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	var (
		styles  = f.Styles()
		done    = color.New(color.FgGreen).SprintFunc()
		results = make([]string, len(charts))
	)
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		eg.SetLimit(opts.jobs)
	}
	for i, c := range charts {
		eg.Go(func() error {
			ch, err := config.Build(c, baseDir, styles)
			if err != nil {
				return err
			}
			path := filepath.Join(opts.outDir, c.Name+"."+opts.format)
			if err := writeChart(egCtx, path, ch, opts.format, resolveFont(baseDir, f.Font)); err != nil {
				return fmt.Errorf("chart %s: %w", c.Name, err)
			}
			results[i] = path
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s %s\n", done("rendered"), r)
	}
	return nil
}

func writeChart(ctx context.Context, path string, ch *cartesian.Chart, format, font string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()

	bw := bufio.NewWriter(w)
	if err := drawChart(ctx, bw, ch, format, font); err != nil {
		return err
	}
	return bw.Flush()
}

func drawChart(ctx context.Context, w io.Writer, ch *cartesian.Chart, format, font string) error {
	if format == "png" {
		dc := rasterdraw.New(w)
		dc.FontFile = font
		return ch.Render(ctx, dc)
	}
	return svgdraw.Render(ctx, w, ch)
}

func resolveFont(baseDir, font string) string {
	if font == "" || filepath.IsAbs(font) {
		return font
	}
	return filepath.Join(baseDir, font)
}

func selectCharts(all []config.Chart, names []string) ([]config.Chart, error) {
	if len(names) == 0 {
		return all, nil
	}
	var list []config.Chart
	for _, n := range names {
		var found bool
		for _, c := range all {
			if strings.EqualFold(c.Name, n) {
				list = append(list, c)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: chart %s not found", errUsage, n)
		}
	}
	return list, nil
}
