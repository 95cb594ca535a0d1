package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/midbel/cartesian/internal/config"
	"github.com/spf13/cobra"
)

func newBoundsCommand(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds [chart...]",
		Short: "Print the data bounds of each series",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runBounds(ctx, cmd.OutOrStdout(), *file, args)
		},
	}
}

func runBounds(ctx context.Context, out io.Writer, file string, names []string) error {
	f, baseDir, err := loadFile(file)
	if err != nil {
		return err
	}
	charts, err := selectCharts(f.Charts, names)
	if err != nil {
		return err
	}
	var (
		styles = f.Styles()
		header = color.New(color.FgWhite, color.Underline)
		title  = color.New(color.FgCyan, color.Bold)
	)
	for _, c := range charts {
		ch, err := config.Build(c, baseDir, styles)
		if err != nil {
			return err
		}
		if err := ch.Measure(ctx); err != nil {
			return fmt.Errorf("chart %s: %w", c.Name, err)
		}
		title.Fprintln(out, c.Name)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		header.Fprintln(tw, "SERIES\tKIND\tSTACK\tX MIN\tX MAX\tY MIN\tY MAX\tGAP")
		for _, s := range ch.Series() {
			b, ok := ch.SeriesBounds(s)
			if !ok {
				fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t-\t-\n", s.Name(), s.Kind())
				continue
			}
			stack := "-"
			if s.Kind().IsStacked() {
				stack = strconv.Itoa(s.StackGroup())
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				s.Name(), s.Kind(), stack,
				formatFloat(b.Secondary.Min), formatFloat(b.Secondary.Max),
				formatFloat(b.Primary.Min), formatFloat(b.Primary.Max),
				formatFloat(b.Secondary.Gap()),
			)
		}
		tw.Flush()
		fmt.Fprintln(out)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
