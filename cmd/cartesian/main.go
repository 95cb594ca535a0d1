package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/midbel/cartesian"
	"github.com/midbel/cartesian/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func newRootCommand() *cobra.Command {
	var (
		file     string
		logLevel = "warn"
		noColor  bool
	)
	cmd := &cobra.Command{
		Use:           "cartesian",
		Short:         "Render cartesian charts described in YAML files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			cartesian.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
			if noColor {
				color.NoColor = true
			}
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "charts.yaml", "Chart definition file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newRenderCommand(&file),
		newBoundsCommand(&file),
		newServeCommand(&file),
	)
	return cmd
}

func parseLevel(str string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(str))); err != nil {
		return level, fmt.Errorf("%w: log level %q", errUsage, str)
	}
	return level, nil
}

func loadFile(path string) (*config.File, string, error) {
	f, baseDir, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := f.Validate(); err != nil {
		return nil, "", err
	}
	return f, baseDir, nil
}
