package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"time"

	"github.com/midbel/cartesian"
	"github.com/midbel/cartesian/internal/config"
	"github.com/spf13/cobra"
)

func newServeCommand(file *string) *cobra.Command {
	addr := ":8080"
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the charts of a file, rendered on each request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			return runServe(ctx, addr, *file)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", addr, "Listening address")
	return cmd
}

func runServe(ctx context.Context, addr, file string) error {
	if _, _, err := loadFile(file); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           newChartHandler(file),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	cartesian.Logger().Info("serving charts", slog.String("addr", addr), slog.String("file", file))
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newChartHandler serves an index of the charts of file and each chart as
// svg or png. The file is read again on each request so edits show up
// without a restart.
func newChartHandler(file string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		f, _, err := loadFile(file)
		if err != nil {
			serveError(w, r, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintln(w, "<ul>")
		for _, c := range f.Charts {
			name := html.EscapeString(c.Name)
			title := c.Title
			if title == "" {
				title = c.Name
			}
			fmt.Fprintf(w, "<li><a href=\"/charts/%s.svg\">%s</a></li>\n", name, html.EscapeString(title))
		}
		fmt.Fprintln(w, "</ul>")
	})
	mux.HandleFunc("GET /charts/{chart}", func(w http.ResponseWriter, r *http.Request) {
		var (
			name   = r.PathValue("chart")
			format = strings.TrimPrefix(path.Ext(name), ".")
		)
		name = strings.TrimSuffix(name, path.Ext(name))
		switch format {
		case "":
			format = "svg"
		case "svg", "png":
		default:
			serveError(w, r, http.StatusNotFound, fmt.Errorf("%s: unsupported format", format))
			return
		}
		f, baseDir, err := loadFile(file)
		if err != nil {
			serveError(w, r, http.StatusInternalServerError, err)
			return
		}
		list, err := selectCharts(f.Charts, []string{name})
		if err != nil {
			serveError(w, r, http.StatusNotFound, err)
			return
		}
		ch, err := config.Build(list[0], baseDir, f.Styles())
		if err != nil {
			serveError(w, r, http.StatusInternalServerError, err)
			return
		}
		var buf bytes.Buffer
		if err := drawChart(r.Context(), &buf, ch, format, resolveFont(baseDir, f.Font)); err != nil {
			serveError(w, r, http.StatusInternalServerError, err)
			return
		}
		if format == "png" {
			w.Header().Set("Content-Type", "image/png")
		} else {
			w.Header().Set("Content-Type", "image/svg+xml")
		}
		w.Write(buf.Bytes())
	})
	return mux
}

func serveError(w http.ResponseWriter, r *http.Request, code int, err error) {
	cartesian.Logger().Warn("request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.String("err", err.Error()),
	)
	http.Error(w, err.Error(), code)
}
