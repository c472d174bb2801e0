package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"geofence/internal/config"
	"geofence/internal/logger"
	"geofence/internal/metrics"
	"geofence/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	f, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	lg := logger.Setup(f, cfg.LogLevel, cfg.LogFormat)
	lg.Info("starting geofence", "center_lon", cfg.CenterLon, "center_lat", cfg.CenterLat, "span", cfg.SpanDeg)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("metrics server stopped", "addr", cfg.MetricsAddr, "err", err)
			}
		}()
		defer srv.Close()
	}

	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(*cfg, lg, os.Args[1])
	} else {
		m = tui.New(*cfg, lg)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		lg.Error("program exited", "err", err)
		log.Fatal(err)
	}
	lg.Info("bye")
}
