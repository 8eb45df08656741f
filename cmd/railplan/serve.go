package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/antigravity/railplan/internal/audit"
	"github.com/antigravity/railplan/internal/httpapi"
	"github.com/antigravity/railplan/internal/logging"
	"github.com/antigravity/railplan/internal/metrics"
	"github.com/antigravity/railplan/internal/railservice"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the rail dataset and serve the journey-query HTTP façade",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("loading rail dataset", "prefix", cfg.Data.Prefix)
	loadStart := time.Now()
	rail, err := railservice.LoadServices(cfg.Data.Prefix)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	loadDuration := time.Since(loadStart)
	metrics.DatasetLoadDuration.Observe(loadDuration.Seconds())
	metrics.DatasetStations.Set(float64(rail.Stations.Count()))
	metrics.DatasetFixedLinks.Set(float64(len(rail.FixedLinks)))
	metrics.DatasetServices.Set(float64(len(rail.Timetable.Services)))

	total, min, max := rail.Graph.StatEdges()
	slog.Info("dataset loaded",
		"stations", rail.Stations.Count(),
		"fixed_links", len(rail.FixedLinks),
		"services", len(rail.Timetable.Services),
		"edges_total", total, "edges_min", min, "edges_max", max,
		"duration", loadDuration)

	ctx := context.Background()
	auditSink, err := audit.Open(ctx, cfg.Audit.DSN)
	if err != nil {
		return fmt.Errorf("audit sink: %w", err)
	}
	defer auditSink.Close()

	handler := httpapi.New(rail, auditSink)
	router := httpapi.Router(handler, cfg.Server.CORSOrigins, cfg.Server.MetricsEnabled)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting HTTP server", "addr", addr)
	return http.ListenAndServe(addr, router)
}
