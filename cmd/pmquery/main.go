package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rivo/tview"

	"github.com/xnaught/PresentMon-sub004/pkg/config"
	"github.com/xnaught/PresentMon-sub004/pkg/export"
	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
	"github.com/xnaught/PresentMon-sub004/pkg/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("pmquery %s\n", version.String())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		return // help was shown
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := log.New(os.Stderr, "[pmquery] ", log.LstdFlags|log.Lmicroseconds)
	if cfg.ConfigFile != "" {
		logger.Printf("Using config file: %s", cfg.ConfigFile)
	}

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.DumpIntrospection != "" {
		return dumpIntrospection(ctx, provider, cfg.DumpIntrospection, logger)
	}

	aggregator := telemetry.NewAggregator(telemetry.RealClock{}, telemetry.DefaultConfig())
	aggregator.Start(ctx)
	defer aggregator.Stop()
	publishers := telemetry.MultiPublisher{aggregator}

	if cfg.Outputs.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		publishers = append(publishers, telemetry.NewPrometheusPublisher(reg))
		server := startMetricsServer(cfg.Outputs.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	app, err := NewApp(ctx, cfg, provider, publishers, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Printf("ERROR: %v", err)
		}
	}()
	for _, st := range app.statics {
		logger.Printf("%s: %s", st.label, st.value)
	}

	if cfg.Outputs.DgraphAddr != "" {
		exportCatalog(ctx, app, cfg.Outputs.DgraphAddr, logger)
	}
	if cfg.Outputs.RelayURL != "" {
		relay, err := export.ConnectRelay(ctx, cfg.Outputs.RelayURL)
		if err != nil {
			return err
		}
		publisher := export.NewRelayPublisher(relay, *cfg.Outputs.NostrKeyPair, app.Session().ID().String())
		defer publisher.Close()
		app.SetRelay(publisher)
		logger.Printf("Publishing samples to %s as %s", cfg.Outputs.RelayURL, cfg.Outputs.NostrKeyPair.PublicKeyBech32)
	}

	interval := time.Duration(cfg.Query.PollIntervalMs) * time.Millisecond
	if cfg.Watch {
		ui := NewWatchView(tview.NewApplication(), app, aggregator, app.statics, app.Pid(), interval)
		if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
	return NewCLI(app, aggregator, interval, logger).Run(ctx)
}

func startMetricsServer(addr string, reg *prometheus.Registry, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Printf("Serving prometheus metrics on %s/metrics", addr)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("ERROR: metrics server failed: %v", err)
		}
	}()
	return server
}

// exportCatalog stores the metric catalog in dgraph. Failures are logged;
// polling does not depend on the export.
func exportCatalog(ctx context.Context, app *App, addr string, logger *log.Logger) {
	exporter, err := export.NewDgraphExporter(addr, logger)
	if err != nil {
		logger.Printf("ERROR: failed to connect to dgraph: %v", err)
		return
	}
	defer exporter.Close()

	root, err := app.Session().Introspection(ctx)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		return
	}
	if err := exporter.EnsureSchema(ctx); err != nil {
		logger.Printf("ERROR: failed to set dgraph schema: %v", err)
		return
	}
	if _, err := exporter.ExportMetrics(ctx, root); err != nil {
		logger.Printf("ERROR: %v", err)
	}
}
