// Package main - Entry point for the VFX cost estimation server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"vfx-cost/api"
	"vfx-cost/core/pricing"
	"vfx-cost/internal/config"
	"vfx-cost/internal/logging"
	"vfx-cost/internal/metrics"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", os.Getenv("VFXCOST_CONFIG"), "Path to config file")
	addr := flag.String("addr", "", "Server address (overrides server.addr)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logging.Fatal("load config", zap.Error(err))
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	m := metrics.NewManager(cfg.MetricsOptions()...)
	m.Registry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	server := api.NewServer(version,
		api.WithEngine(pricing.NewEngine(cfg.RateCard())),
		api.WithMetrics(m),
		api.WithWebsocket(cfg.Server.WebsocketEnabled),
		api.WithLogger(logging.Named("api")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("🎬 VFX Cost Estimation Server v%s\n", version)
	fmt.Printf("   API: http://localhost%s\n", cfg.Server.Addr)
	fmt.Println()

	if err := server.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
