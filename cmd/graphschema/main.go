package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redbco/graphschema/internal/config"
	"github.com/redbco/graphschema/internal/engine"
	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schemastore"
	"github.com/redbco/graphschema/pkg/service"

	// Import the store backends to trigger their init() registration
	_ "github.com/redbco/graphschema/internal/database/memory"
	_ "github.com/redbco/graphschema/internal/database/neo4j"
	_ "github.com/redbco/graphschema/internal/database/postgres"
)

var (
	configFile     = flag.String("config", "", "Path to the YAML configuration file (default: one in-memory graph)")
	port           = flag.Int("port", 0, "The server port, overrides server.port")
	metricsPort    = flag.Int("metrics-port", -1, "The Prometheus port, overrides server.metrics_port (0 disables)")
	logLevel       = flag.String("log-level", "", "Minimum log level, overrides logging.level")
	serviceVersion = "1.0.0"
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort >= 0 {
		cfg.Server.MetricsPort = *metricsPort
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create service implementation
	impl := engine.NewService(cfg, schemastore.GlobalRegistry())

	// Create base service with implementation
	svc := service.NewBaseService("graphschema", serviceVersion, cfg.Server.Port, impl)
	svc.MetricsPort = cfg.Server.MetricsPort
	svc.ShutdownTimeout = cfg.Server.ShutdownTimeout
	svc.HealthCheckInterval = cfg.Server.HealthCheckInterval
	svc.Config.SetRestartKeys([]string{"server.", "graphs.", "search.", "keyring."})
	svc.Config.Update(cfg.Flatten())

	level, _ := logger.ParseLevel(cfg.Logging.Level)
	svc.Logger.SetLevel(level)
	svc.Logger.Infof("Registered store backends: %v", schemastore.GlobalRegistry().ListRegistered())

	// Create context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run the service
	if err := svc.Run(ctx); err != nil {
		stop()
		log.Fatalf("Failed to run service: %v", err)
	}
}
