package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"github.com/redbco/graphschema/pkg/config"
	"github.com/redbco/graphschema/pkg/health"
	"github.com/redbco/graphschema/pkg/logger"
)

// Service is implemented by the component a BaseService runs
type Service interface {
	// Initialize is called after the gRPC server exists but before it serves
	Initialize(ctx context.Context, config *config.Config) error

	// Start begins the service's main work
	Start(ctx context.Context) error

	// Stop gracefully shuts down the service
	Stop(ctx context.Context, gracePeriod time.Duration) error

	// CollectMetrics returns current service counters
	CollectMetrics() map[string]int64

	// HealthChecks returns service-specific health check functions
	HealthChecks() map[string]health.CheckFunc
}

// GRPCServerAware is an optional interface that services can implement
// if they need access to the shared gRPC server
type GRPCServerAware interface {
	SetGRPCServer(server *grpc.Server)
}

// LoggerAware is an optional interface that services can implement
// if they need access to the logger
type LoggerAware interface {
	SetLogger(logger *logger.Logger)
}

// MetricsAware is an optional interface for services that register their
// own Prometheus collectors
type MetricsAware interface {
	SetMetricsRegisterer(reg prometheus.Registerer)
}

// State is the lifecycle state of a BaseService
type State int

const (
	StateStarting State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	}
	return "stopped"
}

// BaseService runs a Service behind a gRPC server with health reporting and
// a Prometheus endpoint
type BaseService struct {
	// Service identification
	Name       string
	Version    string
	InstanceID string

	// Network configuration. A zero MetricsPort disables the HTTP endpoint.
	Port        int
	MetricsPort int

	ShutdownTimeout     time.Duration
	HealthCheckInterval time.Duration

	// Core components
	Logger        *logger.Logger
	Config        *config.Config
	HealthChecker *health.Checker
	Registry      *prometheus.Registry

	grpcServer    *grpc.Server
	healthServer  *grpchealth.Server
	metricsServer *http.Server
	listener      net.Listener
	runtimeGauge  *prometheus.GaugeVec

	// State management
	mu        sync.RWMutex
	state     State
	stopOnce  sync.Once
	stopCh    chan struct{}
	readyCh   chan struct{}
	stoppedCh chan struct{}

	// Service implementation
	impl Service
}

// NewBaseService creates a new base service instance
func NewBaseService(name, version string, port int, impl Service) *BaseService {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	runtimeGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "graphschema",
		Subsystem: "service",
		Name:      "stat",
		Help:      "Service counters sampled on every health check round",
	}, []string{"name"})
	reg.MustRegister(runtimeGauge)

	return &BaseService{
		Name:                name,
		Version:             version,
		InstanceID:          uuid.New().String(),
		Port:                port,
		ShutdownTimeout:     30 * time.Second,
		HealthCheckInterval: 10 * time.Second,
		Logger:              logger.New(name, version),
		Config:              config.New(),
		HealthChecker:       health.NewChecker(),
		Registry:            reg,
		runtimeGauge:        runtimeGauge,
		stopCh:              make(chan struct{}),
		readyCh:             make(chan struct{}),
		stoppedCh:           make(chan struct{}),
		impl:                impl,
	}
}

// Run starts the service and manages its lifecycle
func (s *BaseService) Run(ctx context.Context) error {
	s.setState(StateStarting)
	s.Logger.Infof("Starting %s %s, instance %s", s.Name, s.Version, s.InstanceID)

	if err := s.startGRPCServer(); err != nil {
		return fmt.Errorf("failed to start gRPC server: %w", err)
	}

	// Provide shared components to the service implementation
	if gRPCAware, ok := s.impl.(GRPCServerAware); ok {
		gRPCAware.SetGRPCServer(s.grpcServer)
	}
	if loggerAware, ok := s.impl.(LoggerAware); ok {
		loggerAware.SetLogger(s.Logger)
	}
	if metricsAware, ok := s.impl.(MetricsAware); ok {
		metricsAware.SetMetricsRegisterer(s.Registry)
	}

	if err := s.impl.Initialize(ctx, s.Config); err != nil {
		s.listener.Close()
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	s.Logger.Infof("Service implementation initialized successfully")

	// Now start serving gRPC requests after all services are registered
	s.StartServing()
	if err := s.startMetricsServer(); err != nil {
		s.grpcServer.Stop()
		return err
	}

	go s.healthCheckLoop(ctx)

	if err := s.impl.Start(ctx); err != nil {
		s.grpcServer.Stop()
		return fmt.Errorf("failed to start service: %w", err)
	}

	s.setState(StateRunning)
	close(s.readyCh)
	s.Logger.Info("Service started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		s.Logger.Infof("Received shutdown signal %s", sig)
	case <-s.stopCh:
		s.Logger.Info("Received stop command")
	case <-ctx.Done():
		s.Logger.Info("Context cancelled")
	}

	s.setState(StateStopping)
	return s.shutdown()
}

func (s *BaseService) startGRPCServer() error {
	maxRetries := 3
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
		if err != nil {
			if attempt < maxRetries {
				s.Logger.Warnf("Failed to bind to port %d (attempt %d/%d): %v, retrying...", s.Port, attempt, maxRetries, err)
				time.Sleep(retryDelay)
				retryDelay *= 2
				continue
			}
			return fmt.Errorf("failed to listen on port %d after %d attempts: %w", s.Port, maxRetries, err)
		}

		s.grpcServer = grpc.NewServer(grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 15 * time.Second,
			MaxConnectionAge:  30 * time.Second,
			Time:              5 * time.Second,
			Timeout:           1 * time.Second,
		}), grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}))

		// NOT_SERVING until the first health check round passes
		s.healthServer = grpchealth.NewServer()
		s.healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		s.healthServer.SetServingStatus(s.Name, healthpb.HealthCheckResponse_NOT_SERVING)
		healthpb.RegisterHealthServer(s.grpcServer, s.healthServer)

		s.listener = lis
		s.Logger.Infof("gRPC server created on %s", lis.Addr())
		return nil
	}

	return fmt.Errorf("failed to start gRPC server after %d attempts", maxRetries)
}

// StartServing begins serving gRPC requests after all services are registered
func (s *BaseService) StartServing() {
	if s.grpcServer == nil || s.listener == nil {
		return
	}
	s.Logger.Infof("Starting gRPC server on %s", s.listener.Addr())

	go func() {
		if err := s.grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.Logger.Errorf("Failed to serve: %v", err)
		}
	}()
}

func (s *BaseService) startMetricsServer() error {
	if s.MetricsPort == 0 {
		return nil
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.MetricsPort))
	if err != nil {
		return fmt.Errorf("failed to listen on metrics port %d: %w", s.MetricsPort, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{Registry: s.Registry}))
	s.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.metricsServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Errorf("Metrics server failed: %v", err)
		}
	}()
	s.Logger.Infof("Serving metrics on %s/metrics", lis.Addr())
	return nil
}

func (s *BaseService) healthCheckLoop(ctx context.Context) {
	interval := s.HealthCheckInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	checks := s.impl.HealthChecks()
	s.runHealthChecks(checks)

	for {
		select {
		case <-ticker.C:
			s.runHealthChecks(checks)
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		}
	}
}

func (s *BaseService) runHealthChecks(checks map[string]health.CheckFunc) {
	overall := s.HealthChecker.RunAll(checks)

	servingStatus := healthpb.HealthCheckResponse_SERVING
	if overall != health.StatusHealthy {
		servingStatus = healthpb.HealthCheckResponse_NOT_SERVING
		for _, check := range s.HealthChecker.GetAllChecks() {
			if check.Status != health.StatusHealthy {
				s.Logger.Warnf("Health check %s failed: %s", check.Name, check.Message)
			}
		}
	}
	s.healthServer.SetServingStatus("", servingStatus)
	s.healthServer.SetServingStatus(s.Name, servingStatus)

	s.collectMetrics()
}

// collectMetrics samples the counters of the implementation. Memory and CPU
// come from the process collector.
func (s *BaseService) collectMetrics() {
	for name, value := range s.impl.CollectMetrics() {
		s.runtimeGauge.WithLabelValues(name).Set(float64(value))
	}
}

// Addr returns the address the gRPC server listens on
func (s *BaseService) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Ready is closed once the service is running
func (s *BaseService) Ready() <-chan struct{} {
	return s.readyCh
}

// Stopped is closed once shutdown has finished
func (s *BaseService) Stopped() <-chan struct{} {
	return s.stoppedCh
}

// Stop asks Run to shut the service down
func (s *BaseService) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// State returns the current lifecycle state
func (s *BaseService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *BaseService) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *BaseService) shutdown() error {
	s.Logger.Info("Starting graceful shutdown")
	s.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	s.healthServer.Shutdown()

	// GracefulStop waits for in-flight RPCs, including index waits
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.Logger.Warn("Graceful stop timed out, closing remaining connections")
		s.grpcServer.Stop()
	}

	var errs []error
	if err := s.impl.Stop(ctx, s.ShutdownTimeout); err != nil {
		s.Logger.Errorf("Service implementation shutdown error: %v", err)
		errs = append(errs, err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
	}

	close(s.stoppedCh)
	s.setState(StateStopped)
	s.Logger.Info("Service stopped")

	return errors.Join(errs...)
}
