package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	"github.com/redbco/graphschema/internal/config"
	"github.com/redbco/graphschema/internal/events"
	"github.com/redbco/graphschema/internal/metrics"
	"github.com/redbco/graphschema/internal/router"
	"github.com/redbco/graphschema/internal/search"
	pkgconfig "github.com/redbco/graphschema/pkg/config"
	"github.com/redbco/graphschema/pkg/database"
	"github.com/redbco/graphschema/pkg/health"
	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schemastore"
	"github.com/redbco/graphschema/pkg/service"
)

var _ service.Service = (*Service)(nil)

// Service connects the configured graphs and serves the management API on
// the gRPC server of a service.BaseService
type Service struct {
	cfg      *config.Config
	registry *schemastore.Registry

	engine     *Engine
	grpcServer *grpc.Server
	logger     *logger.Logger
	registerer prometheus.Registerer
}

// NewService creates a Service for cfg using the backends of registry
func NewService(cfg *config.Config, registry *schemastore.Registry) *Service {
	return &Service{cfg: cfg, registry: registry}
}

func (s *Service) SetGRPCServer(server *grpc.Server) {
	s.grpcServer = server
}

func (s *Service) SetLogger(l *logger.Logger) {
	s.logger = l
}

func (s *Service) SetMetricsRegisterer(reg prometheus.Registerer) {
	s.registerer = reg
}

// Engine returns the engine once Initialize has succeeded
func (s *Service) Engine() *Engine {
	return s.engine
}

// Initialize connects every graph context and registers the management
// services on the shared gRPC server.
func (s *Service) Initialize(ctx context.Context, kv *pkgconfig.Config) error {
	if s.logger == nil {
		s.logger = logger.New("graphschema", "dev")
	}
	if level, err := logger.ParseLevel(kv.GetDefault("logging.level", s.cfg.Logging.Level)); err == nil {
		s.logger.SetLevel(level)
	}

	var creds *database.CredentialsManager
	if s.cfg.NeedsKeyring() {
		var err error
		if creds, err = s.cfg.Credentials(); err != nil {
			return err
		}
	}
	graphs, err := s.cfg.GraphConfigs(creds)
	if err != nil {
		return err
	}

	r, err := router.Connect(ctx, s.registry, graphs, s.logger)
	if err != nil {
		return fmt.Errorf("failed to connect graphs: %w", err)
	}

	publisher, err := s.publisher(ctx)
	if err != nil {
		r.Close()
		return err
	}

	searchConfigs, err := s.cfg.SearchConfigs(creds)
	if err != nil {
		publisher.Close()
		r.Close()
		return err
	}
	backends, err := search.Open(searchConfigs)
	if err != nil {
		publisher.Close()
		r.Close()
		return err
	}
	if names := backends.Names(); len(names) > 0 {
		s.logger.Infof("Provisioning mixed indices on search backends %v", names)
	}

	policy := s.cfg.ReadinessPolicy()
	policy.InitialInterval = kv.GetDuration("readiness.initial_interval", policy.InitialInterval)
	policy.MaxInterval = kv.GetDuration("readiness.max_interval", policy.MaxInterval)

	s.engine = New(r, s.logger,
		WithMetrics(metrics.New(s.registerer)),
		WithPublisher(publisher),
		WithSearch(backends),
		WithReadinessPolicy(policy),
	)

	if s.grpcServer != nil {
		Register(s.grpcServer, s.engine)
	}
	return nil
}

func (s *Service) publisher(ctx context.Context) (events.Publisher, error) {
	ev := s.cfg.Events
	if ev.RedisAddress == "" {
		return events.Nop{}, nil
	}

	rc := database.DefaultRedisConfig()
	rc.Address = ev.RedisAddress
	rc.Password = ev.RedisPassword
	rc.DB = ev.RedisDB

	client, err := database.NewRedis(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event publisher: %w", err)
	}
	s.logger.Infof("Publishing schema changes to redis %s with channel prefix %q", ev.RedisAddress, ev.ChannelPrefix)
	return events.NewRedisPublisher(client, ev.ChannelPrefix), nil
}

func (s *Service) Start(ctx context.Context) error {
	s.logger.Infof("Serving graph contexts %v", s.engine.Router().Names())
	return nil
}

func (s *Service) Stop(ctx context.Context, gracePeriod time.Duration) error {
	if s.engine == nil {
		return nil
	}
	return s.engine.Close()
}

func (s *Service) CollectMetrics() map[string]int64 {
	if s.engine == nil {
		return nil
	}
	stats := s.engine.Stats()
	stats["graphs"] = int64(len(s.engine.Router().Names()))
	return stats
}

// HealthChecks pings each graph context and search backend separately
func (s *Service) HealthChecks() map[string]health.CheckFunc {
	checks := make(map[string]health.CheckFunc)
	if s.engine == nil {
		return checks
	}
	r := s.engine.Router()
	for _, name := range r.Names() {
		g, err := r.Resolve(name)
		if err != nil {
			continue
		}
		checks["graph:"+name] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return g.Ping(ctx)
		}
	}
	if s.engine.search != nil {
		for _, name := range s.engine.search.Names() {
			name := name
			checks["search:"+name] = func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return s.engine.search.Ping(ctx, name)
			}
		}
	}
	return checks
}
