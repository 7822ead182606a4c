package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/redbco/graphschema/pkg/logger"
	"github.com/redbco/graphschema/pkg/schema"
	"github.com/redbco/graphschema/pkg/schemastore"
)

var errNotReady = errors.New("index still installed")

// Policy controls how AwaitReady spaces its polls
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultPolicy polls quickly at first and settles at one poll every 5s
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

func (p Policy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	if p.Multiplier > 1 {
		b.Multiplier = p.Multiplier
	}
	// The caller's context is the only bound on the wait
	b.MaxElapsedTime = 0
	return b
}

// Manager drives index readiness and activation
type Manager struct {
	policy Policy
	log    *logger.Logger
}

// NewManager creates a Manager. A nil logger disables wait progress logging.
func NewManager(policy Policy, log *logger.Logger) *Manager {
	return &Manager{policy: policy, log: log}
}

// Readiness polls the index once and never blocks on backfill
func (m *Manager) Readiness(ctx context.Context, graph schemastore.Graph, name string) (schema.Readiness, error) {
	if name == "" {
		return schema.Readiness{}, schema.NewInvalidArgumentError("index_readiness", "index name is required")
	}
	rd, err := graph.IndexReadiness(ctx, name)
	if err != nil {
		return schema.Readiness{}, schema.WrapError("index readiness", err)
	}
	return rd, nil
}

// AwaitReady polls until at least one key of the index has left INSTALLED.
// It ends with Unavailable when ctx is cancelled or its deadline passes.
func (m *Manager) AwaitReady(ctx context.Context, graph schemastore.Graph, name string) (schema.Readiness, error) {
	var last schema.Readiness

	poll := func() error {
		rd, err := m.Readiness(ctx, graph, name)
		if err != nil {
			return backoff.Permanent(err)
		}
		last = rd
		if !rd.Ready() {
			return errNotReady
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		if m.log != nil {
			m.log.Debugf("Index %s on graph %s not ready, polling again in %s", name, graph.Name(), next)
		}
	}

	err := backoff.RetryNotify(poll, backoff.WithContext(m.policy.backOff(), ctx), notify)
	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, errNotReady):
		return last, schema.NewUnavailableError("await_index_ready", err)
	}
	return last, err
}

// EnableCompositeIndex moves a REGISTERED composite index to ENABLED. With
// wait set it first blocks in AwaitReady. An index that is already ENABLED is
// returned as is, so a retry after a timeout has no side effects.
func (m *Manager) EnableCompositeIndex(ctx context.Context, graph schemastore.Graph, name string, wait bool) (schema.Index, error) {
	if name == "" {
		return schema.Index{}, schema.NewInvalidArgumentError("enable_index", "index name is required")
	}

	if wait {
		if _, err := m.AwaitReady(ctx, graph, name); err != nil {
			return schema.Index{}, err
		}
	}

	// The wait is not transactional; read the status in a fresh session
	sess, err := graph.OpenManagement(ctx)
	if err != nil {
		return schema.Index{}, schema.WrapError("open management session", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = sess.Rollback(ctx)
		}
	}()

	idx, err := sess.GetIndex(ctx, name)
	if err != nil {
		return schema.Index{}, schema.WrapError("get index", err)
	}
	if idx == nil {
		return schema.Index{}, schema.NewNotFoundError("enable_index", "index", name)
	}
	if idx.Type != schema.IndexComposite {
		return schema.Index{}, schema.NewIllegalStateError("enable_index", name, "only composite indices can be enabled")
	}
	if len(idx.Keys) == 0 {
		return schema.Index{}, schema.NewIllegalStateError("enable_index", name, "index has no keys")
	}

	status, err := sess.IndexStatus(ctx, name, idx.Keys[0].Name)
	if err != nil {
		return schema.Index{}, schema.WrapError("index status", err)
	}

	switch status {
	case schema.StatusEnabled:
		idx.Status = schema.StatusEnabled
		return *idx, nil
	case schema.StatusInstalled:
		return schema.Index{}, schema.NewIllegalStateError("enable_index", name, "cannot skip REGISTERED")
	case schema.StatusDisabled:
		return schema.Index{}, schema.NewIllegalStateError("enable_index", name, "cannot enable a disabled index")
	case schema.StatusRegistered:
	default:
		return schema.Index{}, schema.NewIllegalStateError("enable_index", name, "unknown status "+string(status))
	}

	if err := sess.UpdateIndex(ctx, name, schema.ActionEnableIndex); err != nil {
		return schema.Index{}, schema.WrapError("update index", err)
	}
	committed = true
	if err := sess.Commit(ctx); err != nil {
		return schema.Index{}, err
	}

	// The action may still be settling on the backend; report what was requested
	idx.Status = schema.StatusEnabled
	return *idx, nil
}
