package tenant

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ManagerConfig configures the tenant pool manager.
type ManagerConfig struct {
	DBUser     string
	DBPassword string
	SSLMode    string

	// MaxConnsPerTenant limits each tenant pool. Zero means pgxpool default.
	MaxConnsPerTenant int32

	// IdleTimeout is how long an unused pool stays open before eviction.
	IdleTimeout time.Duration

	// EvictionInterval is how often the eviction loop runs.
	EvictionInterval time.Duration
}

func (c *ManagerConfig) applyDefaults() {
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 15 * time.Minute
	}
	if c.EvictionInterval == 0 {
		c.EvictionInterval = time.Minute
	}
}

// managedPool wraps a tenant pool with last-use tracking for eviction.
type managedPool struct {
	pool     *pgxpool.Pool
	lastUsed atomic.Int64 // unix nanos
}

func (m *managedPool) touch() {
	m.lastUsed.Store(time.Now().UnixNano())
}

// Manager caches per-tenant connection pools, creating them lazily and
// evicting idle ones. Safe for concurrent use.
type Manager struct {
	cfg      ManagerConfig
	registry *Registry
	logger   *zap.SugaredLogger

	pools sync.Map // tenant ID -> *managedPool
	mu    sync.Mutex

	done chan struct{}
	once sync.Once
}

// NewManager creates a pool manager and starts its eviction loop.
func NewManager(cfg ManagerConfig, registry *Registry, logger *zap.SugaredLogger) *Manager {
	cfg.applyDefaults()
	m := &Manager{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go m.evictionLoop()
	return m
}

// GetPool returns the connection pool for a tenant, creating it on first use.
func (m *Manager) GetPool(ctx context.Context, t *Tenant) (*pgxpool.Pool, error) {
	switch t.Status {
	case StatusActive:
	case StatusSuspended:
		return nil, ErrTenantSuspended
	default:
		return nil, ErrTenantDeleted
	}

	if v, ok := m.pools.Load(t.ID); ok {
		mp := v.(*managedPool)
		mp.touch()
		return mp.pool, nil
	}

	// Serialize pool creation; a second Load under the lock avoids
	// opening duplicate pools for the same tenant.
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.pools.Load(t.ID); ok {
		mp := v.(*managedPool)
		mp.touch()
		return mp.pool, nil
	}

	pool, err := m.createPool(ctx, t)
	if err != nil {
		return nil, err
	}

	mp := &managedPool{pool: pool}
	mp.touch()
	m.pools.Store(t.ID, mp)

	m.logger.Infow("tenant pool created", "tenant", t.Slug, "db", t.DBName)
	return pool, nil
}

func (m *Manager) createPool(ctx context.Context, t *Tenant) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(t.DSN(m.cfg.DBUser, m.cfg.DBPassword, m.cfg.SSLMode))
	if err != nil {
		return nil, fmt.Errorf("parse tenant dsn: %w", err)
	}
	if m.cfg.MaxConnsPerTenant > 0 {
		poolCfg.MaxConns = m.cfg.MaxConnsPerTenant
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create tenant pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping tenant database %s: %w", t.DBName, err)
	}
	return pool, nil
}

func (m *Manager) evictionLoop() {
	ticker := time.NewTicker(m.cfg.EvictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.cfg.IdleTimeout).UnixNano()

	m.pools.Range(func(key, value any) bool {
		mp := value.(*managedPool)
		if mp.lastUsed.Load() < cutoff {
			m.pools.Delete(key)
			mp.pool.Close()
			m.logger.Infow("tenant pool evicted", "tenant_id", key)
		}
		return true
	})
}

// PoolCount returns the number of currently open tenant pools.
func (m *Manager) PoolCount() int {
	count := 0
	m.pools.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Close stops the eviction loop and closes all tenant pools.
func (m *Manager) Close() {
	m.once.Do(func() {
		close(m.done)
		m.pools.Range(func(key, value any) bool {
			value.(*managedPool).pool.Close()
			m.pools.Delete(key)
			return true
		})
	})
}
