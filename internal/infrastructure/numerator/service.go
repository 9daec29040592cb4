// Package numerator implements document auto-numbering on top of the
// sys_sequences table. In database-per-tenant mode the querier is
// resolved from the request context, so one service instance serves all
// tenants.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"moneta/internal/core/numerator"
	"moneta/internal/core/tenant"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type cachedRange struct {
	current int64
	max     int64
}

// Service provides document numbering. Implements numerator.Generator.
type Service struct {
	// staticQuerier is used for single-tenant mode and tests
	staticQuerier Querier
	useContext    bool

	cacheMu sync.Mutex
	// ranges keys are prefixed with the tenant ID in context mode so a
	// shared Service instance never mixes tenants.
	ranges map[string]*cachedRange
}

var _ numerator.Generator = (*Service)(nil)

// New creates a numerator service with a static querier.
// Use for single-tenant or testing scenarios.
func New(querier Querier) *Service {
	return &Service{
		staticQuerier: querier,
		ranges:        make(map[string]*cachedRange),
	}
}

// NewFromContext creates a numerator service that resolves the querier
// from the tenant pool in the request context.
func NewFromContext() *Service {
	return &Service{
		useContext: true,
		ranges:     make(map[string]*cachedRange),
	}
}

func (s *Service) getQuerier(ctx context.Context) (Querier, error) {
	if s.useContext {
		// Numbering runs outside business transactions: a rolled-back
		// document must not roll back the sequence bump.
		return tenant.PoolFromContext(ctx)
	}
	return s.staticQuerier, nil
}

// GetNextNumber generates the next document number,
// e.g. SI-2026-00001.
func (s *Service) GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if opts == nil {
		opts = numerator.DefaultOptions()
	}

	key := buildKey(cfg, period)
	cacheKey := key
	if s.useContext {
		if t, err := tenant.FromContext(ctx); err == nil {
			cacheKey = t.ID + ":" + key
		}
	}

	var num int64
	var err error
	switch opts.Strategy {
	case numerator.StrategyCached:
		num, err = s.getNextCached(ctx, key, cacheKey, opts)
	default:
		num, err = s.getNextStrict(ctx, key)
	}
	if err != nil {
		return "", err
	}
	return formatNumber(cfg, period, num), nil
}

// Next generates the next number using the default config for a prefix.
func (s *Service) Next(ctx context.Context, prefix string) (string, error) {
	return s.GetNextNumber(ctx, numerator.DefaultConfig(prefix), nil, time.Now())
}

func (s *Service) getNextStrict(ctx context.Context, key string) (int64, error) {
	querier, err := s.getQuerier(ctx)
	if err != nil {
		return 0, err
	}

	var num int64
	err = querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("strict next: %w", err)
	}
	return num, nil
}

func (s *Service) getNextCached(ctx context.Context, dbKey, cacheKey string, opts *numerator.Options) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, exists := s.ranges[cacheKey]
	if !exists {
		rng = &cachedRange{}
		s.ranges[cacheKey] = rng
	}

	if rng.current >= rng.max {
		size := opts.RangeSize
		if size <= 0 {
			size = 50
		}

		querier, err := s.getQuerier(ctx)
		if err != nil {
			return 0, err
		}

		// current_val tracks the last value handed out, so bumping it by
		// size reserves the range (old_val+1 .. new_val).
		var newMax int64
		err = querier.QueryRow(ctx, `
			INSERT INTO sys_sequences (key, current_val)
			VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + $2
			RETURNING current_val
		`, dbKey, size).Scan(&newMax)
		if err != nil {
			return 0, fmt.Errorf("reserve range: %w", err)
		}

		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// SetNextNumber sets the sequence value directly (for migrations).
func (s *Service) SetNextNumber(ctx context.Context, cfg numerator.Config, period time.Time, value int64) error {
	querier, err := s.getQuerier(ctx)
	if err != nil {
		return err
	}

	key := buildKey(cfg, period)
	var result int64
	err = querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, key, value).Scan(&result)

	s.cacheMu.Lock()
	cacheKey := key
	if s.useContext {
		if t, cerr := tenant.FromContext(ctx); cerr == nil {
			cacheKey = t.ID + ":" + key
		}
	}
	delete(s.ranges, cacheKey)
	s.cacheMu.Unlock()

	return err
}

func buildKey(cfg numerator.Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

func formatNumber(cfg numerator.Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}
	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric part from a formatted number, the
// segment after the last dash. Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	idx := strings.LastIndexByte(formatted, '-')
	if idx < 0 || idx == len(formatted)-1 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[idx+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
