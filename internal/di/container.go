// Package di assembles the runtime object graph: dictionary backend,
// four-frame optimizer, evaluation engine, and the naming service.
package di

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ireum-lab/api/internal/naming/calculators"
	"github.com/ireum-lab/api/internal/naming/sagyeok"
	"github.com/ireum-lab/api/internal/naming/tables"
	"github.com/ireum-lab/api/internal/platform/config"
	"github.com/ireum-lab/api/internal/platform/requestctx"
	"github.com/ireum-lab/api/internal/repositories"
	"github.com/ireum-lab/api/internal/repositories/memory"
	"github.com/ireum-lab/api/internal/repositories/sqlite"
	"github.com/ireum-lab/api/internal/services"
)

// Pinger reports reachability of a backing store for readiness probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Container wires repositories and services for runtime use.
type Container struct {
	Config config.Config
	Hanja  repositories.HanjaRepository
	Stats  repositories.StatsRepository
	Naming services.NamingService

	// Pingers lists the backing stores checked by the readiness probe;
	// empty for the memory backend.
	Pingers []Pinger

	store *sqlite.Store
}

// ContainerDeps carries the optional external collaborators.
type ContainerDeps struct {
	// Saju defaults to the fallback provider when nil.
	Saju services.SajuProvider
}

// NewContainer constructs the runtime dependencies from configuration.
func NewContainer(_ context.Context, cfg config.Config, deps ContainerDeps) (*Container, error) {
	c := &Container{Config: cfg}

	switch cfg.Dictionary.Backend {
	case config.BackendMemory:
		dict, err := memory.LoadDictionary(cfg.Dictionary.File)
		if err != nil {
			return nil, fmt.Errorf("load dictionary %s: %w", cfg.Dictionary.File, err)
		}
		c.Hanja = memory.NewHanjaRepository(dict.Entries, dict.SurnamePairs)
		c.Stats = memory.NewStatsRepository(dict.Stats)
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Dictionary.Database)
		if err != nil {
			return nil, fmt.Errorf("open dictionary store: %w", err)
		}
		c.store = store
		c.Hanja = sqlite.NewHanjaRepository(store)
		c.Stats = sqlite.NewStatsRepository(store)
		c.Pingers = append(c.Pingers, store)
	default:
		return nil, fmt.Errorf("unknown dictionary backend %q", cfg.Dictionary.Backend)
	}

	naming, err := services.NewNamingService(services.NamingServiceDeps{
		Hanja:     c.Hanja,
		Stats:     c.Stats,
		Optimizer: sagyeok.NewOptimizer(tables.LuckySet()),
		Engine:    calculators.NewDefaultEngine(),
		Saju:      deps.Saju,
		Lucky:     tables.FortuneLabels(),
		Logger:    contextEventLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("build naming service: %w", err)
	}
	c.Naming = naming

	return c, nil
}

// Close releases resources held by the container.
func (c *Container) Close(context.Context) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Close()
}

// contextEventLogger adapts the request-scoped zap logger to the
// service-layer event signature.
func contextEventLogger(ctx context.Context, event string, fields map[string]any) {
	logger := requestctx.Logger(ctx)
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	logger.Info(event, zapFields...)
}

var errNotConfigured = errors.New("di: container not configured")

// Ready verifies the container holds a usable service graph.
func (c *Container) Ready() error {
	if c == nil || c.Naming == nil || c.Hanja == nil || c.Stats == nil {
		return errNotConfigured
	}
	return nil
}
