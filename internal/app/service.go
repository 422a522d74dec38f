// Package app provides the core infographic service that implements the
// dependencies required by the HTTP API. It owns the per-request
// orchestration pipeline.
package app

import (
	"context"
	"sync"

	"github.com/okian/broodsheet/internal/adapters/cache"
	"github.com/okian/broodsheet/internal/adapters/mq/tasks"
	"github.com/okian/broodsheet/internal/adapters/repository"
	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/internal/domain/stats"
	"github.com/okian/broodsheet/internal/render"
	"github.com/okian/broodsheet/pkg/logger"
)

// SpriteStore fetches base and mask sprites. Either result may be nil;
// fetch failures must be handled inside the implementation.
type SpriteStore interface {
	FetchPair(ctx context.Context, species, game string) (base, mask []byte)
}

// Tasks is the background-execution facility for fire-and-forget work.
type Tasks interface {
	Submit(task tasks.Task) bool
}

// Service implements the API dependencies for the infographic system.
// All collaborators are injected; the defaults wired by cmd/main.go can be
// replaced wholesale in tests.
type Service struct {
	mu sync.Mutex

	colors  *repository.ColorLookup
	species *repository.SpeciesStore

	cache      cache.Cache
	sprites    SpriteStore
	calculator stats.Calculator
	renderer   render.Renderer
	colorizer  render.Colorizer
	tasks      Tasks
	runner     *tasks.Runner // owned runner when no Tasks injected

	defaultGame string

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithColorLookup sets the color table store.
func WithColorLookup(l *repository.ColorLookup) Option {
	return func(s *Service) { s.colors = l }
}

// WithSpeciesStore sets the species table store.
func WithSpeciesStore(st *repository.SpeciesStore) Option {
	return func(s *Service) { s.species = st }
}

// WithCache sets the shared response cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithSpriteStore sets the sprite object-store client.
func WithSpriteStore(st SpriteStore) Option {
	return func(s *Service) {
		if st != nil {
			s.sprites = st
		}
	}
}

// WithCalculator sets the stat-value computation function.
func WithCalculator(c stats.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calculator = c
		}
	}
}

// WithRenderer sets the render engine.
func WithRenderer(r render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithColorizer sets the sprite colorization routine.
func WithColorizer(c render.Colorizer) Option {
	return func(s *Service) {
		if c != nil {
			s.colorizer = c
		}
	}
}

// WithTasks sets the background-execution facility.
func WithTasks(t Tasks) Option {
	return func(s *Service) {
		if t != nil {
			s.tasks = t
		}
	}
}

// WithDefaultGame sets the game variant assumed when the request names none.
func WithDefaultGame(game string) Option {
	return func(s *Service) {
		if game != "" {
			s.defaultGame = game
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default collaborators.
func New(opts ...Option) *Service {
	s := &Service{
		defaultGame: model.GameASA,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cache == nil {
		s.cache = cache.NewInMemoryCache()
	}
	if s.calculator == nil {
		s.calculator = stats.NewCalculator()
	}
	if s.renderer == nil {
		s.renderer = render.NewSVGRenderer()
	}
	if s.colorizer == nil {
		s.colorizer = render.NewPassthroughColorizer()
	}
	return s
}

// Start loads the lookup tables and spins up the background runner. The
// tables are read-only after this point. Idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	if s.colors == nil || s.species == nil {
		return ErrNotConfigured
	}
	if err := s.colors.Load(ctx); err != nil {
		return err
	}
	if err := s.species.Load(ctx); err != nil {
		return err
	}

	if s.tasks == nil {
		s.runner = tasks.New(tasks.WithLogger(s.logger.Named("tasks")))
		s.runner.Start(ctx)
		s.tasks = s.runner
	}

	s.started = true
	s.logger.Info(ctx, "infographic service started",
		logger.Int("species", s.species.Len()),
		logger.Int("colors", s.colors.Len()),
		logger.String("defaultGame", s.defaultGame),
	)
	return nil
}

// Stop shuts the service down, draining any in-flight background tasks.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if s.runner != nil {
		s.runner.Stop()
	}
	s.started = false
	s.logger.Info(context.Background(), "infographic service stopped")
}

// SpeciesNames returns all known species names, sorted.
func (s *Service) SpeciesNames(ctx context.Context) []string {
	return s.species.Names()
}
